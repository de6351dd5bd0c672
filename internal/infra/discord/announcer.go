package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	domainDiscord "birthday_notification_bot/internal/domain/discord"
	"birthday_notification_bot/internal/domain/settings"
)

const (
	announcementColor  = 0xFF69B4
	announcementTitle  = "🎉 FELIZ ANIVERSÁRIO! 🎉"
	announcementFooter = "Bot de Aniversário - Parabéns!"
)

// Announcer posts birthday announcements to the configured guild channel.
type Announcer struct {
	session   Session
	botUserID string
	logger    *logrus.Entry
}

func NewAnnouncer(session Session, botUserID string, logger *logrus.Entry) *Announcer {
	return &Announcer{
		session:   session,
		botUserID: botUserID,
		logger:    logger,
	}
}

// ResolveDestination validates the configured channel and returns its ID.
// The channel must still exist, be a guild text channel and be writable by
// the bot.
func (a *Announcer) ResolveDestination(_ context.Context, cfg *settings.Settings) (string, error) {
	if cfg == nil || !cfg.Configured() {
		return "", domainDiscord.ErrNotConfigured
	}

	channel, err := a.session.Channel(cfg.ChannelID)
	if err != nil {
		a.logger.WithError(err).WithField("channel_id", cfg.ChannelID).Warn("Configured channel lookup failed")
		return "", domainDiscord.ErrChannelNotFound
	}
	if channel.Type != discordgo.ChannelTypeGuildText {
		return "", domainDiscord.ErrChannelNotFound
	}

	perms, err := a.session.UserChannelPermissions(a.botUserID, cfg.ChannelID)
	if err != nil {
		return "", fmt.Errorf("failed to check channel permissions: %w", err)
	}
	if perms&discordgo.PermissionSendMessages == 0 {
		return "", domainDiscord.ErrForbidden
	}
	return cfg.ChannelID, nil
}

// Announce posts one congratulatory embed to the given channel.
func (a *Announcer) Announce(_ context.Context, channelID string, ann *domainDiscord.Announcement) error {
	embed := buildAnnouncementEmbed(ann, time.Now())
	if _, err := a.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		return fmt.Errorf("failed to send announcement embed: %w", err)
	}
	a.logger.WithFields(logrus.Fields{
		"channel_id": channelID,
		"user_id":    ann.UserID,
	}).Info("Birthday embed delivered")
	return nil
}

func buildAnnouncementEmbed(ann *domainDiscord.Announcement, now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       announcementColor,
		Title:       announcementTitle,
		Description: fmt.Sprintf("**%s**", ann.Text),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎂 Aniversariante", Value: fmt.Sprintf("<@%s>", ann.UserID), Inline: true},
			{Name: "🎊 Idade", Value: fmt.Sprintf("%d anos", ann.Age), Inline: true},
			{Name: "📅 Data", Value: fmt.Sprintf("%02d/%02d", ann.Day, ann.Month), Inline: true},
		},
		Image:     &discordgo.MessageEmbedImage{URL: ann.ImageURL},
		Timestamp: now.Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: announcementFooter},
	}
}
