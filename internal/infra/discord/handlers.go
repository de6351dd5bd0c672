package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"birthday_notification_bot/internal/app"
	"birthday_notification_bot/internal/domain/birthday"
	"birthday_notification_bot/internal/domain/settings"
	idb "birthday_notification_bot/internal/infra/database"
)

const (
	confirmationColor = 0xFF69B4
	updatedColor      = 0x00FF00
	infoColor         = 0xFFD700
	helpColor         = 0x5865F2
	embedFooter       = "Bot de Aniversário"

	// Discord caps embed field values at 1024 characters.
	maxFieldLength = 1024
)

// CommandHandler wires the slash commands to the application services.
type CommandHandler struct {
	birthdaySvc  *app.BirthdayService
	settingsRepo settings.Repository
	logger       *logrus.Entry
}

func NewCommandHandler(birthdaySvc *app.BirthdayService, settingsRepo settings.Repository, logger *logrus.Entry) *CommandHandler {
	return &CommandHandler{
		birthdaySvc:  birthdaySvc,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

func commandDefinitions() []*discordgo.ApplicationCommand {
	minYear := float64(1900)
	minLength := 1
	adminOnly := int64(discordgo.PermissionAdministrator)

	dateOptions := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "dia",
			Description: "Dia do seu aniversário (1-31)",
			Required:    true,
			MinLength:   &minLength,
			MaxLength:   2,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "mes",
			Description: "Mês do seu aniversário (1-12)",
			Required:    true,
			MinLength:   &minLength,
			MaxLength:   2,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "ano",
			Description: "Ano do seu nascimento (ex: 1990)",
			Required:    true,
			MinValue:    &minYear,
			MaxValue:    float64(time.Now().Year()),
		},
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "registrar_aniversario",
			Description: "Registra sua data de aniversário no bot",
			Options:     dateOptions,
		},
		{
			Name:        "atualizar_aniversario",
			Description: "Atualiza sua data de aniversário",
			Options:     dateOptions,
		},
		{
			Name:        "ver_aniversario",
			Description: "Verifica sua data de aniversário registrada",
		},
		{
			Name:        "ver_lista_de_aniversarios",
			Description: "Verifica a lista de aniversários registrados",
		},
		{
			Name:                     "canal_de_notificacoes",
			Description:              "Configura o canal onde as notificações de aniversário serão enviadas",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "canal",
					Description:  "Canal onde as notificações de aniversário serão enviadas",
					Required:     true,
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
			},
		},
		{
			Name:        "mostrar_canal_de_notificacoes",
			Description: "Mostra qual canal está configurado para notificações de aniversário",
		},
		{
			Name:        "lista_comandos",
			Description: "Exibe uma lista de todos os comandos disponíveis do bot",
		},
	}
}

// RegisterCommands overwrites the bot's global command set. Must be called
// after the gateway connection is open.
func (h *CommandHandler) RegisterCommands(s *discordgo.Session) error {
	_, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, "", commandDefinitions())
	if err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}
	h.logger.WithField("count", len(commandDefinitions())).Info("Slash commands registered")
	return nil
}

// HandleInteraction dispatches an incoming slash command. Intended to be
// attached with session.AddHandler.
func (h *CommandHandler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	ctx := context.Background()
	name := i.ApplicationCommandData().Name
	cmdLogger := h.logger.WithFields(logrus.Fields{
		"command": name,
		"user_id": interactionUserID(i),
	})

	switch name {
	case "registrar_aniversario":
		h.handleRegister(ctx, s, i, cmdLogger)
	case "atualizar_aniversario":
		h.handleUpdate(ctx, s, i, cmdLogger)
	case "ver_aniversario":
		h.handleView(ctx, s, i, cmdLogger)
	case "ver_lista_de_aniversarios":
		h.handleList(ctx, s, i, cmdLogger)
	case "canal_de_notificacoes":
		h.handleSetChannel(ctx, s, i, cmdLogger)
	case "mostrar_canal_de_notificacoes":
		h.handleShowChannel(ctx, s, i, cmdLogger)
	case "lista_comandos":
		h.handleListCommands(s, i)
	default:
		cmdLogger.Warn("Received unknown slash command")
	}
}

func (h *CommandHandler) handleRegister(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, logger *logrus.Entry) {
	day, month, year, ok := h.parseDateOptions(s, i)
	if !ok {
		return
	}
	userID := interactionUserID(i)

	b, err := h.birthdaySvc.Register(ctx, userID, day, month, year)
	if err != nil {
		switch err {
		case app.ErrInvalidDay:
			respondEphemeral(s, i, "❌ Dia deve estar entre 1 e 31!")
		case app.ErrInvalidMonth:
			respondEphemeral(s, i, "❌ Mês deve estar entre 1 e 12!")
		case app.ErrInvalidYear, app.ErrInvalidDate:
			respondEphemeral(s, i, "❌ Data inválida! Por favor, verifique se o dia, mês e ano estão corretos.")
		case app.ErrDateInFuture:
			respondEphemeral(s, i, "❌ A data de aniversário não pode ser no futuro!")
		case app.ErrBirthdayAlreadyRegistered:
			respondEphemeral(s, i, "❌ Você já possui uma data de aniversário registrada! Use `/atualizar_aniversario` para alterar.")
		default:
			logger.WithError(err).Error("Failed to register birthday")
			respondEphemeral(s, i, "❌ Ocorreu um erro ao registrar seu aniversário. Tente novamente mais tarde.")
		}
		return
	}

	embed := &discordgo.MessageEmbed{
		Color:       confirmationColor,
		Title:       "🎉 Aniversário Registrado!",
		Description: "Seu aniversário foi registrado com sucesso!",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📅 Data", Value: formatBirthDate(b), Inline: true},
			{Name: "👤 Usuário", Value: fmt.Sprintf("<@%s>", userID), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: embedFooter},
	}
	respondEmbed(s, i, embed)
	logger.Info("Birthday registered")
}

func (h *CommandHandler) handleUpdate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, logger *logrus.Entry) {
	day, month, year, ok := h.parseDateOptions(s, i)
	if !ok {
		return
	}
	userID := interactionUserID(i)

	b, err := h.birthdaySvc.Update(ctx, userID, day, month, year)
	if err != nil {
		switch err {
		case app.ErrInvalidDay:
			respondEphemeral(s, i, "❌ Dia deve estar entre 1 e 31!")
		case app.ErrInvalidMonth:
			respondEphemeral(s, i, "❌ Mês deve estar entre 1 e 12!")
		case app.ErrInvalidYear, app.ErrInvalidDate:
			respondEphemeral(s, i, "❌ Data inválida! Por favor, verifique se o dia, mês e ano estão corretos.")
		case app.ErrDateInFuture:
			respondEphemeral(s, i, "❌ A data de aniversário não pode ser no futuro!")
		case idb.ErrBirthdayNotFound:
			respondEphemeral(s, i, "❌ Você não possui uma data de aniversário registrada! Use `/registrar_aniversario` primeiro.")
		default:
			logger.WithError(err).Error("Failed to update birthday")
			respondEphemeral(s, i, "❌ Ocorreu um erro ao atualizar seu aniversário. Tente novamente mais tarde.")
		}
		return
	}

	embed := &discordgo.MessageEmbed{
		Color:       updatedColor,
		Title:       "✅ Aniversário Atualizado!",
		Description: "Sua data de aniversário foi atualizada com sucesso!",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📅 Nova Data", Value: formatBirthDate(b), Inline: true},
			{Name: "👤 Usuário", Value: fmt.Sprintf("<@%s>", userID), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: embedFooter},
	}
	respondEmbed(s, i, embed)
	logger.Info("Birthday updated")
}

func (h *CommandHandler) handleView(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, logger *logrus.Entry) {
	userID := interactionUserID(i)

	b, err := h.birthdaySvc.Get(ctx, userID)
	if err != nil {
		if err == idb.ErrBirthdayNotFound {
			respondEphemeral(s, i, "❌ Você não possui uma data de aniversário registrada! Use `/registrar_aniversario` para registrar.")
			return
		}
		logger.WithError(err).Error("Failed to look up birthday")
		respondEphemeral(s, i, "❌ Ocorreu um erro ao verificar seu aniversário. Tente novamente mais tarde.")
		return
	}

	today := time.Now()
	embed := &discordgo.MessageEmbed{
		Color:       infoColor,
		Title:       "🎂 Sua Data de Aniversário",
		Description: "Aqui estão as informações sobre seu aniversário registrado!",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📅 Data de Nascimento", Value: formatBirthDate(b), Inline: true},
			{Name: "🎂 Idade Atual", Value: fmt.Sprintf("%d anos", b.AgeOn(today)), Inline: true},
			{Name: "📆 Próximo Aniversário", Value: fmt.Sprintf("%d dias", b.DaysUntil(today)), Inline: true},
			{Name: "📝 Registrado em", Value: b.RegisteredAt.Format("02/01/2006"), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: embedFooter},
	}
	respondEmbed(s, i, embed)
}

func (h *CommandHandler) handleList(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, logger *logrus.Entry) {
	birthdays, err := h.birthdaySvc.List(ctx)
	if err != nil {
		logger.WithError(err).Error("Failed to list birthdays")
		respondEphemeral(s, i, "❌ Ocorreu um erro ao verificar a lista de aniversários. Tente novamente mais tarde.")
		return
	}
	if len(birthdays) == 0 {
		respondEphemeral(s, i, "❌ Não há aniversários registrados! Use `/registrar_aniversario` para registrar.")
		return
	}

	today := time.Now()
	lines := make([]string, 0, len(birthdays))
	for _, b := range birthdays {
		name := ""
		if user, fetchErr := s.User(b.UserID); fetchErr == nil {
			name = user.Username
		}
		lines = append(lines, formatBirthdayLine(name, b, today))
	}

	embed := &discordgo.MessageEmbed{
		Color:       infoColor,
		Title:       "🎂 Lista de Aniversários",
		Description: fmt.Sprintf("Total de aniversariantes registrados: **%d**", len(birthdays)),
		Fields:      splitIntoFields(lines),
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: embedFooter},
	}
	respondEmbed(s, i, embed)
}

func (h *CommandHandler) handleSetChannel(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, logger *logrus.Entry) {
	opts := optionsByName(i.ApplicationCommandData().Options)
	channelOpt, ok := opts["canal"]
	if !ok {
		respondEphemeral(s, i, "❌ Canal não encontrado!")
		return
	}
	channel := channelOpt.ChannelValue(s)
	if channel == nil || channel.Type != discordgo.ChannelTypeGuildText {
		respondEphemeral(s, i, "❌ Canal não encontrado!")
		return
	}

	perms, err := s.UserChannelPermissions(s.State.User.ID, channel.ID)
	if err != nil || perms&discordgo.PermissionSendMessages == 0 {
		respondEphemeral(s, i, "❌ Eu não tenho permissão para enviar mensagens neste canal!")
		return
	}

	cfg := &settings.Settings{GuildID: i.GuildID, ChannelID: channel.ID}
	if err := h.settingsRepo.Save(ctx, cfg); err != nil {
		logger.WithError(err).Error("Failed to save notification channel")
		respondEphemeral(s, i, "❌ Ocorreu um erro ao configurar o canal de aniversários!")
		return
	}

	respondEphemeral(s, i, fmt.Sprintf(
		"✅ Canal de aniversários configurado com sucesso!\n📢 As notificações de aniversário serão enviadas em: <#%s>",
		channel.ID,
	))
	logger.WithField("channel_id", channel.ID).Info("Notification channel configured")
}

func (h *CommandHandler) handleShowChannel(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, logger *logrus.Entry) {
	cfg, err := h.settingsRepo.Get(ctx)
	if err != nil {
		if err == idb.ErrSettingsNotFound {
			respondEphemeral(s, i, "❌ Nenhum canal de aniversários foi configurado ainda!\nUse `/canal_de_notificacoes` para configurar um canal.")
			return
		}
		logger.WithError(err).Error("Failed to load notification channel settings")
		respondEphemeral(s, i, "❌ Ocorreu um erro ao verificar o canal de aniversários!")
		return
	}
	if !cfg.Configured() {
		respondEphemeral(s, i, "❌ Nenhum canal de aniversários foi configurado ainda!\nUse `/canal_de_notificacoes` para configurar um canal.")
		return
	}

	if _, err := s.Channel(cfg.ChannelID); err != nil {
		respondEphemeral(s, i, "❌ O canal configurado não existe mais ou foi deletado!\nUse `/canal_de_notificacoes` para configurar um novo canal.")
		return
	}

	respondEphemeral(s, i, fmt.Sprintf(
		"📢 **Canal de aniversários configurado:**\n<#%s>\n\nAs notificações de aniversário serão enviadas neste canal.",
		cfg.ChannelID,
	))
}

func (h *CommandHandler) handleListCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Color:       helpColor,
		Title:       "📋 Lista de Comandos",
		Description: "Aqui estão todos os comandos disponíveis do Bot de Aniversário:",
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "🎂 Comandos de Aniversário",
				Value: "`/registrar_aniversario` - Registra sua data de aniversário no bot\n" +
					"`/atualizar_aniversario` - Atualiza sua data de aniversário\n" +
					"`/ver_aniversario` - Verifica sua data de aniversário registrada\n" +
					"`/ver_lista_de_aniversarios` - Verifica a lista de aniversários registrados",
			},
			{
				Name: "⚙️ Comandos de Configuração",
				Value: "`/canal_de_notificacoes` - Configura o canal onde as notificações de aniversário serão enviadas\n" +
					"`/mostrar_canal_de_notificacoes` - Mostra qual canal está configurado para notificações de aniversário",
			},
			{
				Name:  "ℹ️ Informações",
				Value: "`/lista_comandos` - Exibe esta lista de comandos",
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: embedFooter},
	}
	respondEmbed(s, i, embed)
}

// parseDateOptions extracts dia/mes/ano. Replies to the interaction and
// returns ok=false when dia or mes is not numeric.
func (h *CommandHandler) parseDateOptions(s *discordgo.Session, i *discordgo.InteractionCreate) (day, month, year int, ok bool) {
	opts := optionsByName(i.ApplicationCommandData().Options)

	day, dayErr := strconv.Atoi(strings.TrimSpace(opts["dia"].StringValue()))
	month, monthErr := strconv.Atoi(strings.TrimSpace(opts["mes"].StringValue()))
	if dayErr != nil || monthErr != nil {
		respondEphemeral(s, i, "❌ Dia e mês devem ser números válidos!")
		return 0, 0, 0, false
	}
	return day, month, int(opts["ano"].IntValue()), true
}

func optionsByName(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		byName[opt.Name] = opt
	}
	return byName
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func formatBirthDate(b *birthday.Birthday) string {
	return fmt.Sprintf("%02d/%02d/%d", b.Day, b.Month, b.Year)
}

// formatBirthdayLine renders one list entry. Falls back to the raw user ID
// when the username could not be fetched.
func formatBirthdayLine(username string, b *birthday.Birthday, today time.Time) string {
	dateStr := formatBirthDate(b)
	if username == "" {
		return fmt.Sprintf("🎂 **Usuário %s**\n   📅 %s", b.UserID, dateStr)
	}

	emoji := "🎂"
	daysUntil := b.DaysUntil(today)
	until := fmt.Sprintf("%d dias", daysUntil)
	if b.Day == today.Day() && b.Month == int(today.Month()) {
		emoji = "🎉"
		until = "Hoje!"
	}
	return fmt.Sprintf("%s **%s**\n   📅 %s | %d anos | %s", emoji, username, dateStr, b.AgeOn(today), until)
}

// splitIntoFields packs the list entries into embed fields, respecting the
// per-field character limit.
func splitIntoFields(lines []string) []*discordgo.MessageEmbedField {
	fields := make([]*discordgo.MessageEmbedField, 0, 1)
	current := ""

	flush := func() {
		value := strings.TrimSpace(current)
		if value == "" {
			return
		}
		name := "📋 Aniversariantes"
		if len(fields) > 0 {
			name = "📋 Aniversariantes (continuação)"
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: name, Value: value})
	}

	for _, line := range lines {
		if len(current)+len(line)+1 > maxFieldLength {
			flush()
			current = ""
		}
		current += line + "\n"
	}
	flush()
	return fields
}
