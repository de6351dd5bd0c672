package settings

// Settings holds the bot's announcement destination. One guild and one
// channel are configured at a time; corresponds to the single-row
// 'bot_settings' table.
type Settings struct {
	GuildID   string
	ChannelID string
}

// Configured reports whether an announcement channel has been set.
func (s *Settings) Configured() bool {
	return s != nil && s.GuildID != "" && s.ChannelID != ""
}
