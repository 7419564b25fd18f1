package models

// TelegramConfig stores the bot credentials and basic settings
type TelegramConfig struct {
	IsEnabled bool   `json:"is_enabled"`
	BotToken  string `json:"bot_token"`
	ChatID    string `json:"chat_id"`
}

// Configured reports whether notifications can be sent at all.
func (c *TelegramConfig) Configured() bool {
	return c != nil && c.IsEnabled && c.BotToken != "" && c.ChatID != ""
}
