package config

import "os"

type Config struct {
	Port             string
	BookingDBHost    string
	BookingDBPort    string
	SessionCacheHost string
	SessionCachePort string
	JaegerAddress    string
	TelegramBotToken string
	TelegramChatID   string
	SMTPHost         string
	SMTPPort         string
	SMTPUser         string
	SMTPPassword     string
	EmailFromAddress string
	PublicBaseURL    string
}

func NewConfig() *Config {
	return &Config{
		Port:             os.Getenv("BOOKING_SERVICE_PORT"),
		BookingDBHost:    os.Getenv("BOOKING_DB_HOST"),
		BookingDBPort:    os.Getenv("BOOKING_DB_PORT"),
		SessionCacheHost: os.Getenv("SESSION_CACHE_HOST"),
		SessionCachePort: os.Getenv("SESSION_CACHE_PORT"),
		JaegerAddress:    os.Getenv("JAEGER_ADDRESS"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         os.Getenv("SMTP_PORT"),
		SMTPUser:         os.Getenv("SMTP_AUTH_MAIL"),
		SMTPPassword:     os.Getenv("SMTP_AUTH_PASSWORD"),
		EmailFromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
		PublicBaseURL:    os.Getenv("PUBLIC_BASE_URL"),
	}
}
