package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting of the service.
type Config struct {
	AppPort string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	RabbitMQURL string

	Mail     MailConfig
	WhatsApp WhatsAppConfig

	HouseClientID     string
	Timezone          string
	ImageFetchTimeout time.Duration
}

// MailConfig holds SMTP credentials. Empty values are reported per request.
type MailConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	Recipient string // inbox receiving the order detail emails
}

// WhatsAppConfig points at the hosted WhatsApp gateway.
type WhatsAppConfig struct {
	APIURL   string
	APIKey   string
	Instance string
	ChatID   string
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:         v.GetString("APP_PORT"),
		DatabaseDriver:  v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		AccessTokenTTL:  v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL: v.GetDuration("REFRESH_TOKEN_TTL"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		Mail: MailConfig{
			Host:      v.GetString("SMTP_HOST"),
			Port:      v.GetInt("SMTP_PORT"),
			User:      v.GetString("EMAIL_USER"),
			Password:  v.GetString("EMAIL_PASS"),
			Recipient: v.GetString("RECEIVE_EMAIL_USER"),
		},
		WhatsApp: WhatsAppConfig{
			APIURL:   v.GetString("WHATSAPP_API_URL"),
			APIKey:   v.GetString("WHATSAPP_API_KEY"),
			Instance: v.GetString("WHATSAPP_INSTANCE"),
			ChatID:   v.GetString("WHATSAPP_CHAT_ID"),
		},
		HouseClientID:     v.GetString("HOUSE_CLIENT_ID"),
		Timezone:          v.GetString("TIMEZONE"),
		ImageFetchTimeout: v.GetDuration("IMAGE_FETCH_TIMEOUT"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not defined")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=newpack port=5432 sslmode=disable")
	v.SetDefault("ACCESS_TOKEN_TTL", 15*time.Minute)
	v.SetDefault("REFRESH_TOKEN_TTL", 30*24*time.Hour)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 465)
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("IMAGE_FETCH_TIMEOUT", 10*time.Second)
}
