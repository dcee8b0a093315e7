package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	JWT      JWTConfig
	Google   GoogleConfig
	Mail     MailConfig
	WhatsApp WhatsAppConfig
}

type ServerConfig struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowedOrigin   string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`
}

type MongoConfig struct {
	URI      string `env:"MONGOURI"`
	Database string `env:"MONGO_DATABASE" envDefault:"printmaania"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" envDefault:"super-secret-key"`
	Expiry time.Duration `env:"JWT_EXPIRY" envDefault:"8760h"` // 365 days
}

type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL" envDefault:"postmessage"`
}

type MailConfig struct {
	APIURL       string `env:"MAIL_API_URL"`
	APIKey       string `env:"MAIL_API_KEY"`
	FromAddress  string `env:"MAIL_FROM" envDefault:"orders@printmaania.com"`
	AdminAddress string `env:"ADMIN_EMAIL" envDefault:"admin@printmaania.com"`
}

type WhatsAppConfig struct {
	APIURL      string `env:"WHATSAPP_API_URL"`
	Token       string `env:"WHATSAPP_TOKEN"`
	AdminNumber string `env:"ADMIN_WHATSAPP_NUMBER"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
