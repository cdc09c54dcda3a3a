// Package email holds transactional email configuration. Delivery itself is
// handled by the external provider; none of the shown flows send mail, so
// this stays configuration only.
package email

import (
	"log"
	"os"

	// Load env
	_ "github.com/joho/godotenv/autoload"
)

// Config is the transactional email provider configuration
type Config struct {
	APIKey       string
	SenderEmail  string
	AppName      string
	AppURL       string
	SupportEmail string
}

// FromEnv builds the email configuration from environment variables
func FromEnv() Config {
	cfg := Config{
		APIKey:       os.Getenv("EMAIL_API_KEY"),
		SenderEmail:  os.Getenv("EMAIL_SENDER"),
		AppName:      "CampusConnect",
		AppURL:       os.Getenv("APP_URL"),
		SupportEmail: os.Getenv("EMAIL_SUPPORT"),
	}
	if cfg.AppURL == "" {
		cfg.AppURL = "http://localhost:3000"
	}
	if cfg.APIKey == "" {
		log.Println("EMAIL_API_KEY is not set, email service will not function")
	}
	return cfg
}

// Enabled reports whether the email provider is configured
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
