package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config is the environment surface of the service. DEFAULT_ADMIN_EMAILS
// is the allow-list of addresses that receive the admin role on their
// first login.
type Config struct {
	HTTPPort           string
	DatabaseURL        string
	SessionSecret      string
	IdentitySecret     string
	SessionTTL         time.Duration
	DefaultAdminEmails []string
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPPort:       os.Getenv("HTTP_PORT"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		IdentitySecret: os.Getenv("IDENTITY_SECRET"),
		SessionTTL:     24 * time.Hour,
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is empty")
	}
	if cfg.IdentitySecret == "" {
		return nil, fmt.Errorf("IDENTITY_SECRET is empty")
	}
	if s := os.Getenv("SESSION_TTL"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("parsing SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}
	for _, email := range strings.Split(os.Getenv("DEFAULT_ADMIN_EMAILS"), ",") {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			cfg.DefaultAdminEmails = append(cfg.DefaultAdminEmails, email)
		}
	}
	return cfg, nil
}
