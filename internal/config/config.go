package config

import (
	"os"
)

type Config struct {
	Addr          string
	DatabaseURL   string
	SQLitePath    string
	SessionSecret string
	TemplateGlob  string
}

// LoadConfig reads the configuration from the environment. DATABASE_URL
// selects postgres; without it the app falls back to a local sqlite file.
func LoadConfig() *Config {
	return &Config{
		Addr:          ":" + env("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    env("SQLITE_PATH", "plume.db"),
		SessionSecret: env("SESSION_SECRET", "dev-secret-change-me"),
		TemplateGlob:  env("TEMPLATE_GLOB", "web/templates/*.html"),
	}
}

func env(key, fallbackValue string) string {
	s := os.Getenv(key)
	if s == "" {
		return fallbackValue
	}
	return s
}
