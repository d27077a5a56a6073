package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/feliperocha/barberbot/config"
	"github.com/feliperocha/barberbot/paths"
)

func loadConfig() (*config.Config, string, error) {
	// A .env next to the binary is optional.
	_ = godotenv.Load()

	cfgPath, err := paths.ConfigPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, cfgPath, fmt.Errorf("failed to load config: %s\n%w", cfgPath, err)
	}

	applyEnvOverrides(cfg)
	return cfg, cfgPath, nil
}

func applyEnvOverrides(cfg *config.Config) {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Panel.Listen = ":" + strings.TrimPrefix(v, ":")
	}
	if v := strings.TrimSpace(os.Getenv("BARBERBOT_CLIENTS_PATH")); v != "" {
		cfg.Store.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("BARBERBOT_WHATSAPP_DB")); v != "" {
		cfg.WhatsApp.DBPath = v
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
