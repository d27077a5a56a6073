package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/feliperocha/barberbot/paths"
)

type Config struct {
	Panel    PanelConfig    `json:"panel"`
	WhatsApp WhatsAppConfig `json:"whatsapp"`
	Store    StoreConfig    `json:"store"`
}

type PanelConfig struct {
	// Listen is the admin panel address, e.g. ":3000".
	Listen string `json:"listen"`
}

type WhatsAppConfig struct {
	Enabled bool   `json:"enabled"`
	DBPath  string `json:"dbPath"`
}

type StoreConfig struct {
	Path string `json:"path"`
}

const DefaultListen = ":3000"

func Default() *Config {
	return &Config{
		Panel: PanelConfig{Listen: DefaultListen},
		WhatsApp: WhatsAppConfig{
			Enabled: true,
			DBPath:  paths.WhatsAppDBPath(),
		},
		Store: StoreConfig{Path: paths.ClientsPath()},
	}
}

// Load reads the config file at path, starting from defaults so omitted
// fields keep their default values. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.Panel.Listen == "" {
		cfg.Panel.Listen = DefaultListen
	}
	if cfg.WhatsApp.DBPath == "" {
		cfg.WhatsApp.DBPath = paths.WhatsAppDBPath()
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = paths.ClientsPath()
	}
	return cfg, nil
}
