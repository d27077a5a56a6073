package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

func StateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".barberbot"), nil
}

func ConfigPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func ClientsPath() string {
	dir, err := StateDir()
	if err != nil {
		// Should never happen after startup; keep a sane fallback.
		return ".barberbot/clients.json"
	}
	return filepath.Join(dir, "clients.json")
}

func WhatsAppDBPath() string {
	dir, err := StateDir()
	if err != nil {
		return ".barberbot/whatsapp.db"
	}
	return filepath.Join(dir, "whatsapp.db")
}

func EnsureStateDirs() error {
	dir, err := StateDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
