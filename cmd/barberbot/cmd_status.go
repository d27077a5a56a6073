package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/feliperocha/barberbot/store"
)

func cmdStatus() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "show configuration and registered clients",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, cfgPath, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("config: %s\n", cfgPath)
			fmt.Printf("panel.listen=%s\n", cfg.Panel.Listen)
			fmt.Printf("whatsapp.enabled=%v\n", cfg.WhatsApp.Enabled)
			fmt.Printf("store.path=%s\n", cfg.Store.Path)

			st, err := store.Open(cfg.Store.Path)
			if err != nil {
				return fmt.Errorf("open client store: %w", err)
			}
			clients, err := st.List()
			if err != nil {
				return err
			}
			allowed := 0
			for _, c := range clients {
				if c.Allowed {
					allowed++
				}
			}
			fmt.Printf("clients: %d (%d allowed, %d blocked)\n", len(clients), allowed, len(clients)-allowed)
			return nil
		},
	}
}
