package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/feliperocha/barberbot/bot"
	"github.com/feliperocha/barberbot/bus"
	"github.com/feliperocha/barberbot/channels"
	"github.com/feliperocha/barberbot/channels/whatsapp"
	"github.com/feliperocha/barberbot/panel"
	"github.com/feliperocha/barberbot/paths"
	"github.com/feliperocha/barberbot/store"
)

func cmdRun() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run the bot and the admin panel",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Usage: "admin panel listen address (default from config.panel.listen or PORT)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, cfgPath, err := loadConfig()
			if err != nil {
				return err
			}
			if v := strings.TrimSpace(cmd.String("listen")); v != "" {
				cfg.Panel.Listen = v
			}

			if err := paths.EnsureStateDirs(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			log := newLogger()

			st, err := store.Open(cfg.Store.Path)
			if err != nil {
				return fmt.Errorf("open client store: %w", err)
			}

			b := bus.New(64)
			session := bot.New(b, st, log.With().Str("component", "bot").Logger())

			cm := channels.NewManager(b, log.With().Str("component", "channels").Logger())
			if cfg.WhatsApp.Enabled {
				cm.Add(whatsapp.New(cfg.WhatsApp, b, log.With().Str("component", "whatsapp").Logger()))
			}
			cm.StartAll(ctx)

			go func() { _ = session.Run(ctx) }()

			srv := panel.New(st, log.With().Str("component", "panel").Logger())
			go func() {
				if err := srv.Run(ctx, cfg.Panel.Listen); err != nil {
					log.Error().Err(err).Str("listen", cfg.Panel.Listen).Msg("panel stopped")
					stop()
				}
			}()

			fmt.Printf("barberbot running\n- config: %s\n- clients: %s\n- panel: http://localhost%s/\n", cfgPath, cfg.Store.Path, cfg.Panel.Listen)
			fmt.Println("stop: Ctrl+C")
			<-ctx.Done()

			_ = cm.StopAll()
			return nil
		},
	}
}
