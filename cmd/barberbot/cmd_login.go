package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"github.com/feliperocha/barberbot/bus"
	"github.com/feliperocha/barberbot/channels/whatsapp"
	"github.com/feliperocha/barberbot/paths"
)

func cmdLogin() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "pair the WhatsApp session (scan the QR code)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if err := paths.EnsureStateDirs(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			fmt.Println("starting whatsapp login flow")
			fmt.Println("scan QR code if shown. stop: Ctrl+C")

			ch := whatsapp.New(cfg.WhatsApp, bus.New(8), newLogger())
			err = ch.Start(ctx)
			if err == nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
