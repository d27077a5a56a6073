package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	root := &cli.Command{
		Name:    "barberbot",
		Usage:   "WhatsApp bot da barbearia: comandos de agendamento + painel web",
		Version: resolveVersion(),
		Commands: []*cli.Command{
			cmdRun(),
			cmdLogin(),
			cmdStatus(),
			cmdVersion(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		cli.HandleExitCoder(err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
