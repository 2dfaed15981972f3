package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"randcert-go/pkg/api"
	"randcert-go/pkg/certify"
	"randcert-go/pkg/log"
)

var serveCommand = &cli.Command{
	Name:      "serve",
	Usage:     "serve the HTTP API",
	UsageText: "randcert serve [--listen ADDR]",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "listen", Aliases: []string{"l"}, Usage: "listen address `ADDR` (overrides api_listen_address)"},
	},
	Action: serveCmd,
}

func serveCmd(c *cli.Context) error {
	addr := appConfig.APIListenAddr
	if c.IsSet("listen") {
		addr = c.String("listen")
	}
	store, err := openStore(c)
	if err != nil {
		return cli.Exit("Error opening report store: "+err.Error(), 2)
	}
	if store != nil {
		defer store.Close()
	}

	srv := api.New(certify.New(store), store, appConfig.Generator)
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down api")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("api shutdown")
		}
	}()
	if err := srv.Run(addr); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	return nil
}
