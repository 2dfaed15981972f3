package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"randcert-go/pkg/appdir"
	"randcert-go/pkg/certify"
	"randcert-go/pkg/log"
	"randcert-go/pkg/reportstore"
	"randcert-go/pkg/transform"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// appConfig is loaded once in the App's Before hook.
var appConfig *certify.Config

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(exitStatus(err))
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "randcert",
		Usage:   "generate congruential sequences and certify them against statistical tests",
		Version: Version + " (" + BuildTime + ")",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file `PATH` (default: randcert.yaml in ., /etc/randcert, ~/.randcert)",
			},
			&cli.BoolFlag{
				Name:  "no-store",
				Usage: "do not read or write the report store",
			},
			&cli.BoolFlag{
				Name:  "console-log",
				Usage: "also write log events to stderr",
			},
		},
		Before: setup,
		After: func(*cli.Context) error {
			return log.Close()
		},
		Commands: []*cli.Command{
			generateCommand,
			certifyCommand,
			testCommand,
			serveCommand,
			reportsCommand,
			logsCommand,
		},
		// Exit codes are applied in main, once deferred closes and After have run.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// exitStatus prints err and returns the process exit code.
func exitStatus(err error) int {
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := ec.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		return ec.ExitCode()
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}

func setup(c *cli.Context) error {
	cfg, err := certify.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit("Error loading configuration: "+err.Error(), 2)
	}
	if c.IsSet("console-log") {
		cfg.ConsoleLog = c.Bool("console-log")
	}
	appConfig = cfg
	if err := log.Init(cfg.LogDB, cfg.ConsoleLog); err != nil {
		log.SetStd()
		log.Warn().Err(err).Msg("log database unavailable, logging to console")
	}
	return nil
}

// openStore returns nil without error when the store is disabled.
func openStore(c *cli.Context) (*reportstore.Store, error) {
	if c.Bool("no-store") {
		return nil, nil
	}
	codec, err := transform.ForStore(transform.StoreOptions{
		Compression: appConfig.StoreCompression,
		Level:       appConfig.StoreCompressionLevel,
		Passphrase:  appConfig.StorePassphrase,
	})
	if err != nil {
		return nil, err
	}
	return reportstore.Open(appdir.Path(appConfig.StorePath), codec)
}
