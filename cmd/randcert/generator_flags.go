package main

import (
	"github.com/urfave/cli/v2"

	"randcert-go/pkg/congruential"
)

func generatorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:     "count",
			Aliases:  []string{"n"},
			Usage:    "number of values to generate `N`",
			Required: true,
		},
		&cli.Uint64Flag{Name: "multiplier", Aliases: []string{"a"}, Usage: "recurrence multiplier"},
		&cli.Uint64Flag{Name: "increment", Aliases: []string{"i"}, Usage: "recurrence increment (applied to the lagged value)"},
		&cli.Uint64Flag{Name: "modulus", Aliases: []string{"m"}, Usage: "recurrence modulus"},
		&cli.IntFlag{Name: "pool-size", Aliases: []string{"k"}, Usage: "seed pool size (default: derived from count)"},
		&cli.IntFlag{Name: "seed", Aliases: []string{"z"}, Usage: "four-digit middle-square seed"},
		&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"},
	}
}

// generatorConfig layers explicit flags over the configured settings.
func generatorConfig(c *cli.Context) congruential.Config {
	settings := appConfig.Generator
	if c.IsSet("multiplier") {
		settings.Multiplier = c.Uint64("multiplier")
	}
	if c.IsSet("increment") {
		settings.Increment = c.Uint64("increment")
	}
	if c.IsSet("modulus") {
		settings.Modulus = c.Uint64("modulus")
	}
	if c.IsSet("seed") {
		settings.InitialSeed = c.Int("seed")
	}
	cfg := settings.For(c.Int("count"))
	if c.IsSet("pool-size") {
		cfg.PoolSize = c.Int("pool-size")
	}
	return cfg
}
