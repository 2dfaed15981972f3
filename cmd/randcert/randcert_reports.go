package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"randcert-go/pkg/reportstore"
)

var reportsCommand = &cli.Command{
	Name:  "reports",
	Usage: "inspect stored certification reports",
	Subcommands: []*cli.Command{
		{
			Name:  "list",
			Usage: "list reports, newest first",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "at most `NUMBER` reports (0 for all)"},
			},
			Action: reportsListCmd,
		},
		{
			Name:      "show",
			Usage:     "show one report",
			ArgsUsage: "ID",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "json", Usage: "print JSON"},
			},
			Action: reportsShowCmd,
		},
	},
}

func withStore(c *cli.Context, fn func(*reportstore.Store) error) error {
	if c.Bool("no-store") {
		return cli.Exit("the report store is disabled (--no-store)", 2)
	}
	store, err := openStore(c)
	if err != nil {
		return cli.Exit("Error opening report store: "+err.Error(), 2)
	}
	defer store.Close()
	return fn(store)
}

func reportsListCmd(c *cli.Context) error {
	return withStore(c, func(store *reportstore.Store) error {
		reports, err := store.List(c.Int("limit"))
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED\tCOUNT\tMODULUS\tUSABLE")
		for _, r := range reports {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%t\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Count, r.Config.Modulus, r.Usable)
		}
		return tw.Flush()
	})
}

func reportsShowCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("Error: expected exactly one report ID", 1)
	}
	id, err := uuid.Parse(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: malformed report ID: %v", err), 1)
	}
	return withStore(c, func(store *reportstore.Store) error {
		r, err := store.Get(id)
		if errors.Is(err, reportstore.ErrNotFound) {
			return cli.Exit(err.Error(), 1)
		}
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		if c.Bool("json") {
			return printJSON(r)
		}
		printReport(os.Stdout, r)
		return nil
	})
}
