package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"randcert-go/pkg/log"
)

const logsCommandHelpTemplate = `NAME:
   {{.HelpName}} - {{.Usage}}

USAGE:
   {{.HelpName}} {{if .UsageText}}{{.UsageText}}{{else}}[command options]{{end}}
{{if .Description}}
DESCRIPTION:
   {{.Description | Indent 4}}
{{end}}
MODES (choose one; defaults to --last):
     --last                 Retrieve the most recent N log entries.
     --since                Retrieve logs since a start time up to now.
     --between              Retrieve logs between a start and an end time.

OPTIONS:
{{range .VisibleFlags}}   {{.}}
{{end}}
TIME SPECIFICATION (<time_spec>):
     1. Relative duration back from now: "5m", "1h30m", "2d", "1w".
        Units: s, m, h, d (days), w (weeks).
     2. Absolute timestamp, RFC3339 or close to it. Local time is assumed
        when no zone is given.
        Examples: "2023-10-27T15:04:05Z", "2023-10-27 10:00:00", "2023-10-27".

EXAMPLES:
     # Last 50 events of the configured log database
     randcert logs -n 50

     # Everything certified in the last hour, pretty-printed
     randcert logs --since -s 1h --pretty

     # Events between two days ago and yesterday from another database
     randcert logs -f /var/lib/randcert/logs.db --between -s 2d -e 1d

`

var logsCommand = &cli.Command{
	Name:               "logs",
	Usage:              "Retrieve JSON log entries from the log database",
	UsageText:          "randcert logs [--last|--since|--between] [options]",
	Description:        `Reads the SQLite log database named by log_db, or the one given with -f/--dbfile.`,
	CustomHelpTemplate: logsCommandHelpTemplate,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dbfile",
			Aliases: []string{"f"},
			Usage:   "SQLite log database `PATH` (default: log_db from the configuration)",
		},
		&cli.BoolFlag{
			Name:    "pretty",
			Aliases: []string{"p"},
			Usage:   "Print one line per event instead of raw JSON",
		},
		&cli.BoolFlag{Name: "last", Usage: "Mode: the most recent N entries (default)"},
		&cli.BoolFlag{Name: "since", Usage: "Mode: entries since a start time"},
		&cli.BoolFlag{Name: "between", Usage: "Mode: entries between a start and an end time"},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "Number of entries for --last `NUMBER`",
			Value:   100,
		},
		&cli.StringFlag{
			Name:    "start",
			Aliases: []string{"s"},
			Usage:   "Start time for --since/--between `TIME_SPEC`",
		},
		&cli.StringFlag{
			Name:    "end",
			Aliases: []string{"e"},
			Usage:   "End time for --between `TIME_SPEC`",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "Max entries for --since/--between `NUMBER`",
			Value:   1000,
		},
	},
	Action: logsCmd,
}

func logsCmd(c *cli.Context) error {
	modes := 0
	for _, m := range []string{"last", "since", "between"} {
		if c.Bool(m) {
			modes++
		}
	}
	if modes > 1 {
		return cli.Exit("Error: Only one mode flag (--last, --since, --between) can be specified at a time.", 1)
	}

	if db := c.String("dbfile"); db != "" {
		if err := log.Close(); err != nil {
			return cli.Exit(err.Error(), 2)
		}
		if _, err := os.Stat(db); err != nil {
			return cli.Exit(fmt.Sprintf("Error: Database file not found at '%s'", db), 1)
		}
		if err := log.Init(db, false); err != nil {
			return cli.Exit(fmt.Sprintf("Error opening log database: %v", err), 1)
		}
	}

	now := time.Now()
	var (
		results []log.LogEntry
		err     error
	)
	switch {
	case c.Bool("since"):
		if !c.IsSet("start") {
			return cli.Exit("Error: --start (-s) flag is required for --since mode.", 1)
		}
		start, perr := parseTimeSpec(c.String("start"), now)
		if perr != nil {
			return cli.Exit(perr.Error(), 1)
		}
		results, err = log.Since(start, c.Int("limit"))
	case c.Bool("between"):
		if !c.IsSet("start") || !c.IsSet("end") {
			return cli.Exit("Error: --start (-s) and --end (-e) are required for --between mode.", 1)
		}
		start, perr := parseTimeSpec(c.String("start"), now)
		if perr != nil {
			return cli.Exit(perr.Error(), 1)
		}
		end, perr := parseTimeSpec(c.String("end"), now)
		if perr != nil {
			return cli.Exit(perr.Error(), 1)
		}
		if start.After(end) {
			fmt.Fprintf(os.Stderr, "Warning: Start time (%s) is after end time (%s).\n", start.Format(time.RFC3339), end.Format(time.RFC3339))
		}
		results, err = log.Between(start, end, c.Int("limit"))
	default:
		if c.IsSet("start") || c.IsSet("end") {
			fmt.Fprintln(os.Stderr, "Warning: --start (-s) and --end (-e) flags are ignored in --last mode.")
		}
		if c.Int("count") <= 0 {
			return cli.Exit("Error: --count (-n) must be a positive number.", 1)
		}
		results, err = log.Last(c.Int("count"))
	}

	if err != nil {
		if errors.Is(err, log.ErrNotInitialized) {
			return cli.Exit("Error: no log database is open (log_db unset or unavailable).", 2)
		}
		return cli.Exit(fmt.Sprintf("Error retrieving logs: %v", err), 1)
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No log entries found matching the criteria.")
		return nil
	}
	for _, entry := range results {
		if c.Bool("pretty") {
			fmt.Println(prettyEntry(entry))
		} else {
			fmt.Println(entry.LogData)
		}
	}
	return nil
}

// prettyEntry renders time, level and message followed by the remaining
// fields. Entries that are not JSON objects are printed as stored.
func prettyEntry(entry log.LogEntry) string {
	var fields map[string]any
	if err := json.Unmarshal([]byte(entry.LogData), &fields); err != nil {
		return entry.LogData
	}
	line := fmt.Sprintf("%v %-5v %v", fields["time"], fields["level"], fields["message"])
	delete(fields, "time")
	delete(fields, "level")
	delete(fields, "message")
	if len(fields) > 0 {
		rest, _ := json.Marshal(fields)
		line += " " + string(rest)
	}
	return line
}
