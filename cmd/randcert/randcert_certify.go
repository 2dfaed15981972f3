package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"randcert-go/pkg/certify"
)

const certifyDescription = `Exits with status 1 when the sequence is not usable, so the command can
gate scripts. Results are cached in the report store by configuration.`

var certifyCommand = &cli.Command{
	Name:        "certify",
	Usage:       "generate a sequence and run the statistical suite on it",
	UsageText:   "randcert certify --count N [generator options]",
	Description: certifyDescription,
	Flags:       generatorFlags(),
	Action:      certifyCmd,
}

func certifyCmd(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return cli.Exit("Error opening report store: "+err.Error(), 2)
	}
	if store != nil {
		defer store.Close()
	}

	r, err := certify.New(store).Certify(c.Context, generatorConfig(c))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if c.Bool("json") {
		if err := printJSON(r); err != nil {
			return err
		}
	} else {
		printReport(os.Stdout, r)
	}
	if !r.Usable {
		return cli.Exit("", 1)
	}
	return nil
}
