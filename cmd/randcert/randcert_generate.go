package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"randcert-go/pkg/certify"
)

var generateCommand = &cli.Command{
	Name:      "generate",
	Usage:     "generate a sequence without testing it",
	UsageText: "randcert generate --count N [generator options]",
	Flags:     generatorFlags(),
	Action:    generateCmd,
}

func generateCmd(c *cli.Context) error {
	sample, err := certify.Generate(generatorConfig(c))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if c.Bool("json") {
		return printJSON(sample)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tVALUE\tDIGITS\tFRACTION\t")
	for i, e := range sample.Elements {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t\n", i+1, e.Value, e.Digits, e.Fraction.StringFixed(6))
	}
	return tw.Flush()
}
