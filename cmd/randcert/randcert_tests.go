package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"randcert-go/pkg/certify"
)

const testDescription = `Reads whitespace-separated non-negative integers, each below the modulus,
from --file or standard input. Exits with status 1 when the sequence is not usable.`

var testCommand = &cli.Command{
	Name:        "test",
	Usage:       "run the statistical suite on an existing sequence",
	UsageText:   "randcert test --modulus M [--file PATH]",
	Description: testDescription,
	Flags: []cli.Flag{
		&cli.Uint64Flag{Name: "modulus", Aliases: []string{"m"}, Usage: "modulus the values were reduced by", Required: true},
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "read values from `PATH` instead of stdin"},
		&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"},
	},
	Action: testCmd,
}

func readValues(r io.Reader) ([]uint64, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var values []uint64
	for sc.Scan() {
		v, err := strconv.ParseUint(sc.Text(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", len(values)+1, err)
		}
		values = append(values, v)
	}
	return values, sc.Err()
}

func testCmd(c *cli.Context) error {
	in := io.Reader(os.Stdin)
	if path := c.String("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		defer f.Close()
		in = f
	}
	values, err := readValues(in)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	res, err := certify.TestValues(c.Context, values, c.Uint64("modulus"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if c.Bool("json") {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		printOutcomes(os.Stdout, res.Outcomes)
		fmt.Printf("\nusable: %t\n", res.Verdicts.Usable())
	}
	if !res.Verdicts.Usable() {
		return cli.Exit("", 1)
	}
	return nil
}
