package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"randcert-go/pkg/randtest"
	"randcert-go/pkg/reportstore"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "FAIL"
}

func printOutcomes(w io.Writer, outcomes []randtest.Outcome) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEST\tRESULT\tSTATISTIC\tTHRESHOLD\tERROR")
	for _, o := range outcomes {
		fmt.Fprintf(tw, "%s\t%s\t%.6g\t%.6g\t%s\n", o.Test, passFail(o.Pass), o.Statistic, o.Threshold, o.Error)
	}
	tw.Flush()
}

func printReport(w io.Writer, r *reportstore.Report) {
	fmt.Fprintf(w, "report      %s\n", r.ID)
	fmt.Fprintf(w, "created     %s\n", r.CreatedAt.Format("2006-01-02 15:04:05Z07:00"))
	fmt.Fprintf(w, "fingerprint %016x\n", r.Fingerprint)
	fmt.Fprintf(w, "config      count=%d a=%d c=%d m=%d k=%d z=%d\n",
		r.Config.Count, r.Config.Multiplier, r.Config.Increment, r.Config.Modulus, r.Config.PoolSize, r.Config.InitialSeed)
	if r.Failure != "" {
		fmt.Fprintf(w, "failure     %s\n", r.Failure)
	} else {
		fmt.Fprintf(w, "width       %d\n\n", r.Width)
		printOutcomes(w, r.Outcomes)
	}
	fmt.Fprintf(w, "\nusable: %t\n", r.Usable)
}
