// Package randtest holds the statistical tests a generated sample has to pass
// before it is considered usable: monobit, chi-squared, poker and runs. Every
// test is a pure function of the sample. Failures, including the ones that
// make a test impossible to evaluate, are reported as a failed verdict with
// an error attached, never as a panic.
package randtest

import (
	"context"

	"golang.org/x/sync/errgroup"

	"randcert-go/pkg/congruential"
)

// Outcome is the test-independent summary of one evaluation.
type Outcome struct {
	Test      string  `json:"test"`
	Pass      bool    `json:"pass"`
	Statistic float64 `json:"statistic"`
	Threshold float64 `json:"threshold"`
	Err       error   `json:"-"`
	Error     string  `json:"error,omitempty"`
}

func newOutcome(test string, pass bool, statistic, threshold float64, err error) Outcome {
	o := Outcome{Test: test, Pass: pass && err == nil, Statistic: statistic, Threshold: threshold, Err: err}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}

// Test is implemented by each statistical test.
type Test interface {
	Name() string
	Evaluate(s *congruential.Sample) Outcome
}

// Verdicts holds the four pass/fail results.
type Verdicts struct {
	Monobit    bool `json:"monobit"`
	ChiSquared bool `json:"chiSquared"`
	Poker      bool `json:"poker"`
	Runs       bool `json:"runs"`
}

// Usable reports whether every test passed.
func (v Verdicts) Usable() bool {
	return v.Monobit && v.ChiSquared && v.Poker && v.Runs
}

// Report bundles the verdicts with the per-test outcomes, in suite order.
type Report struct {
	Verdicts Verdicts  `json:"verdicts"`
	Outcomes []Outcome `json:"outcomes"`
}

// Suite returns the four tests in their reporting order.
func Suite() []Test {
	return []Test{MonobitTest{}, ChiSquaredTest{}, PokerTest{}, RunsTest{}}
}

// Evaluate runs the whole suite concurrently. Each test writes only its own
// slot, so the report does not depend on scheduling.
func Evaluate(ctx context.Context, s *congruential.Sample) (Report, error) {
	tests := Suite()
	outcomes := make([]Outcome, len(tests))
	g, ctx := errgroup.WithContext(ctx)
	for i, t := range tests {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = t.Evaluate(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return Report{
		Verdicts: Verdicts{
			Monobit:    outcomes[0].Pass,
			ChiSquared: outcomes[1].Pass,
			Poker:      outcomes[2].Pass,
			Runs:       outcomes[3].Pass,
		},
		Outcomes: outcomes,
	}, nil
}

// RunAll returns the four verdicts for s.
func RunAll(s *congruential.Sample) Verdicts {
	r, _ := Evaluate(context.Background(), s)
	return r.Verdicts
}
