package randtest

import (
	"math"

	"randcert-go/pkg/congruential"
)

// ChiSquaredCritical is the chi-squared quantile for alpha = 0.1 with 9
// degrees of freedom.
const ChiSquaredCritical = 14.6837

// ChiSquaredResult holds the ten-bucket tallies and both statistics.
type ChiSquaredResult struct {
	DigitCounts     [10]int
	DecileCounts    [10]int
	DigitStatistic  float64
	DecileStatistic float64
	Pass            bool
	Err             error
}

// EvaluateChiSquared compares the digit frequencies and the fraction deciles
// against a uniform distribution.
func EvaluateChiSquared(s *congruential.Sample) ChiSquaredResult {
	if s.Len() == 0 {
		return ChiSquaredResult{Err: ErrEmptySample}
	}
	var r ChiSquaredResult
	for i, e := range s.Elements {
		for _, d := range e.Digits {
			r.DigitCounts[d]++
		}
		r.DecileCounts[s.Decile(i)]++
	}
	r.DigitStatistic = chiSquared(r.DigitCounts, float64(s.Len()*s.Width)/10)
	r.DecileStatistic = chiSquared(r.DecileCounts, float64(s.Len())/10)
	r.Pass = r.DigitStatistic < ChiSquaredCritical && r.DecileStatistic < ChiSquaredCritical
	return r
}

func chiSquared(observed [10]int, expected float64) float64 {
	var sum float64
	for _, o := range observed {
		d := float64(o) - expected
		sum += d * d / expected
	}
	return sum
}

// ChiSquared reports whether s passes the chi-squared test.
func ChiSquared(s *congruential.Sample) bool {
	return EvaluateChiSquared(s).Pass
}

// Outcome reports the larger of the two statistics.
func (r ChiSquaredResult) Outcome() Outcome {
	return newOutcome("chi-squared", r.Pass, math.Max(r.DigitStatistic, r.DecileStatistic), ChiSquaredCritical, r.Err)
}

type ChiSquaredTest struct{}

func (ChiSquaredTest) Name() string { return "chi-squared" }

func (ChiSquaredTest) Evaluate(s *congruential.Sample) Outcome {
	return EvaluateChiSquared(s).Outcome()
}
