package randtest

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"randcert-go/internal/fn"
	"randcert-go/pkg/congruential"
)

// RunsAlpha is the significance level of the runs test.
const RunsAlpha = 0.01

// RunsResult holds the run count around the 0.5 median and its normal
// approximation.
type RunsResult struct {
	Observed int
	Positive int
	Negative int
	Expected float64
	StdDev   float64
	Z        float64
	P        float64
	Pass     bool
	Err      error
}

// EvaluateRuns counts the crossings of 0.5 in the fraction sequence. The
// sequence is circular: the first element is compared with the last.
func EvaluateRuns(s *congruential.Sample) RunsResult {
	var r RunsResult
	n := s.Len()
	if n == 0 {
		r.Err = ErrEmptySample
		return r
	}
	r.Observed = fn.CountIf(n, func(i int) bool {
		return s.Upper(i) != s.Upper((i+n-1)%n)
	})
	r.Positive = fn.CountIf(n, s.Upper)
	r.Negative = n - r.Positive

	pos, neg := float64(r.Positive), float64(r.Negative)
	total := pos + neg
	r.Expected = 2*pos*neg/total + 1
	r.StdDev = math.Sqrt(2 * pos * neg * (2*pos*neg - pos - neg) / (total * total * (total - 1)))
	if r.StdDev == 0 || math.IsNaN(r.StdDev) {
		r.Err = ErrDegenerateRuns
		return r
	}
	r.Z = (float64(r.Observed) - r.Expected) / r.StdDev
	r.P = distuv.UnitNormal.CDF(-math.Abs(r.Z))
	r.Pass = r.P >= RunsAlpha
	return r
}

// Runs reports whether s passes the runs test.
func Runs(s *congruential.Sample) bool {
	return EvaluateRuns(s).Pass
}

func (r RunsResult) Outcome() Outcome {
	return newOutcome("runs", r.Pass, r.P, RunsAlpha, r.Err)
}

type RunsTest struct{}

func (RunsTest) Name() string { return "runs" }

func (RunsTest) Evaluate(s *congruential.Sample) Outcome {
	return EvaluateRuns(s).Outcome()
}
