package randtest

import (
	"math"

	"randcert-go/internal/fn"
	"randcert-go/pkg/congruential"
)

// MonobitAlpha is the significance level of the monobit test.
const MonobitAlpha = 0.01

// MonobitResult holds the signed balance counters and their tail
// probabilities. Digits 5-9 and fractions >= 0.5 count +1, the rest -1.
type MonobitResult struct {
	DigitSum    int
	FractionSum int
	DigitP      float64
	FractionP   float64
	Pass        bool
	Err         error
}

// EvaluateMonobit runs the frequency test on digits and fractions.
func EvaluateMonobit(s *congruential.Sample) MonobitResult {
	if s.Len() == 0 {
		return MonobitResult{Err: ErrEmptySample}
	}
	var r MonobitResult
	for i, e := range s.Elements {
		for _, d := range e.Digits {
			r.DigitSum += fn.T(d >= 5, 1, -1)
		}
		r.FractionSum += fn.T(s.Upper(i), 1, -1)
	}
	r.DigitP = monobitP(r.DigitSum, s.Len()*s.Width)
	r.FractionP = monobitP(r.FractionSum, s.Len())
	r.Pass = r.DigitP >= MonobitAlpha && r.FractionP >= MonobitAlpha
	return r
}

// monobitP returns erfc(sqrt(S^2 / 2N)), i.e. erfc(|S|/sqrt(N)/sqrt(2)).
func monobitP(sum, n int) float64 {
	z := float64(sum) * float64(sum) / (2 * float64(n))
	return math.Erfc(math.Sqrt(z))
}

// Monobit reports whether s passes the monobit test.
func Monobit(s *congruential.Sample) bool {
	return EvaluateMonobit(s).Pass
}

// Outcome reports the smaller of the two tail probabilities.
func (r MonobitResult) Outcome() Outcome {
	return newOutcome("monobit", r.Pass, math.Min(r.DigitP, r.FractionP), MonobitAlpha, r.Err)
}

type MonobitTest struct{}

func (MonobitTest) Name() string { return "monobit" }

func (MonobitTest) Evaluate(s *congruential.Sample) Outcome {
	return EvaluateMonobit(s).Outcome()
}
