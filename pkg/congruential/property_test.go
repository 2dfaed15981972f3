package congruential

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"randcert-go/pkg/middlesquare"
)

func TestGenerateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60

	properties := gopter.NewProperties(parameters)

	properties.Property("a sample has exactly count elements or none", prop.ForAll(
		func(count, seed int) bool {
			cfg := NewConfig(count)
			cfg.InitialSeed = seed
			s, err := Generate(cfg)
			if err != nil {
				return s == nil
			}
			return s.Len() == count
		},
		gen.IntRange(1, 2500),
		gen.IntRange(middlesquare.MinSeed, middlesquare.MaxSeed),
	))

	properties.Property("digits share one width and rebuild the value", prop.ForAll(
		func(count, seed int) bool {
			cfg := NewConfig(count)
			cfg.InitialSeed = seed
			s, err := Generate(cfg)
			if err != nil {
				return false
			}
			for _, e := range s.Elements {
				if len(e.Digits) != s.Width {
					return false
				}
				var v uint64
				for _, d := range e.Digits {
					v = v*10 + uint64(d)
				}
				if v != e.Value {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 600),
		gen.IntRange(middlesquare.MinSeed, middlesquare.MaxSeed),
	))

	properties.Property("values and fractions stay in range", prop.ForAll(
		func(count int, modulus uint64) bool {
			cfg := NewConfig(count)
			cfg.Modulus = modulus
			s, err := Generate(cfg)
			if err != nil {
				// only seeds above the modulus may fail
				return modulus <= 9999
			}
			m := decimal.NewFromUint64(modulus)
			for _, e := range s.Elements {
				if e.Value >= modulus {
					return false
				}
				if e.Fraction.IsNegative() || !e.Fraction.LessThan(decimal.NewFromInt(1)) {
					return false
				}
				if e.Fraction.Mul(m).Round(0).BigInt().Uint64() != e.Value {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 600),
		gen.UInt64Range(2, 1<<40),
	))

	properties.TestingRun(t)
}
