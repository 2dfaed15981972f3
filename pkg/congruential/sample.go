package congruential

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FractionPlaces is the scale at which Value/Modulus is kept. Any uint64
// quotient is at least 1/(10*Modulus) away from a tenth boundary, so 24
// places decide every half and decile comparison exactly.
const FractionPlaces = 24

var (
	half = decimal.RequireFromString("0.5")
	ten  = decimal.NewFromInt(10)
)

// Element is one generated value seen both as digits and as a fraction of
// the modulus.
type Element struct {
	Value    uint64          `json:"value"`
	Digits   Digits          `json:"digits"`
	Fraction decimal.Decimal `json:"fraction"`
}

// Digits are the decimal digits of a value, most significant first. They
// marshal as a digit string such as "04864".
type Digits []uint8

func (d Digits) String() string {
	b := make([]byte, len(d))
	for i, v := range d {
		b[i] = '0' + v
	}
	return string(b)
}

func (d Digits) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Digits) UnmarshalText(text []byte) error {
	out := make(Digits, len(text))
	for i, c := range text {
		if c < '0' || c > '9' {
			return fmt.Errorf("congruential: invalid digit %q", c)
		}
		out[i] = c - '0'
	}
	*d = out
	return nil
}

// Sample is the output of Generate. Every element has Width digits.
type Sample struct {
	Modulus  uint64    `json:"modulus"`
	Width    int       `json:"width"`
	Elements []Element `json:"elements"`
}

// NewSample builds a sample from an existing sequence. Every value must be
// below modulus.
func NewSample(values []uint64, modulus uint64) (*Sample, error) {
	if modulus == 0 {
		return nil, &ConfigurationError{Field: "modulus", Value: modulus, Reason: "must not be zero"}
	}
	var widest uint64
	for i, v := range values {
		if v >= modulus {
			return nil, &SequenceValidityError{Index: i, Value: v, Modulus: modulus}
		}
		widest = max(widest, v)
	}
	return buildSample(values, modulus, Width(widest)), nil
}

func buildSample(values []uint64, modulus uint64, width int) *Sample {
	m := decimal.NewFromUint64(modulus)
	elements := make([]Element, len(values))
	for i, v := range values {
		elements[i] = Element{
			Value:    v,
			Digits:   decompose(v, width),
			Fraction: decimal.NewFromUint64(v).DivRound(m, FractionPlaces),
		}
	}
	return &Sample{Modulus: modulus, Width: width, Elements: elements}
}

// Len returns the number of elements.
func (s *Sample) Len() int { return len(s.Elements) }

// Values returns the underlying integers in order.
func (s *Sample) Values() []uint64 {
	out := make([]uint64, len(s.Elements))
	for i, e := range s.Elements {
		out[i] = e.Value
	}
	return out
}

// Upper reports whether the i-th fraction lies in [0.5, 1).
func (s *Sample) Upper(i int) bool {
	return s.Elements[i].Fraction.GreaterThanOrEqual(half)
}

// Decile returns floor(fraction / 0.1) for the i-th element, in [0, 9].
func (s *Sample) Decile(i int) int {
	return int(s.Elements[i].Fraction.Mul(ten).IntPart())
}

// Float64 returns the i-th fraction as a float64.
func (s *Sample) Float64(i int) float64 {
	return s.Elements[i].Fraction.InexactFloat64()
}
