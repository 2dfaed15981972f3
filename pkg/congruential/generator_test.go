package congruential

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"randcert-go/pkg/middlesquare"
)

// Output of the default parameters with count=50 and poolSize=25.
var regression50 = []uint64{
	48640, 59414, 352, 23134, 30609, 29847, 10806, 78294, 53511, 97094,
	8807, 37708, 92899, 73934, 64903, 86805, 37589, 11653, 1228, 98972,
	35806, 68943, 83214, 92480, 12930, 22893, 32714, 33592, 35931, 49488,
	34490, 81935, 91502, 36274, 16275, 28434, 89296, 32921, 91688, 85681,
	28385, 87406, 63394, 59758, 5095, 1188, 4656, 14473, 3668, 93775,
}

func TestGenerateRegression(t *testing.T) {
	cfg := NewConfig(50)
	if cfg.PoolSize != 25 {
		t.Fatalf("expected pool size 25, got %d", cfg.PoolSize)
	}
	s, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if diff := cmp.Diff(regression50, s.Values()); diff != "" {
		t.Errorf("unexpected sequence (-want +got):\n%s", diff)
	}
	if s.Width != 5 {
		t.Errorf("expected width 5, got %d", s.Width)
	}
	if s.Modulus != DefaultModulus {
		t.Errorf("expected modulus %d, got %d", DefaultModulus, s.Modulus)
	}
}

func TestGenerateFirstElementUsesFirstSeedTwice(t *testing.T) {
	pool := middlesquare.NewPool(1, DefaultInitialSeed)
	seed := uint64(pool.At(0))
	want := (DefaultMultiplier*seed + DefaultIncrement*seed) % DefaultModulus
	s, err := Generate(NewConfig(2))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got := s.Elements[0].Value; got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
}

func TestGeneratePoolBoundary(t *testing.T) {
	cfg := NewConfig(50)

	cfg.Count = cfg.PoolSize
	exact, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate(count=poolSize) failed: %v", err)
	}
	if diff := cmp.Diff(regression50[:25], exact.Values()); diff != "" {
		t.Errorf("count=poolSize (-want +got):\n%s", diff)
	}

	cfg.Count = cfg.PoolSize + 1
	lagged, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate(count=poolSize+1) failed: %v", err)
	}
	// The first lagged element uses y[0] instead of a seed.
	want := (7*regression50[24] + 13*regression50[0]) % DefaultModulus
	if got := lagged.Elements[25].Value; got != want || got != 22893 {
		t.Errorf("expected first lagged element %d, got %d", want, got)
	}
}

func TestStepLagBranch(t *testing.T) {
	cfg := Config{Count: 3, Multiplier: 2, Increment: 3, PoolSize: 1, Modulus: 101}
	pool := middlesquare.NewPool(1, 1115) // [2432]
	history := []uint64{40, 50}
	y, next, err := Step(cfg, pool, history, State{Index: 2, Prior: 50, Widest: 50})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	// (2*50 + 3*history[1]) mod 101
	if y != (2*50+3*50)%101 {
		t.Errorf("unexpected value %d", y)
	}
	if next.Index != 3 || next.Prior != y || next.Widest != 50 {
		t.Errorf("unexpected next state %+v", next)
	}
}

func TestGenerateSequenceValidity(t *testing.T) {
	tests := []struct {
		name    string
		modulus uint64
		index   int
		value   uint64
	}{
		// seeds for 1115 start 2432, 9146, ...
		{"first seed", 1000, 0, 2432},
		{"second seed", 5000, 1, 9146},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(10)
			cfg.Modulus = tt.modulus
			s, err := Generate(cfg)
			if s != nil {
				t.Fatalf("expected no sample, got %d elements", s.Len())
			}
			var sve *SequenceValidityError
			if !errors.As(err, &sve) {
				t.Fatalf("expected SequenceValidityError, got %v", err)
			}
			if sve.Index != tt.index || sve.Value != tt.value || sve.Modulus != tt.modulus {
				t.Errorf("unexpected error fields %+v", sve)
			}
			if !errors.Is(err, ErrOutOfRange) {
				t.Error("expected error to match ErrOutOfRange")
			}
		})
	}
}

func TestGenerateRejectsUnrunnableConfig(t *testing.T) {
	cases := map[string]Config{
		"zero count":   {Count: 0, PoolSize: 1, Modulus: 10, InitialSeed: 1115},
		"zero pool":    {Count: 5, PoolSize: 0, Modulus: 10, InitialSeed: 1115},
		"zero modulus": {Count: 5, PoolSize: 2, Modulus: 0, InitialSeed: 1115},
	}
	for name, cfg := range cases {
		if _, err := Generate(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestGeneratePoolLargerThanCount(t *testing.T) {
	// 48640 then 7*48640+13*9146 = 459378: the unreturned second value sets
	// the width.
	cfg := Config{Count: 1, PoolSize: 2, Multiplier: 7, Increment: 13, Modulus: 1_000_000_007, InitialSeed: 1115}
	s, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if diff := cmp.Diff([]uint64{48640}, s.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if s.Width != 6 {
		t.Errorf("expected width 6, got %d", s.Width)
	}
	if got := s.Elements[0].Digits.String(); got != "048640" {
		t.Errorf("expected digits 048640, got %s", got)
	}
}

func TestGenerateValidatesWholePool(t *testing.T) {
	// pool for 1115 is 2432 9146 6493 1590 5281; only the first is consumed
	// by the single requested element.
	cfg := Config{Count: 1, PoolSize: 5, Multiplier: 7, Increment: 13, Modulus: 9000, InitialSeed: 1115}
	s, err := Generate(cfg)
	var seqErr *SequenceValidityError
	if !errors.As(err, &seqErr) {
		t.Fatalf("expected SequenceValidityError, got sample=%v err=%v", s, err)
	}
	if seqErr.Index != 1 || seqErr.Value != 9146 {
		t.Errorf("expected failure at index 1 (9146), got index %d (%d)", seqErr.Index, seqErr.Value)
	}
	if s != nil {
		t.Error("partial sample returned")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(NewConfig(3000))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(NewConfig(3000))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if diff := cmp.Diff(a.Values(), b.Values()); diff != "" {
		t.Errorf("two runs differ:\n%s", diff)
	}
}

func TestNewConfigPoolRule(t *testing.T) {
	tests := []struct {
		count, pool int
	}{
		{1, 1},
		{2, 1},
		{50, 25},
		{1999, 999},
		{2000, 920},
		{100000, 920},
	}
	for _, tt := range tests {
		if got := NewConfig(tt.count).PoolSize; got != tt.pool {
			t.Errorf("count %d: expected pool %d, got %d", tt.count, tt.pool, got)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := NewConfig(100).Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
	tests := []struct {
		field  string
		mutate func(*Config)
	}{
		{"count", func(c *Config) { c.Count = 0 }},
		{"pool_size", func(c *Config) { c.PoolSize = 0 }},
		{"initial_seed", func(c *Config) { c.InitialSeed = 999 }},
		{"initial_seed", func(c *Config) { c.InitialSeed = 10000 }},
		{"modulus", func(c *Config) { c.Modulus = 1 }},
	}
	for _, tt := range tests {
		cfg := NewConfig(100)
		tt.mutate(&cfg)
		var ce *ConfigurationError
		if err := cfg.Validate(); !errors.As(err, &ce) || ce.Field != tt.field {
			t.Errorf("expected ConfigurationError on %s, got %v", tt.field, err)
		}
	}
}

func TestMulAddModMatchesBigInt(t *testing.T) {
	const big64 = ^uint64(0)
	cases := [][5]uint64{
		{7, 12930, 13, 48640, 99991},
		{big64, big64, big64, big64, big64 - 58},
		{1 << 63, 3, 1 << 62, 5, 1<<61 - 1},
		{0, 10, 0, 10, 7},
	}
	for _, c := range cases {
		a, x, inc, s, m := c[0], c[1], c[2], c[3], c[4]
		want := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(x))
		want.Add(want, new(big.Int).Mul(new(big.Int).SetUint64(inc), new(big.Int).SetUint64(s)))
		want.Mod(want, new(big.Int).SetUint64(m))
		if got := mulAddMod(a, x, inc, s, m); got != want.Uint64() {
			t.Errorf("mulAddMod(%d,%d,%d,%d,%d) = %d, want %s", a, x, inc, s, m, got, want)
		}
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		v uint64
		p int
	}{
		{0, 1}, {9, 1}, {10, 2}, {99990, 5}, {99999, 5}, {100000, 6},
		{^uint64(0), 20},
	}
	for _, tt := range tests {
		if got := Width(tt.v); got != tt.p {
			t.Errorf("Width(%d) = %d, want %d", tt.v, got, tt.p)
		}
	}
}
