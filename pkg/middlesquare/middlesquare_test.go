package middlesquare

import (
	"testing"
)

func naive(x int) int {
	return x * x % 1000000 / 100
}

func TestNewPoolDefaultSeed(t *testing.T) {
	want := []int{2432, 9146, 6493, 1590, 5281}
	got := NewPool(5, DefaultSeed).Values()
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestNextTrailingZeroCorrection(t *testing.T) {
	// 2500 is a fixed point of the plain method.
	if naive(2500) != 2500 {
		t.Fatalf("test premise broken: naive(2500) = %d", naive(2500))
	}
	v, next := Next(NewState(2500))
	if v != 2550 {
		t.Errorf("expected 2550, got %d", v)
	}
	if next.X != 2550 || next.Index != 1 {
		t.Errorf("unexpected next state %+v", next)
	}
}

func TestNextLeadingZeroCorrection(t *testing.T) {
	// 1000 squares to 01000000, whose middle digits are 0000.
	if naive(1000) != 0 {
		t.Fatalf("test premise broken: naive(1000) = %d", naive(1000))
	}
	v, s := Next(NewState(1000))
	if v != 20 {
		t.Fatalf("expected 20 after trailing correction, got %d", v)
	}
	// 20 has 00 as its leading pair: lifted by (100-1-1)*100 = 9800.
	v, s = Next(s)
	if v != 4324 {
		t.Errorf("expected 4324 after leading correction, got %d", v)
	}
	if s.Index != 2 {
		t.Errorf("expected index 2, got %d", s.Index)
	}
}

func TestPerturbationWrapsEvery99(t *testing.T) {
	// Index 99 behaves like index 0.
	a, _ := Next(State{X: 3000, Index: 0})
	b, _ := Next(State{X: 3000, Index: 99})
	if a != b {
		t.Errorf("expected equal values at index 0 and 99, got %d and %d", a, b)
	}
	c, _ := Next(State{X: 3000, Index: 98})
	if c == a {
		t.Errorf("expected index 98 to use a different offset")
	}
}

func TestNewPoolValuesInRange(t *testing.T) {
	for seed := MinSeed; seed <= MaxSeed; seed += 37 {
		p := NewPool(200, seed)
		for i := 0; i < p.Len(); i++ {
			if v := p.At(i); v < 0 || v > 9999 {
				t.Fatalf("seed %d: value %d out of range at %d", seed, v, i)
			}
		}
	}
}

func TestNewPoolEmpty(t *testing.T) {
	if n := NewPool(0, DefaultSeed).Len(); n != 0 {
		t.Errorf("expected empty pool, got %d values", n)
	}
	if n := NewPool(-3, DefaultSeed).Len(); n != 0 {
		t.Errorf("expected empty pool, got %d values", n)
	}
}

func TestPoolValuesIsCopy(t *testing.T) {
	p := NewPool(3, DefaultSeed)
	v := p.Values()
	v[0] = -1
	if p.At(0) == -1 {
		t.Error("Values exposed the pool's backing array")
	}
}

func TestPoolMatchesFold(t *testing.T) {
	p := NewPool(50, 4321)
	s := NewState(4321)
	for i := 0; i < p.Len(); i++ {
		var v int
		v, s = Next(s)
		if v != p.At(i) {
			t.Fatalf("index %d: pool has %d, fold gives %d", i, p.At(i), v)
		}
	}
}
