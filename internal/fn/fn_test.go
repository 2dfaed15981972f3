package fn

import "testing"

func TestT(t *testing.T) {
	if T(true, 1, -1) != 1 || T(false, 1, -1) != -1 {
		t.Error("T picked the wrong branch")
	}
}

func TestCountIf(t *testing.T) {
	xs := []int{5, 1, 7, 3, 9}
	if got := CountIf(len(xs), func(i int) bool { return xs[i] >= 5 }); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := CountIf(0, func(int) bool { return true }); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
