// Package middlesquare implements von Neumann's middle-square generator for
// four-digit values. Two corrections keep the sequence away from the states
// where the plain method collapses: a value whose two leading digits are zero
// is lifted into the upper range, and a value whose two trailing digits are
// zero gets a small non-zero tail before it is squared.
package middlesquare

const (
	// MinSeed and MaxSeed bound the initial values the generator is defined
	// for. Callers are expected to enforce the range.
	MinSeed = 1000
	MaxSeed = 9999

	// DefaultSeed is the initial value used by the congruential generator.
	DefaultSeed = 1115

	// perturbCycle keeps both correction offsets within [1,99].
	perturbCycle = 99
)

// State is the running value of the generator and the position of the next
// output.
type State struct {
	X     int
	Index int
}

// NewState returns the state that produces the first value for seed.
func NewState(seed int) State {
	return State{X: seed}
}

// Next produces one value and the state that follows it.
func Next(s State) (int, State) {
	x := s.X
	if x/100 == 0 {
		// leading pair is 00: add a multiple of 100 in [100,9900]
		y := 100 - s.Index%perturbCycle
		y--
		y *= 100
		x += y
	}
	if x%100 == 0 {
		// trailing pair is 00: add [1,99]
		x += s.Index%perturbCycle + 1
	}
	y := x * x
	y %= 1000000 // drop the two leading digits of eight
	y /= 100     // drop the two trailing digits
	return y, State{X: y, Index: s.Index + 1}
}

// Pool is a read-only sequence of middle-square values.
type Pool struct {
	values []int
}

// NewPool generates k values starting from seed. A non-positive k yields an
// empty pool.
func NewPool(k, seed int) Pool {
	if k <= 0 {
		return Pool{}
	}
	values := make([]int, 0, k)
	s := NewState(seed)
	var v int
	for i := 0; i < k; i++ {
		v, s = Next(s)
		values = append(values, v)
	}
	return Pool{values: values}
}

// Len returns the number of values in the pool.
func (p Pool) Len() int { return len(p.values) }

// At returns the i-th value. It panics if i is out of range, like a slice.
func (p Pool) At(i int) int { return p.values[i] }

// Values returns a copy of the pool contents.
func (p Pool) Values() []int {
	out := make([]int, len(p.values))
	copy(out, p.values)
	return out
}
