// Package congruential implements a lagged linear congruential generator fed
// by a middle-square seed pool:
//
//	y[i] = (multiplier*y[i-1] + increment*seed[i])       mod modulus,  i <  poolSize
//	y[i] = (multiplier*y[i-1] + increment*y[i-poolSize]) mod modulus,  i >= poolSize
//
// with y[-1] taken to be seed[0]. Each output is exposed as a fixed-width
// digit sequence and as an exact decimal fraction of the modulus.
package congruential

import (
	"randcert-go/pkg/middlesquare"
)

// State is threaded through successive calls to Step.
type State struct {
	Index  int    // position of the next output
	Prior  uint64 // previous output, or seed[0] before the first step
	Widest uint64 // largest output so far
}

// NewState returns the state before the first output for pool.
func NewState(pool middlesquare.Pool) State {
	var prior uint64
	if pool.Len() > 0 {
		prior = uint64(pool.At(0))
	}
	return State{Prior: prior}
}

// Step computes the output at s.Index. history holds every output produced
// so far and is only read once the pool is exhausted.
func Step(cfg Config, pool middlesquare.Pool, history []uint64, s State) (uint64, State, error) {
	i := s.Index
	var lag uint64
	if i < cfg.PoolSize {
		lag = uint64(pool.At(i))
	} else {
		lag = history[i-cfg.PoolSize]
	}
	if lag >= cfg.Modulus {
		return 0, s, &SequenceValidityError{Index: i, Value: lag, Modulus: cfg.Modulus}
	}
	y := mulAddMod(cfg.Multiplier, s.Prior, cfg.Increment, lag, cfg.Modulus)
	return y, State{Index: i + 1, Prior: y, Widest: max(s.Widest, y)}, nil
}

// Generate produces cfg.Count elements. The whole pool-driven prefix is
// generated and checked even when PoolSize exceeds Count, and the digit width
// covers every value generated. On a SequenceValidityError nothing is
// returned. InitialSeed is not range-checked here; see Config.Validate.
func Generate(cfg Config) (*Sample, error) {
	if err := cfg.runnable(); err != nil {
		return nil, err
	}
	pool := middlesquare.NewPool(cfg.PoolSize, cfg.InitialSeed)
	total := max(cfg.Count, cfg.PoolSize)
	values := make([]uint64, 0, total)
	s := NewState(pool)
	for s.Index < total {
		y, next, err := Step(cfg, pool, values, s)
		if err != nil {
			return nil, err
		}
		values = append(values, y)
		s = next
	}
	return buildSample(values[:cfg.Count], cfg.Modulus, Width(s.Widest)), nil
}
