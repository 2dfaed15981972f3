package congruential

import (
	"randcert-go/pkg/middlesquare"
)

const (
	DefaultMultiplier  uint64 = 7
	DefaultIncrement   uint64 = 13
	DefaultPoolSize           = 920
	DefaultModulus     uint64 = 99991
	DefaultInitialSeed        = middlesquare.DefaultSeed

	// Below this count the pool is half the count instead of DefaultPoolSize.
	smallCountThreshold = 2000
)

// Config holds the parameters of one generation request. It is a value type:
// copy it, don't share pointers to it.
type Config struct {
	Count       int    `json:"count" mapstructure:"count"`
	Multiplier  uint64 `json:"multiplier" mapstructure:"multiplier"`
	Increment   uint64 `json:"increment" mapstructure:"increment"`
	PoolSize    int    `json:"pool_size" mapstructure:"pool_size"`
	Modulus     uint64 `json:"modulus" mapstructure:"modulus"`
	InitialSeed int    `json:"initial_seed" mapstructure:"initial_seed"`
}

// NewConfig returns the default configuration for count values.
func NewConfig(count int) Config {
	return Config{
		Count:       count,
		Multiplier:  DefaultMultiplier,
		Increment:   DefaultIncrement,
		PoolSize:    PoolSizeFor(count),
		Modulus:     DefaultModulus,
		InitialSeed: DefaultInitialSeed,
	}
}

// PoolSizeFor applies the pool rule: small requests use a pool of half the
// count, never less than one seed.
func PoolSizeFor(count int) int {
	if count >= smallCountThreshold {
		return DefaultPoolSize
	}
	return max(count/2, 1)
}

// Validate checks the preconditions Generate leaves to its callers.
func (c Config) Validate() error {
	switch {
	case c.Count < 1:
		return &ConfigurationError{Field: "count", Value: c.Count, Reason: "must be at least 1"}
	case c.PoolSize < 1:
		return &ConfigurationError{Field: "pool_size", Value: c.PoolSize, Reason: "must be at least 1"}
	case c.InitialSeed < middlesquare.MinSeed || c.InitialSeed > middlesquare.MaxSeed:
		return &ConfigurationError{Field: "initial_seed", Value: c.InitialSeed, Reason: "must have exactly four digits"}
	case c.Modulus < 2:
		return &ConfigurationError{Field: "modulus", Value: c.Modulus, Reason: "must be at least 2"}
	}
	return nil
}

// runnable reports the configurations Generate cannot execute at all.
func (c Config) runnable() error {
	switch {
	case c.Count < 1:
		return &ConfigurationError{Field: "count", Value: c.Count, Reason: "must be at least 1"}
	case c.PoolSize < 1:
		return &ConfigurationError{Field: "pool_size", Value: c.PoolSize, Reason: "must be at least 1"}
	case c.Modulus == 0:
		return &ConfigurationError{Field: "modulus", Value: c.Modulus, Reason: "must not be zero"}
	}
	return nil
}
