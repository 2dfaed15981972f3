package congruential

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange    = errors.New("value is not below the modulus")
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// SequenceValidityError reports a seed or lagged value that is not below the
// modulus. Index is zero-based.
type SequenceValidityError struct {
	Index   int
	Value   uint64
	Modulus uint64
}

func (e *SequenceValidityError) Error() string {
	return fmt.Sprintf("congruential: element %d of the sequence (%d) is greater than or equal to the modulus %d",
		e.Index+1, e.Value, e.Modulus)
}

func (e *SequenceValidityError) Unwrap() error { return ErrOutOfRange }

// ConfigurationError reports a parameter outside its documented domain.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("congruential: %s=%v %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrInvalidConfig }
