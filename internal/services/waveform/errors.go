package waveform

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned when a circuit parameter is outside its domain.
var ErrInvalidParameter = errors.New("waveform: invalid input parameters")

// ErrNonFinite is returned when parameters that pass validation still
// overflow the float64 range during generation.
var ErrNonFinite = errors.New("waveform: result is not finite")

// ParameterError reports a single parameter that failed validation.
type ParameterError struct {
	Field string
	Value float64
	Rule  string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("waveform: %s=%v must be %s", e.Field, e.Value, e.Rule)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}
