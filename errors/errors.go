// Package errors defines the error taxonomy shared by the topmodel packages.
//
// Three classes exist. ValidationError marks malformed or inconsistent input
// data (a TWI distribution whose proportions do not sum to one, mismatched
// series lengths). ConfigurationError marks physically invalid parameters
// (non-positive scaling parameter, fractions outside their range). Both are
// raised at construction/load time, before any timestep runs. A
// NumericInvariantError marks a state invariant broken mid-run; it aborts the
// run and carries the timestep index and offending quantity. No class is
// retryable: the model is a pure computation over fixed inputs.
package errors

import "fmt"

// ValidationError reports malformed or inconsistent input data.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validationf builds a ValidationError.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports a physically invalid parameter value.
type ConfigurationError struct {
	Param string
	Value float64
	msg   string
}

func (e *ConfigurationError) Error() string { return e.msg }

// Configurationf builds a ConfigurationError for a named parameter.
func Configurationf(param string, value float64, format string, args ...interface{}) error {
	return &ConfigurationError{
		Param: param,
		Value: value,
		msg:   fmt.Sprintf("parameter %s = %v: %s", param, value, fmt.Sprintf(format, args...)),
	}
}

// NumericInvariantError reports a runtime state invariant violation. Step is
// the zero-based timestep at which the invariant broke, Quantity names the
// offending state variable.
type NumericInvariantError struct {
	Step     int
	Quantity string
	Value    float64
}

func (e *NumericInvariantError) Error() string {
	return fmt.Sprintf("numeric invariant violated at timestep %d: %s = %v", e.Step, e.Quantity, e.Value)
}

// Invariant builds a NumericInvariantError.
func Invariant(step int, quantity string, value float64) error {
	return &NumericInvariantError{Step: step, Quantity: quantity, Value: value}
}
