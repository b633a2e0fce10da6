// Package errs defines the kinds of errors returned across the telemetry packages. Every
// fallible operation wraps exactly one of these so callers can branch with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidData is returned for structurally inconsistent input such as mismatched lengths
	ErrInvalidData = errors.New("invalid data")

	// ErrInsufficientData is returned when there are not enough samples for the requested
	// window, period or model order
	ErrInsufficientData = errors.New("insufficient data")

	// ErrModel is returned when a model operation is invoked in the wrong lifecycle state,
	// e.g. forecasting before fitting
	ErrModel = errors.New("model error")

	// ErrInvalidParameter is returned for an out of range constructor or method argument
	ErrInvalidParameter = errors.New("invalid parameter")
)
