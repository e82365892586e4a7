package optics

import "errors"

var (
	// ErrUnknownVariant indicates an experiment name that maps to no model.
	ErrUnknownVariant = errors.New("optics: unknown variant")

	// ErrUnknownParam indicates a parameter name the model does not expose.
	ErrUnknownParam = errors.New("optics: unknown parameter")

	// ErrParameterBounds indicates a value that had to be clamped into range.
	ErrParameterBounds = errors.New("optics: parameter out of valid bounds")
)
