package subscription

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUnsupportedFrequency = errors.New("unsupported frequency")
	ErrFrequencyImmutable   = errors.New("frequency cannot be changed after construction")
)

// invalidArgumentError returns an error which unwraps to ErrInvalidArgument.
func invalidArgumentError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func unsupportedFrequencyError(f Frequency) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedFrequency, string(f))
}
