package st7789

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by draw operations on a closed display.
var ErrClosed = errors.New("st7789: display is closed")

// ValidationError reports invalid caller input. No hardware was touched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "st7789: " + e.Reason
}

// InitError reports a failed bring-up sequence. Any resources acquired
// before the failure have been released.
type InitError struct {
	Cause error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("st7789: initialization failed: %v", e.Cause)
}

func (e *InitError) Unwrap() error {
	return e.Cause
}

// TransportError reports a failed bus write after successful
// initialization. The panel may be mid-transaction; the caller should tear
// down and reconstruct rather than keep drawing.
type TransportError struct {
	Op    string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("st7789: %s: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
