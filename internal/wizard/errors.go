package wizard

import (
	"errors"
	"strings"
)

var (
	// ErrStageMismatch is returned when an operation is invoked outside the
	// stage it belongs to. The session is left untouched.
	ErrStageMismatch = errors.New("wizard: operation not available at current stage")
	// ErrWalletNotConnected is returned when advancing from Connect before a
	// wallet has been connected.
	ErrWalletNotConnected = errors.New("wizard: wallet not connected")
)

// ValidationError lists the submission fields that block leaving Upload.
// It is recoverable: supply the fields and advance again.
type ValidationError struct {
	Missing []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return "wizard: missing required fields: " + strings.Join(names, ", ")
}

// Has reports whether f is among the missing fields.
func (e *ValidationError) Has(f Field) bool {
	for _, m := range e.Missing {
		if m == f {
			return true
		}
	}
	return false
}
