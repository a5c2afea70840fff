package savecode

import (
	"errors"
	"fmt"
)

// ErrNegativeValue is returned by Encode when a payload value is
// negative: the digit grammar carries no sign, so such a state cannot be
// expressed as a save code.
var ErrNegativeValue = errors.New("negative value cannot be encoded")

// MalformedCodeError reports a save code that cannot be decoded: wrong
// field count, an empty or unparseable field, or an upgrade id outside
// the catalog. Load flows treat it as bad user input, never as a fault.
type MalformedCodeError struct {
	Reason string
	Field  int // field index the scanner was in, -1 when not field-specific
	cause  error
}

func (e *MalformedCodeError) Error() string {
	if e.Field >= 0 {
		return fmt.Sprintf("savecode: malformed code: field %d: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("savecode: malformed code: %s", e.Reason)
}

func (e *MalformedCodeError) Unwrap() error {
	return e.cause
}

func malformed(field int, reason string) *MalformedCodeError {
	return &MalformedCodeError{Reason: reason, Field: field}
}

func malformedCause(field int, reason string, cause error) *MalformedCodeError {
	return &MalformedCodeError{Reason: reason, Field: field, cause: cause}
}
