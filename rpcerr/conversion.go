package rpcerr

import (
	"errors"
	"fmt"
)

// ConversionError tags the wire field that failed to convert. Field is a
// dotted path for nested values, for example "details[2].address".
type ConversionError struct {
	Field string
	Err   error
}

// NewConversionError wraps err with the name of the failing field. If err is
// already a ConversionError or a NumericError, the field names are joined so
// the full path to the failing value is kept.
func NewConversionError(field string, err error) *ConversionError {
	var inner *ConversionError
	if errors.As(err, &inner) {
		return &ConversionError{
			Field: joinField(field, inner.Field),
			Err:   inner.Err,
		}
	}

	var numeric *NumericError
	if errors.As(err, &numeric) {
		return &ConversionError{
			Field: joinField(field, numeric.Field),
			Err:   err,
		}
	}

	return &ConversionError{
		Field: field,
		Err:   err,
	}
}

// joinField joins a parent and child path, leaving index suffixes attached
// to their parent.
func joinField(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	case child[0] == '[':
		return parent + child
	default:
		return parent + "." + child
	}
}

// Error returns the error string.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("unable to convert field %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying parse failure.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NumericKind is the reason a wire integer could not be narrowed.
type NumericKind uint8

const (
	// NumericNegative means a negative value reached an unsigned field.
	NumericNegative NumericKind = iota + 1

	// NumericOverflow means the value does not fit the target width.
	NumericOverflow
)

// String returns the name of the kind.
func (k NumericKind) String() string {
	switch k {
	case NumericNegative:
		return "negative"
	case NumericOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// NumericError is returned when a signed wire integer does not fit the
// unsigned model field it maps to.
type NumericError struct {
	Kind  NumericKind
	Field string
	Value int64
}

// Error returns the error string.
func (e *NumericError) Error() string {
	return fmt.Sprintf("%s value %d for field %s", e.Kind, e.Value,
		e.Field)
}
