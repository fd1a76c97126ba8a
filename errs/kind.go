package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error into the diagnostic taxonomy.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidReference
	KindDimensionMismatch
	KindWrongArgument
	KindOutOfMemory
	KindOutOfBounds
	KindNotFound
	KindNaN
	KindMultipleDefinition
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "success"
	case KindInvalidReference:
		return "bad reference"
	case KindDimensionMismatch:
		return "wrong dimension"
	case KindWrongArgument:
		return "wrong argument"
	case KindOutOfMemory:
		return "out of memory"
	case KindOutOfBounds:
		return "out of bounds"
	case KindNotFound:
		return "not found"
	case KindNaN:
		return "not a number"
	case KindMultipleDefinition:
		return "multiple definition"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf classifies err. A nil error is KindNone.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	switch {
	case errors.Is(err, ErrInvalidReference):
		return KindInvalidReference
	case errors.Is(err, ErrDimension), errors.Is(err, ErrInvalidDimension):
		return KindDimensionMismatch
	case errors.Is(err, ErrNaN):
		return KindNaN
	case errors.Is(err, ErrMultipleDefinition):
		return KindMultipleDefinition
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrOutOfBounds):
		return KindOutOfBounds
	case errors.Is(err, ErrWrongArgument):
		return KindWrongArgument
	default:
		return KindUnknown
	}
}
