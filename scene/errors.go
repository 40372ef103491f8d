package scene

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/fbxgo/scene/reader"
)

// ErrorKind realizes the error taxonomy from the format design: a read
// past the buffer end is always fatal (ErrBounds); a structurally sound
// but semantically invalid document is fatal (ErrFormat); a duplicate
// binding where the format requires a single one is fatal
// (ErrInvariant). Tolerable mismatches (unknown mapping/reference
// combinations, out-of-range attribute indices) never produce an error;
// they are zero-filled by the caller without a log entry.
type ErrorKind int

const (
	ErrBounds ErrorKind = iota
	ErrFormat
	ErrInvariant
)

func (k ErrorKind) String() string {
	switch k {
	case ErrBounds:
		return "bounds"
	case ErrFormat:
		return "format"
	case ErrInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// LoadError is the sole failure channel out of Load. It always carries
// a Kind so callers can distinguish "this buffer is truncated" from
// "this buffer is not FBX at all" from "this file violates a structural
// invariant (two geometries on one mesh)".
type LoadError struct {
	Kind ErrorKind
	msg  string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("fbx: %s: %s", e.Kind, e.msg)
}

func (e *LoadError) Unwrap() error { return e.Err }

func newErrorf(kind ErrorKind, format string, a ...interface{}) *LoadError {
	return &LoadError{Kind: kind, msg: fmt.Sprintf(format, a...)}
}

func wrapErrorf(kind ErrorKind, err error, format string, a ...interface{}) *LoadError {
	return &LoadError{Kind: kind, msg: fmt.Sprintf(format, a...), Err: errors.WithStack(err)}
}

// recoverBounds converts a panicking *reader.BoundsError (or any other
// panic raised during tokenization) into a *LoadError instead of
// crashing the caller.
func recoverBounds(errp *error) {
	if r := recover(); r != nil {
		if be, ok := r.(*reader.BoundsError); ok {
			*errp = wrapErrorf(ErrBounds, be, "read past end of buffer")
			return
		}
		if le, ok := r.(*LoadError); ok {
			*errp = le
			return
		}
		*errp = newErrorf(ErrFormat, "panic during parse: %v", r)
	}
}
