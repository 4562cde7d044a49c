// Package errors attaches source locations and structured context to errors so
// that log events point straight at the failing call site.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// AnnotatedError carries a message, the program counter of the call site, slog
// attributes for context, and an optional wrapped cause.
type AnnotatedError struct {
	msg   string
	pc    uintptr
	attrs []slog.Attr
	err   error
}

func newAnnotated(skip int, err error, msg string, attrs []slog.Attr) *AnnotatedError {
	var pcs [1]uintptr
	runtime.Callers(skip, pcs[:])
	return &AnnotatedError{
		msg:   msg,
		pc:    pcs[0],
		attrs: attrs,
		err:   err,
	}
}

// New creates an error annotated with the caller's source location and the given attributes.
func New(msg string, attrs ...slog.Attr) error {
	return newAnnotated(3, nil, msg, attrs) //nolint:mnd // skips runtime.Callers, newAnnotated, and New.
}

// Wrap annotates err with a message and attributes. Returns nil when err is nil.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return newAnnotated(3, err, msg, attrs) //nolint:mnd // skips runtime.Callers, newAnnotated, and Wrap.
}

// NewSentinel creates a plain error without annotations meant for detection with [Is].
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// Error implements the error interface. Wrapped causes are joined with ": ".
func (e *AnnotatedError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.err)
	}
	return e.msg
}

// Unwrap exposes the cause for the stdlib error chain traversal.
func (e *AnnotatedError) Unwrap() error {
	return e.err
}

// LogValue formats the error for logging. The source attribute locates the
// annotation call site; annotated causes nest under "cause".
func (e *AnnotatedError) LogValue() slog.Value {
	frames := runtime.CallersFrames([]uintptr{e.pc})
	frame, _ := frames.Next()

	attrs := make([]slog.Attr, 0, len(e.attrs)+3) //nolint:mnd // msg, source, and cause.
	attrs = append(attrs,
		slog.String("msg", e.msg),
		slog.String("source", fmt.Sprintf("%s:%d", frame.File, frame.Line)),
	)
	attrs = append(attrs, e.attrs...)

	if e.err != nil {
		var cause *AnnotatedError
		if errors.As(e.err, &cause) {
			attrs = append(attrs, slog.Any("cause", cause))
		} else {
			attrs = append(attrs, slog.String("cause", e.err.Error()))
		}
	}

	return slog.GroupValue(attrs...)
}

// SlogError returns an attribute for logging err under the "error" key.
func SlogError(err error) slog.Attr {
	return slog.Any("error", err)
}

// As exposes stdlib errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is exposes stdlib errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Join exposes stdlib errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap exposes stdlib errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
