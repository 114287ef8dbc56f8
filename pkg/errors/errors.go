// Package errors provides structured error handling for sparkle units.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Sentinel errors. Every SparkleError matches the sentinel of its Kind with
// errors.Is, so callers can test categories without type assertions.
var (
	// ErrCancelled is returned when a fetch or splice was aborted before it
	// took effect. It is an expected outcome and is never reported.
	ErrCancelled = stderrors.New("sparkle: cancelled")

	// ErrTransferFailed is returned when fetching a resource failed.
	ErrTransferFailed = stderrors.New("sparkle: transfer failed")

	// ErrInvalidOperation is returned when an operation would break an
	// ownership invariant or targets a destroyed unit.
	ErrInvalidOperation = stderrors.New("sparkle: invalid operation")
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindCancelled indicates an aborted fetch or splice.
	KindCancelled
	// KindTransfer indicates a network or IO failure while fetching.
	KindTransfer
	// KindInvalidOperation indicates a rejected lifecycle operation.
	KindInvalidOperation
	// KindParsing indicates a markup or configuration parsing failure.
	KindParsing
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindCancelled:
		return "cancelled"
	case KindTransfer:
		return "transfer"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindParsing:
		return "parsing"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// sentinel returns the sentinel error matched by the kind, if any.
func (k ErrorKind) sentinel() error {
	switch k {
	case KindCancelled:
		return ErrCancelled
	case KindTransfer, KindParsing:
		return ErrTransferFailed
	case KindInvalidOperation:
		return ErrInvalidOperation
	default:
		return nil
	}
}

// SparkleError represents a structured error raised by a unit, slot,
// collection or resource.
type SparkleError struct {
	// Op is the operation that failed (e.g., "core.Adopt").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Locator is the resource locator, if applicable.
	Locator string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *SparkleError) Error() string {
	if e.Locator != "" {
		return fmt.Sprintf("%s [%s] locator=%s: %v", e.Op, e.Kind, e.Locator, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *SparkleError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for the error's kind.
func (e *SparkleError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// New returns a SparkleError for op of the given kind.
func New(op string, kind ErrorKind, err error) *SparkleError {
	return &SparkleError{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

// Cancelled returns a KindCancelled error for op and locator.
func Cancelled(op, locator string) *SparkleError {
	e := New(op, KindCancelled, ErrCancelled)
	e.Locator = locator
	return e
}

// TransferFailed wraps cause as a KindTransfer error for op and locator.
func TransferFailed(op, locator string, cause error) *SparkleError {
	e := New(op, KindTransfer, cause)
	e.Locator = locator
	return e
}

// InvalidOperation returns a KindInvalidOperation error describing why op
// was rejected.
func InvalidOperation(op, format string, args ...any) *SparkleError {
	return New(op, KindInvalidOperation, fmt.Errorf(format, args...))
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "event.Emit").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Is reports whether err, or any error it wraps, matches target.
// It forwards to the standard library so callers need a single import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As forwards to the standard library errors.As.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// ErrorHandler receives errors reported by sparkle.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *SparkleError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
