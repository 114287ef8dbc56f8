package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives failed fetches and recovered listener, task
	// and teardown panics. It starts out as a LogHandler.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler installs h as DefaultHandler; nil installs a fresh LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	DefaultHandler = h
	handlerMu.Unlock()
}

func handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report hands err to DefaultHandler, stamping it if needed. Cancellations
// are not failures and never reach the handler.
func Report(err *SparkleError) {
	if err == nil || err.Kind == KindCancelled {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := handler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic hands a recovered panic to DefaultHandler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := handler(); h != nil {
		h.HandlePanic(err)
	}
}

// Recover must be deferred directly. It reports a panic raised below it as
// a PanicError tagged with op and lets the caller carry on.
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(recovered(op, r))
	}
}

// RecoverWithCallback reports like Recover, then passes the panic value to
// callback so the caller can turn it into an ordinary error.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		ReportPanic(recovered(op, r))
		if callback != nil {
			callback(r)
		}
	}
}

func recovered(op string, v any) *PanicError {
	return &PanicError{Op: op, Value: v, StackTrace: stack(4), Timestamp: time.Now()}
}

// CaptureStack formats up to 32 frames above its caller's caller, one
// function and file:line pair per frame.
func CaptureStack() string {
	return stack(3)
}

func stack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip+1, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}
