package errors

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	stderrLogger     *zap.Logger
	stderrLoggerOnce sync.Once
)

// stderr returns a console logger writing warnings and above to stderr.
func stderr() *zap.Logger {
	stderrLoggerOnce.Do(func() {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.TimeKey = ""
		stderrLogger = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(enc),
			zapcore.Lock(os.Stderr),
			zapcore.WarnLevel,
		)).Named("sparkle")
	})
	return stderrLogger
}

// LogHandler is an ErrorHandler that logs errors through zap.
type LogHandler struct {
	// Logger receives the reports. Nil means a console logger on stderr.
	Logger *zap.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

func (h *LogHandler) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return stderr()
}

// HandleError logs a SparkleError.
func (h *LogHandler) HandleError(err *SparkleError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Locator != "" {
		fields = append(fields, zap.String("locator", err.Locator))
	}
	if h.Verbose {
		fields = append(fields, zap.Time("at", err.Timestamp))
	}
	h.logger().Error("sparkle error", fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{zap.Any("value", err.Value)}
	if err.Op != "" {
		fields = append(fields, zap.String("op", err.Op))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("sparkle panic", fields...)
}
