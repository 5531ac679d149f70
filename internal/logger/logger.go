package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar = newDefault().Sugar()
)

// newDefault builds the console logger on stderr so stdout stays free for
// the extraction summary.
func newDefault() *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

// SetLevel changes the minimum level of the default logger.
// Accepts debug, info, warn, error; anything else is ignored.
func SetLevel(name string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err == nil {
		level.SetLevel(l)
	}
}

// SetOutput replaces the underlying zap logger.
func SetOutput(l *zap.Logger) {
	sugar = l.Sugar()
}

// Sync flushes buffered log entries.
func Sync() {
	_ = sugar.Sync()
}

// Error logs at error level.
// Arguments are handled in the manner of [fmt.Printf].
func Error(format string, args ...interface{}) {
	sugar.Errorf(format, args...)
}

// Warn logs at warn level.
// Arguments are handled in the manner of [fmt.Printf].
func Warn(format string, args ...interface{}) {
	sugar.Warnf(format, args...)
}

// Info logs at info level.
// Arguments are handled in the manner of [fmt.Printf].
func Info(format string, args ...interface{}) {
	sugar.Infof(format, args...)
}

// Debug logs at debug level.
// Arguments are handled in the manner of [fmt.Printf].
func Debug(format string, args ...interface{}) {
	sugar.Debugf(format, args...)
}
