// Package logging builds the process logger and names the verbosity levels
// used with logr's V().
//
// Library packages never construct a logger: they read one from the context
// with logr.FromContextOrDiscard, so a caller that does not care about logs
// pays nothing.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logger.V(...).
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// Formats accepted by New.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ErrLevel and ErrFormat report unknown settings.
var (
	ErrLevel  = errors.New("logging: unknown level")
	ErrFormat = errors.New("logging: unknown format")
)

// ParseLevel maps "info", "debug", "trace" (or "error") to a zap level.
// logr verbosity v corresponds to zap level -v.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.Level(-DEBUG), nil
	case "trace":
		return zapcore.Level(-TRACE), nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrLevel, s)
	}
}

// New returns a zap-backed logr.Logger writing to w (stderr when nil).
func New(level, format string, w io.Writer) (logr.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(format) {
	case "", FormatJSON:
		enc = zapcore.NewJSONEncoder(encCfg)
	case FormatConsole:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return logr.Discard(), fmt.Errorf("%w: %q", ErrFormat, format)
	}

	if w == nil {
		w = os.Stderr
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))

	return zapr.NewLogger(zap.New(core)), nil
}

// NewTestLogger returns a console logger at TRACE verbosity writing to w,
// for tests that want to see what the solver did.
func NewTestLogger(w io.Writer) logr.Logger {
	log, _ := New("trace", FormatConsole, w)

	return log
}
