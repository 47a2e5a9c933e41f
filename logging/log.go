// Package logging provides the single structured logger the rest of the
// module logs through.
package logging

import (
	"go.uber.org/zap"
)

// Logger is the global logger instance. Init must run before any package
// that imports logging is exercised outside of tests.
var Logger *zap.Logger

// Init initializes the global structured logger.
func Init() {
	l, err := zap.NewProduction()
	if err != nil {
		panic("couldn't build logger: " + err.Error())
	}
	Logger = l
}

func init() {
	// Tests and library callers that never call Init still want a usable
	// Logger rather than a nil-pointer panic on first use.
	Logger = zap.NewNop()
}

// WithPass returns a child logger tagged with the given architecture-pass
// correlation id, so every log line produced during one Builder.Load call
// can be grep'd together.
func WithPass(passID string) *zap.Logger {
	return Logger.With(zap.String("pass_id", passID))
}
