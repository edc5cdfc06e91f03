package logger

import "context"

// nopLogger discards everything. Used as the default in library code so
// callers that never call Init still get a working Logger.
type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...Field)  {}
func (nopLogger) Error(context.Context, string, ...Field) {}
func (nopLogger) Debug(context.Context, string, ...Field) {}
func (nopLogger) Warn(context.Context, string, ...Field)  {}
func (n nopLogger) Named(string) Logger                   { return n }

// Nop returns a Logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}
