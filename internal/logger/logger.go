// Package logger is the zap-backed structured logger shared by the server.
// Keys are snake_case event names followed by key/value pairs, e.g.
// log.Infow("users_login_failed", "err", err).
package logger

import "sync"

// Level names accepted in log.level.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	process     *Logger
	processOnce sync.Once
)

// Get returns the process logger. Only the first call's level counts, so
// main calls it once config is loaded; tests use New or Nop instead.
func Get(level string) *Logger {
	processOnce.Do(func() { process = New(level) })
	return process
}
