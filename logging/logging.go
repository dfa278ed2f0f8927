// Package logging defines a minimal structured-logging interface the link
// engine accepts but never requires, so embedders can plug in whatever
// backend they already use without the engine depending on it directly.
package logging

// Logger is deliberately small: the engine only ever logs at
// construction-time validation and at retry-exhaustion/giveup events,
// never on the hot tick path.
type Logger interface {
	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger

	Error(args interface{})
	Debug(args interface{})
	Info(args interface{})
}

// Dummy is a Logger that discards everything; it is the engine's default.
type Dummy struct{}

func (Dummy) WithError(err error) Logger                      { return Dummy{} }
func (Dummy) WithField(key string, value interface{}) Logger  { return Dummy{} }
func (Dummy) WithFields(fields map[string]interface{}) Logger { return Dummy{} }
func (Dummy) Error(args interface{})                          {}
func (Dummy) Debug(args interface{})                          {}
func (Dummy) Info(args interface{})                           {}
