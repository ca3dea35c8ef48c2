package x11

import (
	"io"
	"log/slog"
)

// defaultLogger is used by Open when no WithLogger option is given,
// matching dittofs's internal/logger package defaulting to a quiet
// handler rather than forcing every caller to inject one.
func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sessionLogger wraps the injected *slog.Logger with the handful of
// structured events Session and correlator emit, so call sites never
// format strings by hand. Key-value pairs follow dittofs's
// internal/logger convention (args ...any alternating key, value)
// rather than a typed-field builder.
type sessionLogger struct {
	l *slog.Logger
}

func newSessionLogger(l *slog.Logger) *sessionLogger {
	if l == nil {
		l = defaultLogger()
	}
	return &sessionLogger{l: l}
}

func (sl *sessionLogger) debugOrphanSwept(seq uint16) {
	sl.l.Debug("sweeping orphaned reply", "seq", seq)
}

func (sl *sessionLogger) warnUnmatchedError(xerr *X11Error) {
	sl.l.Warn("unmatched protocol error",
		"seq", xerr.SequenceNo,
		"code", xerr.Code.String(),
	)
}

func (sl *sessionLogger) debugHandshake(msg string, args ...any) {
	sl.l.Debug(msg, args...)
}
