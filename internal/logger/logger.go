package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var defaultLogger = New("info", "text", os.Stderr)

// New builds a logrus logger. format is "json" or "text"; unknown levels fall back to info.
func New(level, format string, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *logrus.Logger) {
	defaultLogger = l
}

// Default returns an entry on the process-wide logger.
func Default() *logrus.Entry {
	return logrus.NewEntry(defaultLogger)
}

type ctxKey struct{}

// FromContext returns the request-scoped entry, or the default one.
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if e, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
			return e
		}
	}
	return Default()
}

// NewContext stores e in ctx.
func NewContext(ctx context.Context, e *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, e)
}
