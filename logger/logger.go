package logger

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

type loggerContextKey struct{}

var defaultLogger = logrus.New()

// Init configures the process-wide logger. Outside local development logs
// are emitted as JSON.
func Init(env, level string) {
	defaultLogger.SetOutput(os.Stdout)
	if env == "local" {
		defaultLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		defaultLogger.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		defaultLogger.Warnf("unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	defaultLogger.SetLevel(lvl)
}

// For returns a log entry carrying any fields attached to ctx. A nil ctx is
// allowed.
func For(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(loggerContextKey{}).(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(defaultLogger)
}

// NewContextWithFields returns a copy of ctx whose logger carries fields in
// addition to the ones already present.
func NewContextWithFields(ctx context.Context, fields logrus.Fields) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, For(ctx).WithFields(fields))
}
