package log

import (
	"fmt"
	"io"
	stdlog "log"

	"github.com/sirupsen/logrus"
)

// New builds the application logger.
// format is "text" (default) or "json"; level is any logrus level name.
func New(level, format string, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)

	switch format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return logger, nil
}

// Discard returns a logger that drops everything. Used by tests and
// one-shot commands that only print results.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// NewStdErrorLogger bridges libraries that want a *log.Logger onto a logrus entry.
// Lines are written at error level.
func NewStdErrorLogger(entry *logrus.Entry) *stdlog.Logger {
	return stdlog.New(entry.WriterLevel(logrus.ErrorLevel), "", 0)
}
