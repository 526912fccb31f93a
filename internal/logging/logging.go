// Package logging builds the logrus logger shared by the CLI and the
// collector.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures a logger.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New returns a logger writing to opts.Output with the requested level and
// formatter. An empty level means info; an empty format means text.
func New(opts Options) (*logrus.Logger, error) {
	l := logrus.New()

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	l.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", opts.Format, FormatText, FormatJSON)
	}

	if opts.Output != nil {
		l.SetOutput(opts.Output)
	}
	return l, nil
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
