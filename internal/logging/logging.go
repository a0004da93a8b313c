// Package logging configures the process-wide logrus logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvLevel names the environment variable that overrides the log level.
const EnvLevel = "CARA_LOG_LEVEL"

var log = newLogger(os.Stderr)

// Options controls logger setup.
type Options struct {
	Verbose bool
	Debug   bool
	// File, when set, receives JSON formatted logs instead of stderr.
	File string
	// Output overrides stderr for text logs. Used by tests.
	Output io.Writer
}

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// Init configures the logger from opts. The returned function closes the
// log file, if one was opened.
func Init(opts Options) (func() error, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	l := newLogger(out)
	l.SetLevel(ResolveLevel(opts.Verbose, opts.Debug, os.Getenv(EnvLevel)))

	closeFn := func() error { return nil }
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return closeFn, fmt.Errorf("opening log file: %w", err)
		}
		l.SetOutput(f)
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
		closeFn = f.Close
	}

	log = l
	return closeFn, nil
}

// ResolveLevel picks the log level: warn by default, info with verbose,
// debug with debug. A valid level name in env wins over both flags.
func ResolveLevel(verbose, debug bool, env string) logrus.Level {
	if env = strings.TrimSpace(env); env != "" {
		if lvl, err := logrus.ParseLevel(env); err == nil {
			return lvl
		}
	}
	switch {
	case debug:
		return logrus.DebugLevel
	case verbose:
		return logrus.InfoLevel
	default:
		return logrus.WarnLevel
	}
}

// GetLogger returns the configured logger instance
func GetLogger() *logrus.Logger {
	return log
}

// IsDebug reports whether debug messages are emitted.
func IsDebug() bool {
	return log.IsLevelEnabled(logrus.DebugLevel)
}

// WithField adds a field to the logger
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}

// WithFields adds multiple fields to the logger
func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}

// WithError adds an error field to the logger
func WithError(err error) *logrus.Entry {
	return log.WithError(err)
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs a formatted info message
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}
