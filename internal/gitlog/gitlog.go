// Package gitlog reads commit history into commit records. History comes
// either from a git repository opened with go-git or from a pipe-delimited
// export file, so changelogs can be produced without a repository at hand.
package gitlog

import (
	"context"

	"github.com/ariel-frischer/cara/internal/commit"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for history reads.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Source yields commit records newest first.
type Source interface {
	Records(ctx context.Context) ([]commit.Record, error)
}

// Empty is a Source without commits. It stands in for history that
// could not be opened.
type Empty struct{}

// Records returns no records.
func (Empty) Records(ctx context.Context) ([]commit.Record, error) {
	return nil, ctx.Err()
}
