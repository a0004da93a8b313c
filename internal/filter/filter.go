// Package filter decides which commits survive into the changelog.
//
// Predicates are evaluated in a fixed order: minimum word count, or else
// minimum character count (word count wins when both are configured), then
// exclude keywords, then include keywords. Keyword matches are
// case-insensitive substring matches against the whole message.
package filter

import (
	"strings"
	"unicode/utf8"

	"github.com/ariel-frischer/cara/internal/commit"
)

// Config holds the optional filter criteria. A nil or empty field places
// no constraint on that axis.
type Config struct {
	MinWords *int
	MinChars *int
	// Exclude and Include hold lower-cased keywords.
	Exclude []string
	Include []string
}

// IsZero reports whether no criterion is configured.
func (c Config) IsZero() bool {
	return c.MinWords == nil && c.MinChars == nil && len(c.Exclude) == 0 && len(c.Include) == 0
}

// Apply returns the records that pass every configured predicate, in their
// original order. The input slice is not modified.
func Apply(cfg Config, records []commit.Record) []commit.Record {
	kept := make([]commit.Record, 0, len(records))
	for _, r := range records {
		if Passes(cfg, r) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Passes reports whether a single record satisfies cfg.
func Passes(cfg Config, r commit.Record) bool {
	msg := strings.ToLower(r.Message)

	if cfg.MinWords != nil {
		if len(strings.Fields(msg)) < *cfg.MinWords {
			return false
		}
	} else if cfg.MinChars != nil {
		if utf8.RuneCountInString(strings.TrimSpace(msg)) < *cfg.MinChars {
			return false
		}
	}

	if containsAny(msg, cfg.Exclude) {
		return false
	}

	if len(cfg.Include) > 0 && !containsAny(msg, cfg.Include) {
		return false
	}

	return true
}

// containsAny reports whether msg contains any keyword. Empty keywords never match.
func containsAny(msg string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(msg, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// ParseKeywords splits a comma-separated keyword list, trimming and
// lower-casing each keyword and dropping empty ones.
func ParseKeywords(s string) []string {
	var keywords []string
	for _, kw := range strings.Split(s, ",") {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// Int returns a pointer to n, for building Config literals.
func Int(n int) *int {
	return &n
}
