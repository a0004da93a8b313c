package config

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/cara/internal/changelog"
	"github.com/ariel-frischer/cara/internal/filter"
	"github.com/ariel-frischer/cara/internal/group"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
)

// Settings is the typed form of a Config, ready for the pipeline stages.
type Settings struct {
	Filter       filter.Config
	Render       changelog.RenderConfig
	DateFormat   string
	MaxCommits   int
	OutputFormat string
	// UnknownFields lists OUTPUT_ENTRIES tokens that name no field.
	UnknownFields []string
}

// Options returns the pipeline options for these settings.
func (s *Settings) Options() changelog.Options {
	return changelog.Options{Filter: s.Filter, Render: s.Render}
}

// Settings converts the raw values into stage configuration. An
// unsupported GROUP_BY value yields a group.InvalidUnitError.
func (c *Config) Settings() (*Settings, error) {
	s := &Settings{}

	var err error
	if s.Filter.MinWords, err = c.optionalCount(KeyMinWords); err != nil {
		return nil, err
	}
	if s.Filter.MinChars, err = c.optionalCount(KeyMinChars); err != nil {
		return nil, err
	}
	s.Filter.Exclude = filter.ParseKeywords(c.Get(KeyExcludeKeywords, ""))
	s.Filter.Include = filter.ParseKeywords(c.Get(KeyIncludeKeywords, ""))

	s.Render.Fields, s.UnknownFields = changelog.ParseFields(c.Get(KeyOutputEntries, ""))

	unit, err := group.ParseUnit(c.Get(KeyGroupBy, string(group.Day)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyGroupBy, err)
	}
	s.Render.Unit = unit

	if s.Render.Attribution, err = parseBoolValue(KeyAttribution, c.Get(KeyAttribution, "true")); err != nil {
		return nil, err
	}

	s.DateFormat = c.Get(KeyDateFormat, "")

	if maxCommits, err := c.optionalCount(KeyMaxCommits); err != nil {
		return nil, err
	} else if maxCommits != nil {
		s.MaxCommits = *maxCommits
	}

	s.OutputFormat = strings.ToLower(strings.TrimSpace(c.Get(KeyOutputFormat, FormatMarkdown)))
	if s.OutputFormat == "" {
		s.OutputFormat = FormatMarkdown
	}
	if err := validateEnumValue(KnownKeys[KeyOutputFormat], s.OutputFormat); err != nil {
		return nil, err
	}

	return s, nil
}

// optionalCount parses key as a non-negative integer; unset or blank
// values give nil.
func (c *Config) optionalCount(key string) (*int, error) {
	raw := strings.TrimSpace(c.Get(key, ""))
	if raw == "" {
		return nil, nil
	}
	n, err := parseCount(key, raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
