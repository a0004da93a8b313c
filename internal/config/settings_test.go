package config

import (
	"errors"
	"testing"

	"github.com/ariel-frischer/cara/internal/changelog"
	"github.com/ariel-frischer/cara/internal/filter"
	"github.com/ariel-frischer/cara/internal/group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Defaults(t *testing.T) {
	t.Parallel()

	s, err := New().Settings()
	require.NoError(t, err)

	assert.True(t, s.Filter.IsZero())
	assert.Equal(t, changelog.SelectFields(changelog.FieldMessage), s.Render.Fields)
	assert.Equal(t, group.Day, s.Render.Unit)
	assert.True(t, s.Render.Attribution)
	assert.Equal(t, "%Y-%m-%d", s.DateFormat)
	assert.Zero(t, s.MaxCommits)
	assert.Equal(t, FormatMarkdown, s.OutputFormat)
	assert.Empty(t, s.UnknownFields)
}

func TestSettings_FromValues(t *testing.T) {
	t.Parallel()

	cfg := New()
	for key, value := range map[string]string{
		KeyMinWords:        "3",
		KeyMinChars:        "10",
		KeyExcludeKeywords: "wip, fixup",
		KeyIncludeKeywords: "feat",
		KeyOutputEntries:   "date commit emoji",
		KeyGroupBy:         "Month",
		KeyAttribution:     "false",
		KeyMaxCommits:      "50",
		KeyOutputFormat:    "YAML",
	} {
		require.NoError(t, cfg.Set(key, value))
	}

	s, err := cfg.Settings()
	require.NoError(t, err)

	assert.Equal(t, filter.Config{
		MinWords: filter.Int(3),
		MinChars: filter.Int(10),
		Exclude:  []string{"wip", "fixup"},
		Include:  []string{"feat"},
	}, s.Filter)
	assert.Equal(t, "date hash", s.Render.Fields.String())
	assert.Equal(t, []string{"emoji"}, s.UnknownFields)
	assert.Equal(t, group.Month, s.Render.Unit)
	assert.False(t, s.Render.Attribution)
	assert.Equal(t, 50, s.MaxCommits)
	assert.Equal(t, FormatYAML, s.OutputFormat)

	opts := s.Options()
	assert.Equal(t, s.Filter, opts.Filter)
	assert.Equal(t, s.Render, opts.Render)
}

func TestSettings_InvalidGroupBy(t *testing.T) {
	t.Parallel()

	cfg := New()
	// Bypass Set validation the way a hand-edited value would reach Settings.
	cfg.k.Set(KeyGroupBy, "nonexistent")

	_, err := cfg.Settings()
	require.Error(t, err)
	assert.True(t, group.IsInvalidUnit(err))
	assert.Contains(t, err.Error(), "nonexistent")
	assert.Contains(t, err.Error(), "day, week, month, year")
}

func TestSettings_InvalidCount(t *testing.T) {
	t.Parallel()

	cfg := New()
	cfg.k.Set(KeyMinChars, "ten")

	_, err := cfg.Settings()
	var ve *ValueError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, KeyMinChars, ve.Key)
}
