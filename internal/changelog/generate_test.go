package changelog

import (
	"errors"
	"strings"
	"testing"

	"github.com/ariel-frischer/cara/internal/commit"
	"github.com/ariel-frischer/cara/internal/filter"
	"github.com/ariel-frischer/cara/internal/group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageOptions(unit group.Unit) Options {
	return Options{Render: RenderConfig{Fields: SelectFields(FieldMessage), Unit: unit}}
}

func TestGenerate_DeduplicatesIdenticalCommits(t *testing.T) {
	t.Parallel()

	records := []commit.Record{
		makeEntry("aaa1111", "Alice", aug12, "2024-08-12", "Initial commit"),
		makeEntry("bbb2222", "Bob", aug12, "2024-08-12", "Initial commit"),
	}

	res, err := Build(records, messageOptions(group.Day))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Input)
	assert.Equal(t, 1, res.Unique)
	assert.Equal(t, 1, res.Kept)
	require.Len(t, res.Buckets, 1)
	assert.Equal(t, "aaa1111", res.Buckets[0].Entries[0].Hash)
}

func TestGenerate_DeduplicatesBeforeFiltering(t *testing.T) {
	t.Parallel()

	// Three copies of a short message and one long one. Only the long
	// message passes, and dedupe must not let the copies count twice.
	records := []commit.Record{
		makeEntry("a", "A", aug13, "2024-08-13", "wip"),
		makeEntry("b", "A", aug13, "2024-08-13", "wip"),
		makeEntry("c", "A", aug13, "2024-08-13", "wip"),
		makeEntry("d", "A", aug12, "2024-08-12", "fix the login bug"),
	}
	opts := messageOptions(group.Day)
	opts.Filter = filter.Config{MinWords: filter.Int(3)}

	res, err := Build(records, opts)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Input)
	assert.Equal(t, 2, res.Unique)
	assert.Equal(t, 1, res.Kept)
}

func TestGenerate_MinWordsScenario(t *testing.T) {
	t.Parallel()

	records := []commit.Record{
		makeEntry("a", "A", aug13, "2024-08-13", "fix bug"),
		makeEntry("b", "A", aug12, "2024-08-12", "fix the login bug"),
	}
	opts := messageOptions(group.Day)
	opts.Filter = filter.Config{MinWords: filter.Int(3)}

	doc, err := Generate(records, opts)
	require.NoError(t, err)
	assert.NotContains(t, doc, "- fix bug.")
	assert.Contains(t, doc, "- fix the login bug.")
}

func TestGenerate_InvalidUnit(t *testing.T) {
	t.Parallel()

	_, err := Generate(sampleRecords(), messageOptions(group.Unit("nonexistent")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, group.ErrInvalidUnit))
	assert.Contains(t, err.Error(), "day, week, month, year")
}

func TestGenerate_NoRecords(t *testing.T) {
	t.Parallel()

	opts := messageOptions(group.Day)
	opts.Render.Attribution = true

	doc, err := Generate(nil, opts)
	require.NoError(t, err)
	assert.Equal(t, "# Changelog\n"+Attribution+"\n", doc)
}

func TestGenerate_Idempotent(t *testing.T) {
	t.Parallel()

	for _, unit := range group.ValidUnits() {
		opts := Options{Render: RenderConfig{Fields: AllFields(), Unit: unit, Attribution: true}}
		input := commit.Deduplicate(sampleRecords())

		first, err := Generate(input, opts)
		require.NoError(t, err)
		second, err := Generate(input, opts)
		require.NoError(t, err)
		assert.Equal(t, first, second, "unit %s", unit)
	}
}

func TestGenerate_EveryEntryLineEndsInPunctuation(t *testing.T) {
	t.Parallel()

	opts := Options{Render: RenderConfig{Fields: SelectFields(FieldDate, FieldHash, FieldAuthor), Unit: group.Week}}
	doc, err := Generate(sampleRecords(), opts)
	require.NoError(t, err)

	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, "- ") {
			last := line[len(line)-1]
			assert.Contains(t, ".?!", string(last), "line %q", line)
		}
	}
}

func TestBuild_KeptMatchesGroupedEntries(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		filter   filter.Config
		wantKept int
	}{
		"no filter":   {wantKept: 3},
		"min chars":   {filter: filter.Config{MinChars: filter.Int(12)}, wantKept: 2},
		"exclude all": {filter: filter.Config{Exclude: []string{"a", "i"}}, wantKept: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			opts := messageOptions(group.Day)
			opts.Filter = tt.filter

			res, err := Build(sampleRecords(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKept, res.Kept)
			assert.Equal(t, res.Kept, group.Count(res.Buckets))
		})
	}
}
