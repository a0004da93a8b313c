package group

import (
	"errors"
	"testing"
	"time"

	"github.com/ariel-frischer/cara/internal/commit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recOn(hash string, year int, month time.Month, day int) commit.Record {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return commit.New(hash, "Author", commit.CalendarDateOf(t), t.Format(time.DateOnly), "message "+hash)
}

func keysOf(buckets []Bucket) []Key {
	keys := make([]Key, 0, len(buckets))
	for _, b := range buckets {
		keys = append(keys, b.Key)
	}
	return keys
}

func hashesOf(records []commit.Record) []string {
	hashes := make([]string, 0, len(records))
	for _, r := range records {
		hashes = append(hashes, r.Hash)
	}
	return hashes
}

func TestParseUnit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    Unit
		wantErr bool
	}{
		"day":         {input: "day", want: Day},
		"week":        {input: "week", want: Week},
		"month":       {input: "month", want: Month},
		"year":        {input: "year", want: Year},
		"upper case":  {input: "MONTH", want: Month},
		"whitespace":  {input: " week\n", want: Week},
		"nonexistent": {input: "nonexistent", wantErr: true},
		"empty":       {input: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseUnit(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidUnit))
				assert.True(t, IsInvalidUnit(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvalidUnitError_ListsValidUnits(t *testing.T) {
	t.Parallel()

	_, err := ParseUnit("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nonexistent"`)
	assert.Contains(t, err.Error(), "day, week, month, year")

	_, err = Group(Unit("nonexistent"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidUnit))
}

func TestKeyFor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		unit Unit
		date time.Time
		want Key
	}{
		"day":                         {unit: Day, date: time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC), want: "2024-08-12"},
		"week":                        {unit: Week, date: time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC), want: "2024-W33"},
		"week single digit padded":    {unit: Week, date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), want: "2024-W01"},
		"week belongs to next year":   {unit: Week, date: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), want: "2025-W01"},
		"week belongs to prior year":  {unit: Week, date: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), want: "2020-W53"},
		"month":                       {unit: Month, date: time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC), want: "2024-08"},
		"year":                        {unit: Year, date: time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC), want: "2024"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := KeyFor(tt.unit, commit.CalendarDateOf(tt.date))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKey(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		unit    Unit
		key     Key
		want    time.Time
		wantErr bool
	}{
		"day":              {unit: Day, key: "2024-08-12", want: time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC)},
		"week is monday":   {unit: Week, key: "2024-W33", want: time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC)},
		"week 1 in dec":    {unit: Week, key: "2025-W01", want: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)},
		"week 53":          {unit: Week, key: "2020-W53", want: time.Date(2020, 12, 28, 0, 0, 0, 0, time.UTC)},
		"missing week 53":  {unit: Week, key: "2021-W53", wantErr: true},
		"week 0":           {unit: Week, key: "2021-W00", wantErr: true},
		"malformed week":   {unit: Week, key: "2021-33", wantErr: true},
		"month":            {unit: Month, key: "2024-08", want: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)},
		"year":             {unit: Year, key: "2024", want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		"malformed day":    {unit: Day, key: "2024/08/12", wantErr: true},
		"unknown unit":     {unit: Unit("decade"), key: "2020", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseKey(tt.unit, tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestKeyRoundTrip(t *testing.T) {
	t.Parallel()

	start := time.Date(2019, 12, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC)

	for _, unit := range ValidUnits() {
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			key, err := KeyFor(unit, commit.CalendarDateOf(d))
			require.NoError(t, err)

			anchor, err := ParseKey(unit, key)
			require.NoError(t, err, "unit %s key %s", unit, key)

			again, err := KeyFor(unit, commit.CalendarDateOf(anchor))
			require.NoError(t, err)
			assert.Equal(t, key, again, "unit %s date %s", unit, d.Format(time.DateOnly))
			assert.False(t, anchor.After(d), "anchor %s after date %s", anchor, d)
		}
	}
}

func TestGroup_Month(t *testing.T) {
	t.Parallel()

	records := []commit.Record{
		recOn("older", 2024, time.August, 3),
		recOn("newer", 2024, time.August, 20),
		recOn("july", 2024, time.July, 31),
	}

	buckets, err := Group(Month, records)
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	assert.Equal(t, []Key{"2024-08", "2024-07"}, keysOf(buckets))
	assert.Equal(t, []string{"newer", "older"}, hashesOf(buckets[0].Entries))
	assert.Equal(t, []string{"july"}, hashesOf(buckets[1].Entries))
	assert.Equal(t, 3, Count(buckets))
}

func TestGroup_OrdersBucketsChronologically(t *testing.T) {
	t.Parallel()

	records := []commit.Record{
		recOn("a", 2020, time.December, 29),
		recOn("b", 2021, time.January, 5),
		recOn("c", 2019, time.March, 1),
		recOn("d", 2021, time.January, 1),
	}

	tests := map[string]struct {
		unit Unit
		want []Key
	}{
		"day":   {unit: Day, want: []Key{"2021-01-05", "2021-01-01", "2020-12-29", "2019-03-01"}},
		"week":  {unit: Week, want: []Key{"2021-W01", "2020-W53", "2019-W09"}},
		"month": {unit: Month, want: []Key{"2021-01", "2020-12", "2019-03"}},
		"year":  {unit: Year, want: []Key{"2021", "2020", "2019"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			buckets, err := Group(tt.unit, records)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keysOf(buckets))
		})
	}
}

func TestGroup_StableForEqualDates(t *testing.T) {
	t.Parallel()

	records := []commit.Record{
		recOn("first", 2024, time.August, 12),
		recOn("later", 2024, time.August, 14),
		recOn("second", 2024, time.August, 12),
		recOn("third", 2024, time.August, 12),
	}

	buckets, err := Group(Week, records)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, []string{"later", "first", "second", "third"}, hashesOf(buckets[0].Entries))
}

func TestGroup_Empty(t *testing.T) {
	t.Parallel()

	buckets, err := Group(Day, nil)
	require.NoError(t, err)
	assert.Empty(t, buckets)
}

func TestGroup_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	records := []commit.Record{
		recOn("old", 2024, time.August, 1),
		recOn("new", 2024, time.August, 2),
	}
	_, err := Group(Month, records)
	require.NoError(t, err)
	assert.Equal(t, []string{"old", "new"}, hashesOf(records))
}
