package filter

import (
	"testing"
	"time"

	"github.com/ariel-frischer/cara/internal/commit"
	"github.com/stretchr/testify/assert"
)

func rec(message string) commit.Record {
	return commit.New("abc1234567890", "Author",
		commit.NewCalendarDate(2025, time.August, 12, "Tuesday", "August"), "2025-08-12", message)
}

func messages(records []commit.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Message)
	}
	return out
}

func TestApply(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg   Config
		input []string
		want  []string
	}{
		"no criteria keeps everything": {
			cfg:   Config{},
			input: []string{"a", "fix bug", ""},
			want:  []string{"a", "fix bug", ""},
		},
		"min words": {
			cfg:   Config{MinWords: Int(3)},
			input: []string{"fix bug", "fix the login bug", "one two three"},
			want:  []string{"fix the login bug", "one two three"},
		},
		"min words splits on any whitespace": {
			cfg:   Config{MinWords: Int(3)},
			input: []string{"  one\ttwo\n three  ", "one  two"},
			want:  []string{"  one\ttwo\n three  "},
		},
		"min chars trims the message": {
			cfg:   Config{MinChars: Int(10)},
			input: []string{"short", "   short   ", "long enough message"},
			want:  []string{"long enough message"},
		},
		"min chars counts runes": {
			cfg:   Config{MinChars: Int(5)},
			input: []string{"héllo", "héll"},
			want:  []string{"héllo"},
		},
		"exclude keywords case-insensitive substring": {
			cfg:   Config{Exclude: []string{"skip", "wip"}},
			input: []string{"SKIP this commit", "keep this one", "Wiping cache"},
			want:  []string{"keep this one"},
		},
		"include keywords require any match": {
			cfg:   Config{Include: []string{"feature", "fix"}},
			input: []string{"new Feature added", "fix bug", "docs update"},
			want:  []string{"new Feature added", "fix bug"},
		},
		"exclude beats include": {
			cfg:   Config{Include: []string{"feature"}, Exclude: []string{"revert"}},
			input: []string{"Revert feature", "feature: search"},
			want:  []string{"feature: search"},
		},
		"empty keywords never match": {
			cfg:   Config{Exclude: []string{""}, Include: []string{""}},
			input: []string{"anything"},
			want:  []string{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			input := make([]commit.Record, 0, len(tt.input))
			for _, m := range tt.input {
				input = append(input, rec(m))
			}
			assert.Equal(t, tt.want, messages(Apply(tt.cfg, input)))
		})
	}
}

func TestPasses_MinWordsTakesPrecedence(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		message string
		want    bool
	}{
		// Passes the word count but would fail 100 characters.
		"enough words few chars": {message: "a b c", want: true},
		// Fails the word count but would pass 1 character.
		"few words many chars": {message: "supercalifragilistic", want: false},
	}

	for _, minChars := range []int{1, 100} {
		cfg := Config{MinWords: Int(3), MinChars: Int(minChars)}
		for name, tt := range tests {
			assert.Equal(t, tt.want, Passes(cfg, rec(tt.message)), "%s (min chars %d)", name, minChars)
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := []commit.Record{rec("fix bug"), rec("fix the login bug")}
	got := Apply(Config{MinWords: Int(3)}, input)

	assert.Len(t, got, 1)
	assert.Equal(t, []string{"fix bug", "fix the login bug"}, messages(input))
}

func TestParseKeywords(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  []string
	}{
		"empty":            {input: "", want: nil},
		"single":           {input: "Skip", want: []string{"skip"}},
		"trims and lowers": {input: " WIP , Merge branch ,,", want: []string{"wip", "merge branch"}},
		"only separators":  {input: " , ,", want: nil},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseKeywords(tt.input))
		})
	}
}

func TestConfig_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, Config{}.IsZero())
	assert.False(t, Config{MinChars: Int(0)}.IsZero())
	assert.False(t, Config{Include: []string{"x"}}.IsZero())
}
