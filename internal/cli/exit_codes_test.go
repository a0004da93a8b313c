package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/ariel-frischer/cara/internal/config"
	clierrors "github.com/ariel-frischer/cara/internal/errors"
	"github.com/ariel-frischer/cara/internal/group"
	"github.com/stretchr/testify/assert"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	_, unitErr := group.ParseUnit("fortnight")

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":                {err: nil, want: ExitSuccess},
		"plain error":        {err: errors.New("boom"), want: ExitFailure},
		"exit error":         {err: NewExitError(7), want: 7},
		"wrapped exit error": {err: fmt.Errorf("outer: %w", NewExitError(ExitInvalidConfig)), want: ExitInvalidConfig},
		"argument error":     {err: clierrors.NewArgumentError("bad flag"), want: ExitInvalidArguments},
		"missing config":     {err: &config.NotFoundError{Path: "x.conf"}, want: ExitInvalidConfig},
		"invalid value":      {err: &config.ValueError{Key: "MIN_WORDS", Value: "-1", Reason: "must be a non-negative integer"}, want: ExitInvalidConfig},
		"invalid unit":       {err: fmt.Errorf("%s: %w", config.KeyGroupBy, unitErr), want: ExitInvalidArguments},
		"not a repository":   {err: clierrors.NotARepository("/tmp/x", errors.New("repository does not exist")), want: ExitMissingRepository},
		"history failed":     {err: clierrors.HistoryReadFailed(errors.New("corrupt object")), want: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}

func TestPrintError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err      error
		wantText []string
		wantNone bool
	}{
		"exit error is silent": {err: NewExitError(ExitFailure), wantNone: true},
		"missing config has remediation": {
			err:      &config.NotFoundError{Path: "missing.conf"},
			wantText: []string{"missing.conf", "cara config --template"},
		},
		"plain error is shown": {
			err:      errors.New("disk full"),
			wantText: []string{"disk full"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printError(&buf, tt.err)
			if tt.wantNone {
				assert.Empty(t, buf.String())
				return
			}
			for _, want := range tt.wantText {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
