//go:build e2e

// Package e2e provides end-to-end tests for the cara CLI. They build the
// binary and run it against real repositories in temp directories.
//
// To run these tests:
//
//	go test -tags=e2e ./tests/e2e/...
package e2e

import (
	"strings"
	"testing"
	"time"

	"github.com/ariel-frischer/cara/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupHistory creates a repository with three commits over two days.
func setupHistory(env *testutil.E2EEnv) {
	env.InitGitRepo()
	env.Commit("Alice", time.Date(2024, time.August, 12, 9, 0, 0, 0, time.UTC), "Initial commit")
	env.Commit("Bob", time.Date(2024, time.August, 13, 10, 0, 0, 0, time.UTC), "wip")
	env.Commit("Bob", time.Date(2024, time.August, 13, 11, 0, 0, 0, time.UTC), "Add parser for config files")
}

func TestE2E_Generate(t *testing.T) {
	tests := map[string]struct {
		conf      string
		env       map[string]string
		args      []string
		want      []string
		wantNotIn []string
	}{
		"defaults write CHANGELOG.md": {
			want: []string{
				"# Changelog\n",
				"## 2024-08-13 (Tuesday)\n- Add parser for config files.\n- wip.\n",
				"## 2024-08-12 (Monday)\n- Initial commit.\n",
			},
		},
		"config file filters and groups": {
			conf:      "MIN_WORDS=2\nGROUP_BY=month\nATTRIBUTION=false\n",
			want:      []string{"## 2024-08 (August)\n- Add parser for config files.\n- Initial commit.\n"},
			wantNotIn: []string{"wip", "auto-generated"},
		},
		"environment overrides file": {
			conf: "GROUP_BY=month\n",
			env:  map[string]string{"CARA_GROUP_BY": "year", "CARA_EXCLUDE_KEYWORDS": "wip,parser"},
			want: []string{"## 2024\n- Initial commit.\n"},
		},
		"custom output path": {
			args: []string{"-o", "docs/HISTORY.md"},
			want: []string{"- Initial commit."},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := testutil.NewE2EEnv(t)
			setupHistory(env)
			if tt.conf != "" {
				env.WriteFile("cara.conf", tt.conf)
			}
			for k, v := range tt.env {
				env.Setenv(k, v)
			}

			result := env.Run(tt.args...)
			require.Equal(t, 0, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)

			output := "CHANGELOG.md"
			for i, arg := range tt.args {
				if arg == "-o" {
					output = tt.args[i+1]
				}
			}
			doc := env.ReadFile(output)
			for _, want := range tt.want {
				assert.Contains(t, doc, want)
			}
			for _, unwanted := range tt.wantNotIn {
				assert.NotContains(t, doc, unwanted)
			}
		})
	}
}

func TestE2E_ExportRoundTrip(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	setupHistory(env)

	result := env.Run("log", "--export", "history.txt")
	require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)
	assert.Len(t, strings.Split(strings.TrimSpace(env.ReadFile("history.txt")), "\n"), 3)

	fromRepo := env.Run("-o", "-")
	require.Equal(t, 0, fromRepo.ExitCode, "stderr: %s", fromRepo.Stderr)

	fromExport := env.Run("--from", "history.txt", "-o", "-")
	require.Equal(t, 0, fromExport.ExitCode, "stderr: %s", fromExport.Stderr)
	assert.Equal(t, fromRepo.Stdout, fromExport.Stdout)
}

func TestE2E_Idempotent(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	setupHistory(env)

	require.Equal(t, 0, env.Run().ExitCode)
	first := env.ReadFile("CHANGELOG.md")

	require.Equal(t, 0, env.Run("-i", "CHANGELOG.md").ExitCode)
	assert.Equal(t, first, env.ReadFile("CHANGELOG.md"))
}

func TestE2E_Commands(t *testing.T) {
	tests := map[string]struct {
		args []string
		want []string
	}{
		"help":            {args: []string{"--help"}, want: []string{"cara", "Generate:", "Inspect:"}},
		"version":         {args: []string{"version", "--plain"}, want: []string{"cara ", "platform:"}},
		"config template": {args: []string{"config", "--template"}, want: []string{"OUTPUT_ENTRIES=message", "GROUP_BY=day"}},
		"config show":     {args: []string{"config"}, want: []string{"Current Configuration:", "No configuration loaded."}},
		"preview":         {args: []string{"preview", "--plain"}, want: []string{"## 2024-08-13 (Tuesday)", "- Initial commit."}},
		"log plain":       {args: []string{"log", "--plain"}, want: []string{"2024-08-12 | Alice |", "- Initial commit"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := testutil.NewE2EEnv(t)
			setupHistory(env)

			result := env.Run(tt.args...)
			require.Equal(t, 0, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
			for _, want := range tt.want {
				assert.Contains(t, result.Stdout, want)
			}
		})
	}
}
