// Package testutil provides test utilities and helpers for cara tests.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var (
	// caraBinaryPath caches the built cara binary path.
	caraBinaryPath string
	caraBuildOnce  sync.Once
	caraBuildErr   error
)

// E2EEnv provides an isolated environment for E2E testing. Commands run
// in a temp directory with CARA_* variables removed from the environment.
type E2EEnv struct {
	t       *testing.T
	tempDir string
	env     []string
	repo    *git.Repository
	commits int
}

// CommandResult captures the result of running a cara command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv creates a new E2E test environment and builds cara if needed.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	caraBuildOnce.Do(func() {
		caraBinaryPath, caraBuildErr = buildCara()
	})
	if caraBuildErr != nil {
		t.Fatalf("building cara: %v", caraBuildErr)
	}

	e := &E2EEnv{t: t, tempDir: t.TempDir()}
	e.env = isolatedEnv(e.tempDir)
	return e
}

func buildCara() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "cara-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}
	binaryPath := filepath.Join(tmpDir, "cara")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/cara")
	cmd.Dir = repoRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("go build: %w\nOutput: %s", err, output)
	}
	return binaryPath, nil
}

// isolatedEnv keeps only the variables a subprocess needs.
func isolatedEnv(home string) []string {
	env := []string{"HOME=" + home, "NO_COLOR=1"}
	for _, key := range []string{"PATH", "TERM", "LANG", "LC_ALL", "TMPDIR", "TMP", "TEMP"} {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}
	return env
}

// Setenv adds a variable to the environment used by Run.
func (e *E2EEnv) Setenv(key, value string) {
	e.env = append(e.env, key+"="+value)
}

// Run executes a cara command in the test directory.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()
	cmd := exec.Command(caraBinaryPath, args...)
	cmd.Dir = e.tempDir
	cmd.Env = e.env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
		}
	}
	return result
}

// TempDir returns the working directory commands run in.
func (e *E2EEnv) TempDir() string {
	return e.tempDir
}

// Path joins name onto the test directory.
func (e *E2EEnv) Path(name string) string {
	return filepath.Join(e.tempDir, name)
}

// WriteFile creates a file relative to the test directory.
func (e *E2EEnv) WriteFile(name, content string) string {
	e.t.Helper()

	path := e.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// ReadFile returns the content of a file relative to the test directory.
func (e *E2EEnv) ReadFile(name string) string {
	e.t.Helper()

	data, err := os.ReadFile(e.Path(name))
	if err != nil {
		e.t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// InitGitRepo initializes a git repository in the test directory.
func (e *E2EEnv) InitGitRepo() {
	e.t.Helper()

	repo, err := git.PlainInit(e.tempDir, false)
	if err != nil {
		e.t.Fatalf("git init: %v", err)
	}
	e.repo = repo
}

// Commit records a commit by author at when. InitGitRepo must run first.
func (e *E2EEnv) Commit(author string, when time.Time, message string) {
	e.t.Helper()

	if e.repo == nil {
		e.t.Fatal("Commit called before InitGitRepo")
	}
	wt, err := e.repo.Worktree()
	if err != nil {
		e.t.Fatalf("opening worktree: %v", err)
	}

	e.commits++
	e.WriteFile("history.log", fmt.Sprintf("change %d\n", e.commits))
	if _, err := wt.Add("history.log"); err != nil {
		e.t.Fatalf("git add: %v", err)
	}

	sig := &object.Signature{Name: author, Email: "dev@example.com", When: when}
	if _, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig}); err != nil {
		e.t.Fatalf("git commit: %v", err)
	}
}
