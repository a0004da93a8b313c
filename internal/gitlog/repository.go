package gitlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ariel-frischer/cara/internal/commit"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Options controls how history is read from a repository.
type Options struct {
	// DateFormat is the strftime layout for display dates.
	DateFormat string
	// MaxCommits stops the walk after this many commits. Zero reads all.
	MaxCommits int
}

// Repository reads commit history reachable from HEAD.
type Repository struct {
	repo *git.Repository
	root string
	opts Options
}

// Open opens the repository containing path, walking up the directory
// tree to find it. An empty path means the current directory.
func Open(path string, opts Options) (*Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[gitlog] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return NewRepository(repo, opts), nil
}

// NewRepository wraps an already opened repository. Root is taken from
// its worktree, if it has one.
func NewRepository(repo *git.Repository, opts Options) *Repository {
	r := &Repository{repo: repo, opts: opts}
	if wt, err := repo.Worktree(); err == nil {
		r.root = wt.Filesystem.Root()
	}
	return r
}

// Root returns the worktree root, or "" for a repository without one.
func (r *Repository) Root() string {
	return r.root
}

// Records walks history from HEAD in reverse chronological order. A
// repository without commits yields no records.
func (r *Repository) Records(ctx context.Context) ([]commit.Record, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			logDebug("[gitlog] repository has no commits")
			return nil, nil
		}
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", head.Hash(), err)
	}
	defer iter.Close()

	var records []commit.Record
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		records = append(records, r.toRecord(c))
		if r.opts.MaxCommits > 0 && len(records) >= r.opts.MaxCommits {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	logDebug("[gitlog] read %d commits from %s", len(records), head.Name().Short())
	return records, nil
}

// toRecord converts a commit using the author timestamp in the author's
// own timezone.
func (r *Repository) toRecord(c *object.Commit) commit.Record {
	when := c.Author.When
	return commit.New(
		c.Hash.String(),
		c.Author.Name,
		commit.CalendarDateOf(when),
		FormatDate(r.opts.DateFormat, when),
		Subject(c.Message),
	)
}

// Subject returns the first paragraph of a commit message joined into a
// single line.
func Subject(message string) string {
	var parts []string
	for _, line := range strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(parts) > 0 {
				break
			}
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
