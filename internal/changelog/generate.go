package changelog

import (
	"fmt"

	"github.com/ariel-frischer/cara/internal/commit"
	"github.com/ariel-frischer/cara/internal/filter"
	"github.com/ariel-frischer/cara/internal/group"
)

// Options bundles the stage configuration for one generate run.
type Options struct {
	Filter filter.Config
	Render RenderConfig
}

// Result is the outcome of the pipeline before rendering.
type Result struct {
	Buckets []group.Bucket
	// Input, Unique and Kept count records read, left after
	// deduplication, and left after filtering.
	Input  int
	Unique int
	Kept   int
}

// Build runs deduplicate, filter and group over records. Deduplication
// runs first so repeated commits cannot inflate what the filters see.
// The only error is an unsupported grouping unit.
func Build(records []commit.Record, opts Options) (*Result, error) {
	if err := opts.Render.Unit.Validate(); err != nil {
		return nil, err
	}

	unique := commit.Deduplicate(records)
	kept := unique
	if !opts.Filter.IsZero() {
		kept = filter.Apply(opts.Filter, unique)
	}

	buckets, err := group.Group(opts.Render.Unit, kept)
	if err != nil {
		return nil, fmt.Errorf("grouping entries: %w", err)
	}

	return &Result{
		Buckets: buckets,
		Input:   len(records),
		Unique:  len(unique),
		Kept:    group.Count(buckets),
	}, nil
}

// Generate runs the full pipeline and returns the Markdown document.
// With no records the document holds only the title block.
func Generate(records []commit.Record, opts Options) (string, error) {
	res, err := Build(records, opts)
	if err != nil {
		return "", err
	}
	return RenderString(res.Buckets, opts.Render), nil
}
