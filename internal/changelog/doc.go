// Package changelog turns commit records into a changelog document.
//
// This package implements:
//   - Entry formatting driven by the OUTPUT_ENTRIES field selection
//   - Markdown rendering of grouped commits (one "##" section per period)
//   - The generate pipeline: deduplicate, filter, group, render
//   - Merging freshly generated sections into an existing changelog
//   - YAML rendering and colored terminal previews of the same data
//
// Rendering is deterministic: the same records and options always produce
// byte-identical output.
package changelog
