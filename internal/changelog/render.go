package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/cara/internal/group"
	"github.com/ariel-frischer/cara/internal/version"
)

// Title is the first line of every generated changelog.
const Title = "# Changelog"

// Attribution is the generator line written under the title unless disabled.
const Attribution = "This changelog is auto-generated by CARA: " + version.SourceURL

// RenderConfig controls entry layout and section headers.
type RenderConfig struct {
	Fields Fields
	Unit   group.Unit
	// Attribution writes the generator line below the title.
	Attribution bool
}

// Render returns the document as lines: title, optional attribution, a
// blank line, then for each bucket a "## header" line, its entries and a
// blank separator. Buckets are rendered in the order given.
func Render(buckets []group.Bucket, cfg RenderConfig) []string {
	lines := []string{Title}
	if cfg.Attribution {
		lines = append(lines, Attribution)
	}
	lines = append(lines, "")

	for _, b := range buckets {
		lines = append(lines, "## "+SectionHeader(b, cfg.Unit))
		for _, entry := range b.Entries {
			lines = append(lines, FormatEntry(entry, cfg.Fields))
		}
		lines = append(lines, "")
	}

	return lines
}

// RenderString joins the rendered lines with newlines.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderString(buckets []group.Bucket, cfg RenderConfig) string {
	return strings.Join(Render(buckets, cfg), "\n")
}

// RenderMarkdown writes the rendered document to w.
func RenderMarkdown(buckets []group.Bucket, cfg RenderConfig, w io.Writer) error {
	if _, err := io.WriteString(w, RenderString(buckets, cfg)); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}

// SectionHeader returns the header text for a bucket, derived from its
// first entry. Day sections show the display date, with the weekday in
// parentheses unless the display date already names it. Month sections
// show "YYYY-MM (MonthName)". Week and year sections show the key.
func SectionHeader(b group.Bucket, unit group.Unit) string {
	if len(b.Entries) == 0 {
		return string(b.Key)
	}
	first := b.Entries[0]

	switch unit {
	case group.Day:
		header := first.DisplayDate
		if !strings.Contains(header, first.Date.Weekday) {
			header = fmt.Sprintf("%s (%s)", header, first.Date.Weekday)
		}
		return header
	case group.Month:
		return fmt.Sprintf("%s (%s)", b.Key, first.Date.MonthName)
	default:
		return string(b.Key)
	}
}
