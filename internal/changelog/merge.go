package changelog

import (
	"fmt"
	"os"
	"strings"
)

// Section is one "## header" block of a changelog document.
type Section struct {
	Header string
	// Lines holds the lines after the header, without trailing blank lines.
	Lines []string
}

// ParseSections splits a changelog into its "## " sections. Text before
// the first section (title and preamble) is dropped.
func ParseSections(doc string) []Section {
	var sections []Section
	var current *Section

	for _, line := range strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n") {
		if header, ok := strings.CutPrefix(line, "## "); ok {
			if current != nil {
				sections = append(sections, finishSection(*current))
			}
			current = &Section{Header: strings.TrimSpace(header)}
			continue
		}
		if current != nil {
			current.Lines = append(current.Lines, line)
		}
	}

	if current != nil {
		sections = append(sections, finishSection(*current))
	}
	return sections
}

func finishSection(s Section) Section {
	n := len(s.Lines)
	for n > 0 && strings.TrimSpace(s.Lines[n-1]) == "" {
		n--
	}
	s.Lines = s.Lines[:n]
	return s
}

// Merge appends to generated every section of existing whose header the
// generated document does not already contain, keeping their original
// order. Sections produced by the current run replace their old copies.
func Merge(generated, existing string) string {
	present := make(map[string]bool)
	for _, s := range ParseSections(generated) {
		present[s.Header] = true
	}

	lines := strings.Split(generated, "\n")
	if n := len(lines); n > 0 && lines[n-1] != "" {
		lines = append(lines, "")
	}

	for _, s := range ParseSections(existing) {
		if present[s.Header] {
			continue
		}
		present[s.Header] = true
		lines = append(lines, "## "+s.Header)
		lines = append(lines, s.Lines...)
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// MergeFile merges generated with the changelog stored at path. A missing
// file leaves generated unchanged.
func MergeFile(generated, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return generated, nil
		}
		return "", fmt.Errorf("reading input changelog: %w", err)
	}
	return Merge(generated, string(data)), nil
}
