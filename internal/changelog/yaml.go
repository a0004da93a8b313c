package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/cara/internal/group"
	"gopkg.in/yaml.v3"
)

// Document is the structured form of a rendered changelog, used for the
// YAML output format.
type Document struct {
	Unit     string       `yaml:"group_by"`
	Sections []DocSection `yaml:"sections"`
}

// DocSection is one calendar period in a Document.
type DocSection struct {
	Key     string     `yaml:"key"`
	Header  string     `yaml:"header"`
	Entries []DocEntry `yaml:"entries"`
}

// DocEntry is one commit in a DocSection. Line is the Markdown entry line.
type DocEntry struct {
	Hash    string `yaml:"hash"`
	Author  string `yaml:"author"`
	Date    string `yaml:"date"`
	Display string `yaml:"display_date"`
	Message string `yaml:"message"`
	Line    string `yaml:"line"`
}

// NewDocument builds the structured form of buckets.
func NewDocument(buckets []group.Bucket, cfg RenderConfig) Document {
	doc := Document{Unit: string(cfg.Unit), Sections: make([]DocSection, 0, len(buckets))}
	for _, b := range buckets {
		section := DocSection{
			Key:     string(b.Key),
			Header:  SectionHeader(b, cfg.Unit),
			Entries: make([]DocEntry, 0, len(b.Entries)),
		}
		for _, r := range b.Entries {
			section.Entries = append(section.Entries, DocEntry{
				Hash:    r.Hash,
				Author:  r.Author,
				Date:    r.Date.ISO(),
				Display: r.DisplayDate,
				Message: r.Message,
				Line:    FormatEntry(r, cfg.Fields),
			})
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc
}

// RenderYAML writes the structured changelog as YAML.
func RenderYAML(buckets []group.Bucket, cfg RenderConfig, w io.Writer) error {
	return NewDocument(buckets, cfg).Encode(w)
}

// RenderYAMLString is a convenience function that renders YAML to a string.
func RenderYAMLString(buckets []group.Bucket, cfg RenderConfig) (string, error) {
	return NewDocument(buckets, cfg).YAML()
}

// Encode writes d as YAML.
func (d Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding changelog YAML: %w", err)
	}
	return enc.Close()
}

// YAML returns d encoded as YAML.
func (d Document) YAML() (string, error) {
	var b strings.Builder
	if err := d.Encode(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// LoadDocument decodes a YAML changelog produced by RenderYAML.
func LoadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing changelog YAML: %w", err)
	}
	return &doc, nil
}

// MergeDocument appends to generated every section of existing whose
// header generated does not already contain, in their original order.
func MergeDocument(generated, existing Document) Document {
	present := make(map[string]bool, len(generated.Sections))
	for _, s := range generated.Sections {
		present[s.Header] = true
	}

	merged := generated
	merged.Sections = append([]DocSection(nil), generated.Sections...)
	for _, s := range existing.Sections {
		if present[s.Header] {
			continue
		}
		present[s.Header] = true
		merged.Sections = append(merged.Sections, s)
	}
	return merged
}

// MergeDocumentFile merges generated with the YAML changelog stored at
// path. A missing file leaves generated unchanged.
func MergeDocumentFile(generated Document, path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return generated, nil
		}
		return Document{}, fmt.Errorf("reading input changelog: %w", err)
	}
	defer f.Close()

	existing, err := LoadDocument(f)
	if err != nil {
		return Document{}, err
	}
	return MergeDocument(generated, *existing), nil
}
