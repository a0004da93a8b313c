package changelog

import (
	"strings"
	"unicode"

	"github.com/ariel-frischer/cara/internal/commit"
)

// Field is one part of a rendered entry line.
type Field string

const (
	FieldDate    Field = "date"
	FieldHash    Field = "hash"
	FieldAuthor  Field = "author"
	FieldMessage Field = "message"
)

// Fields selects what an entry line shows. When All is set the Selected
// set is ignored.
type Fields struct {
	All      bool
	Selected map[Field]bool
}

// AllFields selects the "{hash}: {author} -> {message}" layout.
func AllFields() Fields {
	return Fields{All: true}
}

// SelectFields selects the given fields. Rendering order is fixed
// regardless of argument order.
func SelectFields(fields ...Field) Fields {
	selected := make(map[Field]bool, len(fields))
	for _, f := range fields {
		selected[f] = true
	}
	return Fields{Selected: selected}
}

// Has reports whether f is selected.
func (f Fields) Has(field Field) bool {
	return f.Selected[field]
}

// String returns the OUTPUT_ENTRIES form of f.
func (f Fields) String() string {
	if f.All {
		return "all"
	}
	var parts []string
	for _, field := range canonicalOrder {
		if f.Has(field) {
			parts = append(parts, string(field))
		}
	}
	return strings.Join(parts, " ")
}

// canonicalOrder is the order fields appear in a line.
var canonicalOrder = []Field{FieldDate, FieldHash, FieldAuthor, FieldMessage}

// ParseFields parses an OUTPUT_ENTRIES value such as
// "date commit author message", separated by whitespace or commas.
// "commit" is accepted as an alias of "hash" and "all" switches to the
// all-fields layout. Unrecognized tokens are returned so the caller can
// report them.
func ParseFields(s string) (Fields, []string) {
	var unknown []string
	fields := SelectFields()

	for _, tok := range strings.FieldsFunc(strings.ToLower(s), isFieldSeparator) {
		switch tok {
		case "all":
			fields.All = true
		case "commit", "hash":
			fields.Selected[FieldHash] = true
		case "date":
			fields.Selected[FieldDate] = true
		case "author":
			fields.Selected[FieldAuthor] = true
		case "message":
			fields.Selected[FieldMessage] = true
		default:
			unknown = append(unknown, tok)
		}
	}

	return fields, unknown
}

func isFieldSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// FormatEntry renders one commit as a changelog line. Every line ends in
// ".", "?" or "!"; a period is appended when needed.
func FormatEntry(r commit.Record, fields Fields) string {
	var b strings.Builder

	if fields.All {
		b.WriteString(r.Hash + ": " + r.Author + " -> " + r.Message)
	} else {
		b.WriteString("- ")
		if fields.Has(FieldDate) {
			b.WriteString("[" + r.DisplayDate + "] ")
		}
		if fields.Has(FieldHash) {
			b.WriteString(r.Hash + ": ")
		}
		if fields.Has(FieldAuthor) {
			b.WriteString(r.Author + " -> ")
		}
		if fields.Has(FieldMessage) {
			b.WriteString(r.Message)
		}
	}

	line := b.String()
	if !endsWithTerminalPunctuation(line) {
		line += "."
	}
	return line
}

func endsWithTerminalPunctuation(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "?") || strings.HasSuffix(s, "!")
}
