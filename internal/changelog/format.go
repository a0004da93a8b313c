package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/cara/internal/commit"
	"github.com/ariel-frischer/cara/internal/group"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	headerStyle = color.New(color.Bold)
	dateStyle   = color.New(color.Faint)
	hashStyle   = color.New(color.FgYellow)
	authorStyle = color.New(color.FgCyan)
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes grouped entries to w for reading in a terminal.
// Plain output is the Markdown document body without the title block.
func FormatTerminal(buckets []group.Bucket, cfg RenderConfig, w io.Writer, opts FormatOptions) error {
	if len(buckets) == 0 {
		_, err := fmt.Fprintln(w, "No changelog entries found.")
		return err
	}

	width := resolveWidth(opts.MaxWidth)

	for i, b := range buckets {
		if err := formatBucket(b, cfg, w, opts, width, i > 0); err != nil {
			return fmt.Errorf("formatting section %s: %w", b.Key, err)
		}
	}

	return nil
}

// formatBucket writes a section header and its entries.
func formatBucket(b group.Bucket, cfg RenderConfig, w io.Writer, opts FormatOptions, width int, addSeparator bool) error {
	if addSeparator {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	header := "## " + SectionHeader(b, cfg.Unit)
	if !opts.Plain {
		header = headerStyle.Sprint(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for _, entry := range b.Entries {
		if _, err := fmt.Fprintln(w, formatTerminalEntry(entry, cfg.Fields, opts, width)); err != nil {
			return err
		}
	}

	return nil
}

// formatTerminalEntry renders an entry like FormatEntry, wrapping long
// lines and highlighting the date, hash and author tokens.
func formatTerminalEntry(r commit.Record, fields Fields, opts FormatOptions, width int) string {
	line := wrapText(FormatEntry(r, fields), width, "  ")
	if opts.Plain {
		return line
	}

	tokens := []struct {
		show  bool
		text  string
		style *color.Color
	}{
		{!fields.All && fields.Has(FieldDate), "[" + r.DisplayDate + "]", dateStyle},
		{fields.All || fields.Has(FieldHash), r.Hash, hashStyle},
		{fields.All || fields.Has(FieldAuthor), r.Author, authorStyle},
	}
	for _, tok := range tokens {
		if tok.show && tok.text != "" {
			line = strings.Replace(line, tok.text, tok.style.Sprint(tok.text), 1)
		}
	}
	return line
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// FormatEntrySummary returns a brief one-line summary of a record.
func FormatEntrySummary(r commit.Record, opts FormatOptions) string {
	text := TruncateText(r.Message, 60)

	if opts.Plain {
		return fmt.Sprintf("%s %s", r.ShortHash(), text)
	}

	return fmt.Sprintf("%s %s", hashStyle.Sprint(r.ShortHash()), text)
}

// TruncateText shortens text to maxLen runes, adding an ellipsis if needed.
func TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
