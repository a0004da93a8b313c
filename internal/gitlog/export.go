package gitlog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/cara/internal/commit"
)

// Separator delimits fields in the export format.
const Separator = "|"

// Export reads records from a pipe-delimited file. Each line is either
//
//	hash|author|YYYY,MM,DD,Weekday,Month|display date|message
//
// or the short form
//
//	hash|author|YYYY-MM-DD|message
//
// Lines that match neither form are skipped.
type Export struct {
	Path string

	skipped int
}

// NewExport returns a Source reading the export file at path.
func NewExport(path string) *Export {
	return &Export{Path: path}
}

// Records reads and parses the export file.
func (e *Export) Records(ctx context.Context) ([]commit.Record, error) {
	f, err := os.Open(e.Path)
	if err != nil {
		return nil, fmt.Errorf("opening export %s: %w", e.Path, err)
	}
	defer f.Close()

	records, skipped, err := ReadExport(ctx, f)
	e.skipped = skipped
	if err != nil {
		return nil, fmt.Errorf("reading export %s: %w", e.Path, err)
	}
	return records, nil
}

// Skipped reports how many lines the last Records call ignored.
func (e *Export) Skipped() int {
	return e.skipped
}

// MaxLineBytes caps one export line. Longer lines count as malformed.
const MaxLineBytes = 1024 * 1024

// ReadExport parses export lines from r and returns the records along
// with the number of malformed lines that were skipped.
func ReadExport(ctx context.Context, r io.Reader) ([]commit.Record, int, error) {
	var records []commit.Record
	skipped := 0

	br := bufio.NewReaderSize(r, 64*1024)
	for lineNum := 1; ; lineNum++ {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}
		raw, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, skipped, err
		}
		if tooLong {
			logDebug("[gitlog] skipping export line %d: longer than %d bytes", lineNum, MaxLineBytes)
			skipped++
			continue
		}
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			logDebug("[gitlog] skipping export line %d: %v", lineNum, err)
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// readLine returns the next line without its terminator. A line over
// MaxLineBytes is drained and reported as tooLong with no content.
func readLine(br *bufio.Reader) (string, bool, error) {
	var buf []byte
	started, tooLong := false, false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && started {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}
		started = true
		if !tooLong {
			if len(buf)+len(chunk) > MaxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// ParseLine parses one export line. The long form is tried first; the
// message may itself contain the separator.
func ParseLine(line string) (commit.Record, error) {
	if fields := strings.SplitN(line, Separator, 5); len(fields) == 5 {
		if _, err := commit.ParseCalendarDate(fields[2]); err == nil {
			return commit.FromStrings(fields...)
		}
	}
	fields := strings.SplitN(line, Separator, 4)
	if len(fields) != 4 {
		return commit.Record{}, fmt.Errorf("expected 4 or 5 %q separated fields, got %d", Separator, len(fields))
	}
	return commit.FromStrings(fields...)
}

// FormatLine renders a record in the long export form. Only the message
// may contain Separator; any other field holding it is an error.
func FormatLine(r commit.Record) (string, error) {
	fixed := []struct{ name, value string }{
		{"hash", r.Hash},
		{"author", r.Author},
		{"display date", r.DisplayDate},
	}
	for _, f := range fixed {
		if strings.Contains(f.value, Separator) {
			return "", fmt.Errorf("commit %s: %s %q contains %q", r.ShortHash(), f.name, f.value, Separator)
		}
	}
	return strings.Join([]string{r.Hash, r.Author, r.Date.String(), r.DisplayDate, r.Message}, Separator), nil
}

// WriteExport writes records in the long export form, one per line.
// Nothing is written if any record cannot be represented.
func WriteExport(w io.Writer, records []commit.Record) error {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		line, err := FormatLine(r)
		if err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		lines = append(lines, line)
	}

	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
	}
	return bw.Flush()
}
