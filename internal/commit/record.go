package commit

import (
	"fmt"
	"strings"
	"time"
)

// ShortHashLength is the number of hash characters used as a short identifier.
const ShortHashLength = 7

// Record is a single commit as seen by the changelog pipeline.
type Record struct {
	// Hash is the full commit identifier.
	Hash string
	// Author is the author's display name.
	Author string
	// Date is the canonical date used for grouping and ordering.
	Date CalendarDate
	// DisplayDate is the human-facing date text; it refers to the same instant as Date.
	DisplayDate string
	// Message is the single-line commit summary.
	Message string
}

// New assembles a Record from already-parsed parts.
func New(hash, author string, date CalendarDate, displayDate, message string) Record {
	return Record{
		Hash:        hash,
		Author:      author,
		Date:        date,
		DisplayDate: displayDate,
		Message:     message,
	}
}

// FromStrings builds a Record from raw string fields. It accepts either
// five fields (hash, author, canonical tuple, display date, message) or
// four fields (hash, author, display date, message), in which case the
// display date must be an ISO YYYY-MM-DD date and the canonical date is
// derived from it.
func FromStrings(fields ...string) (Record, error) {
	switch len(fields) {
	case 5:
		date, err := ParseCalendarDate(fields[2])
		if err != nil {
			return Record{}, err
		}
		return New(fields[0], fields[1], date, fields[3], fields[4]), nil
	case 4:
		t, err := time.Parse(time.DateOnly, strings.TrimSpace(fields[2]))
		if err != nil {
			return Record{}, fmt.Errorf("display date %q: cannot derive canonical date: %w", fields[2], err)
		}
		return New(fields[0], fields[1], CalendarDateOf(t), fields[2], fields[3]), nil
	default:
		return Record{}, fmt.Errorf("expected 4 or 5 fields, got %d", len(fields))
	}
}

// ShortHash returns the first seven characters of the hash, or the whole
// hash when it is shorter.
func (r Record) ShortHash() string {
	if len(r.Hash) <= ShortHashLength {
		return r.Hash
	}
	return r.Hash[:ShortHashLength]
}

// String returns a compact summary such as "<abc1234 - Alice - 2024-08-12>".
func (r Record) String() string {
	return fmt.Sprintf("<%s - %s - %s>", r.ShortHash(), r.Author, r.DisplayDate)
}
