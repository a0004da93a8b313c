package group

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ariel-frischer/cara/internal/commit"
)

// Key identifies a calendar bucket: "2024-08-12" (day), "2024-W33" (week),
// "2024-08" (month) or "2024" (year).
type Key string

// Bucket is one calendar period and its entries, newest first.
type Bucket struct {
	Key     Key
	Entries []commit.Record
}

// KeyFor returns the bucket key of date for unit.
func KeyFor(unit Unit, date commit.CalendarDate) (Key, error) {
	t := date.Time()
	switch unit {
	case Day:
		return Key(t.Format(time.DateOnly)), nil
	case Week:
		year, week := t.ISOWeek()
		return Key(fmt.Sprintf("%04d-W%02d", year, week)), nil
	case Month:
		return Key(fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))), nil
	case Year:
		return Key(fmt.Sprintf("%04d", t.Year())), nil
	default:
		return "", unit.Validate()
	}
}

// ParseKey maps a key back to the chronological anchor of its period: the
// day itself, the Monday of the ISO week, the first of the month, or
// January 1st, all at midnight UTC.
func ParseKey(unit Unit, key Key) (time.Time, error) {
	s := string(key)
	switch unit {
	case Day:
		return time.Parse(time.DateOnly, s)
	case Week:
		return parseISOWeek(s)
	case Month:
		return time.Parse("2006-01", s)
	case Year:
		return time.Parse("2006", s)
	default:
		return time.Time{}, unit.Validate()
	}
}

// parseISOWeek parses "YYYY-Www" into the Monday starting that ISO week.
func parseISOWeek(s string) (time.Time, error) {
	yearPart, weekPart, ok := strings.Cut(s, "-W")
	if !ok || len(yearPart) != 4 || len(weekPart) != 2 {
		return time.Time{}, fmt.Errorf("week key %q: expected YYYY-Www", s)
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return time.Time{}, fmt.Errorf("week key %q: invalid year: %w", s, err)
	}
	week, err := strconv.Atoi(weekPart)
	if err != nil {
		return time.Time{}, fmt.Errorf("week key %q: invalid week: %w", s, err)
	}

	// January 4th is always in week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7 // days since Monday
	monday := jan4.AddDate(0, 0, -offset+(week-1)*7)

	if y, w := monday.ISOWeek(); y != year || w != week {
		return time.Time{}, fmt.Errorf("week key %q: week %d does not exist in %d", s, week, year)
	}
	return monday, nil
}

// Group buckets records by unit. Entries within a bucket are ordered by
// canonical date, newest first, keeping input order for equal dates.
// Buckets are ordered by the period they represent, newest first.
func Group(unit Unit, records []commit.Record) ([]Bucket, error) {
	if err := unit.Validate(); err != nil {
		return nil, err
	}

	index := make(map[Key]int)
	var buckets []Bucket
	for _, r := range records {
		key, err := KeyFor(unit, r.Date)
		if err != nil {
			return nil, err
		}
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Key: key})
		}
		buckets[i].Entries = append(buckets[i].Entries, r)
	}

	for i := range buckets {
		entries := buckets[i].Entries
		sort.SliceStable(entries, func(a, b int) bool {
			return entries[a].Date.Time().After(entries[b].Date.Time())
		})
	}

	anchors := make(map[Key]time.Time, len(buckets))
	for _, b := range buckets {
		anchor, err := ParseKey(unit, b.Key)
		if err != nil {
			return nil, fmt.Errorf("ordering bucket %s: %w", b.Key, err)
		}
		anchors[b.Key] = anchor
	}
	sort.SliceStable(buckets, func(a, b int) bool {
		return anchors[buckets[a].Key].After(anchors[buckets[b].Key])
	})

	return buckets, nil
}

// Count returns the total number of entries across buckets.
func Count(buckets []Bucket) int {
	n := 0
	for _, b := range buckets {
		n += len(b.Entries)
	}
	return n
}
