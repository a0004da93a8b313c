package commit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CanonicalDateFormat is the strftime layout that produces the canonical
// date tuple, e.g. "2024,08,12,Monday,August".
const CanonicalDateFormat = "%Y,%m,%d,%A,%B"

// CalendarDate is the canonical, unambiguous date of a commit.
// The weekday and month names are kept verbatim from the commit source so
// headers render in whatever language the source produced.
type CalendarDate struct {
	Year      int
	Month     time.Month
	Day       int
	Weekday   string
	MonthName string

	t time.Time
}

// NewCalendarDate builds a CalendarDate and caches its time.Time at UTC midnight.
// Out-of-range components are normalized the way time.Date normalizes them.
func NewCalendarDate(year int, month time.Month, day int, weekday, monthName string) CalendarDate {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return CalendarDate{
		Year:      t.Year(),
		Month:     t.Month(),
		Day:       t.Day(),
		Weekday:   weekday,
		MonthName: monthName,
		t:         t,
	}
}

// CalendarDateOf returns the calendar date of t in t's own location, using
// English weekday and month names.
func CalendarDateOf(t time.Time) CalendarDate {
	return NewCalendarDate(t.Year(), t.Month(), t.Day(), t.Weekday().String(), t.Month().String())
}

// ParseCalendarDate parses the canonical tuple "YYYY,MM,DD,Weekday,Month".
func ParseCalendarDate(s string) (CalendarDate, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 5 {
		return CalendarDate{}, fmt.Errorf("canonical date %q: expected 5 comma-separated fields, got %d", s, len(parts))
	}

	nums := make([]int, 3)
	for i, name := range []string{"year", "month", "day"} {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return CalendarDate{}, fmt.Errorf("canonical date %q: invalid %s: %w", s, name, err)
		}
		nums[i] = n
	}

	if nums[1] < 1 || nums[1] > 12 {
		return CalendarDate{}, fmt.Errorf("canonical date %q: month %d out of range", s, nums[1])
	}
	if nums[2] < 1 || nums[2] > daysIn(time.Month(nums[1]), nums[0]) {
		return CalendarDate{}, fmt.Errorf("canonical date %q: day %d out of range", s, nums[2])
	}

	return NewCalendarDate(nums[0], time.Month(nums[1]), nums[2],
		strings.TrimSpace(parts[3]), strings.TrimSpace(parts[4])), nil
}

// Time returns the date at midnight UTC.
func (d CalendarDate) Time() time.Time {
	if d.t.IsZero() && d.Year != 0 {
		return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	}
	return d.t
}

// IsZero reports whether d was never set.
func (d CalendarDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// ISO returns the date as YYYY-MM-DD.
func (d CalendarDate) ISO() string {
	return d.Time().Format(time.DateOnly)
}

// String returns the canonical tuple form.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d,%02d,%02d,%s,%s", d.Year, int(d.Month), d.Day, d.Weekday, d.MonthName)
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
