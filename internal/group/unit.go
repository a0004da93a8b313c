// Package group buckets commits into calendar periods and orders them.
//
// Week grouping follows ISO-8601: weeks start on Monday and belong to the
// ISO year that contains their Thursday, so 2024-12-30 is in 2025-W01.
package group

import (
	"errors"
	"fmt"
	"strings"
)

// Unit is a calendar granularity used to bucket commits.
type Unit string

const (
	Day   Unit = "day"
	Week  Unit = "week"
	Month Unit = "month"
	Year  Unit = "year"
)

// ErrInvalidUnit is matched by errors.Is for every InvalidUnitError.
var ErrInvalidUnit = errors.New("invalid grouping unit")

// InvalidUnitError reports a grouping unit outside the supported set.
type InvalidUnitError struct {
	Unit  string
	Valid []Unit
}

func (e *InvalidUnitError) Error() string {
	valid := make([]string, len(e.Valid))
	for i, u := range e.Valid {
		valid[i] = string(u)
	}
	return fmt.Sprintf("invalid grouping unit %q (choose from: %s)", e.Unit, strings.Join(valid, ", "))
}

// Is makes errors.Is(err, ErrInvalidUnit) hold.
func (e *InvalidUnitError) Is(target error) bool {
	return target == ErrInvalidUnit
}

// ValidUnits returns the supported units from finest to coarsest.
func ValidUnits() []Unit {
	return []Unit{Day, Week, Month, Year}
}

// ParseUnit parses a unit name case-insensitively.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if err := u.Validate(); err != nil {
		return "", &InvalidUnitError{Unit: s, Valid: ValidUnits()}
	}
	return u, nil
}

// Validate returns an InvalidUnitError when u is not a supported unit.
func (u Unit) Validate() error {
	switch u {
	case Day, Week, Month, Year:
		return nil
	default:
		return &InvalidUnitError{Unit: string(u), Valid: ValidUnits()}
	}
}

// IsInvalidUnit reports whether err is an InvalidUnitError.
func IsInvalidUnit(err error) bool {
	var iu *InvalidUnitError
	return errors.As(err, &iu)
}
