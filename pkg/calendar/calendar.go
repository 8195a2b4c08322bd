// Package calendar converts YYYY-MM-DD calendar dates into instant ranges
// in a given timezone.
package calendar

import (
	"errors"
	"regexp"
	"time"
)

// Layout is the only accepted date format.
const Layout = time.DateOnly

var (
	ErrInvalidDate   = errors.New("date must be a valid YYYY-MM-DD date")
	ErrInvertedRange = errors.New("start date must not be after end date")

	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseDate parses s as a calendar date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Day returns the half-open range [start, end) covering the date s in loc.
func Day(s string, loc *time.Location) (start, end time.Time, err error) {
	start, err = ParseDate(s, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

// Range converts optional inclusive dates into a half-open instant range.
// An empty date leaves that side unbounded (zero time).
func Range(startDate, endDate string, loc *time.Location) (from, to time.Time, err error) {
	if startDate != "" {
		if from, err = ParseDate(startDate, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if endDate != "" {
		var end time.Time
		if end, err = ParseDate(endDate, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = end.AddDate(0, 0, 1)
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return time.Time{}, time.Time{}, ErrInvertedRange
	}
	return from, to, nil
}

// DateOf formats t as a calendar date in loc.
func DateOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Layout)
}

// StartOfDay returns midnight of t's date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
