package models

import (
	"encoding/json"
	"regexp"
	"time"

	apperrors "github.com/tropicaldog17/folio/internal/errors"
)

// DateLayout is the calendar date format used on the wire and in procedure parameters.
const DateLayout = "2006-01-02"

// Range tokens accepted by ResolveRange besides a 4-digit year.
const (
	Range1M  = "1m"
	Range3M  = "3m"
	Range6M  = "6m"
	Range1Y  = "1y"
	RangeMTD = "mtd"
	RangeYTD = "ytd"
	RangeAll = "all"
)

// EpochFloor is the earliest date any record can carry; the "all" range starts here.
var EpochFloor = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var yearToken = regexp.MustCompile(`^\d{4}$`)

// Period represents a time period for reporting. Both ends are calendar dates
// and StartDate is never after EndDate.
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Start returns the start date as YYYY-MM-DD.
func (p Period) Start() string { return p.StartDate.Format(DateLayout) }

// End returns the end date as YYYY-MM-DD.
func (p Period) End() string { return p.EndDate.Format(DateLayout) }

func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"start_date": p.Start(),
		"end_date":   p.End(),
	})
}

// ResolveRange maps a range token to a concrete window ending today
// (or covering a full calendar year for a 4-digit token).
func ResolveRange(token string, today time.Time) (Period, error) {
	today = truncateDay(today)

	if yearToken.MatchString(token) {
		year := 0
		for _, c := range token {
			year = year*10 + int(c-'0')
		}
		return Period{
			StartDate: time.Date(year, time.January, 1, 0, 0, 0, 0, today.Location()),
			EndDate:   time.Date(year, time.December, 31, 0, 0, 0, 0, today.Location()),
		}, nil
	}

	var start time.Time
	switch token {
	case Range1M:
		start = subMonths(today, 1)
	case Range3M:
		start = subMonths(today, 3)
	case Range6M:
		start = subMonths(today, 6)
	case Range1Y:
		start = subMonths(today, 12)
	case RangeMTD:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	case RangeYTD:
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	case RangeAll:
		start = time.Date(EpochFloor.Year(), EpochFloor.Month(), EpochFloor.Day(), 0, 0, 0, 0, today.Location())
	default:
		return Period{}, &apperrors.InvalidRangeError{Token: token}
	}

	return Period{StartDate: start, EndDate: today}, nil
}

// ParsePeriod builds a window from two ISO dates.
func ParsePeriod(startStr, endStr string) (Period, error) {
	start, err := time.Parse(DateLayout, startStr)
	if err != nil {
		return Period{}, &apperrors.ErrValidation{Field: "start_date", Message: "must be a YYYY-MM-DD date"}
	}
	end, err := time.Parse(DateLayout, endStr)
	if err != nil {
		return Period{}, &apperrors.ErrValidation{Field: "end_date", Message: "must be a YYYY-MM-DD date"}
	}
	if start.After(end) {
		return Period{}, &apperrors.ErrValidation{Field: "start_date", Message: "must not be after end_date"}
	}
	return Period{StartDate: start, EndDate: end}, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// subMonths steps back n calendar months, clamping to the last day of the
// target month (Mar 31 minus one month is Feb 28/29, not Mar 3).
func subMonths(t time.Time, n int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()-time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}
