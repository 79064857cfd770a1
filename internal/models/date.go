package models

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar-day form used for mood dates and streak tracking.
const DateLayout = "2006-01-02"

type DateRange struct {
	Start string `json:"startDate"`
	End   string `json:"endDate"`
}

func (r DateRange) Validate() error {
	start, err := ParseDate(r.Start)
	if err != nil {
		return err
	}
	end, err := ParseDate(r.End)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("range end %s is before start %s", r.End, r.Start)
	}
	return nil
}

// Contains compares on the ISO form, which sorts the same as the calendar.
func (r DateRange) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}

func DayOf(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b string) (int, error) {
	from, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	to, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	// both values are UTC midnights, so the hour count is an exact multiple of 24
	return int(to.Sub(from).Hours() / 24), nil
}

// AddDays shifts an ISO date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return DayOf(t.AddDate(0, 0, n)), nil
}
