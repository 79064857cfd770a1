package export

import (
	"aura_journal/internal/models"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
)

const productID = "-//aura_journal//mood calendar//EN"

// ErrEmptyCalendar is returned when no point produced an event. A VCALENDAR
// without components can not be encoded.
var ErrEmptyCalendar = errors.New("mood calendar has no events")

// MoodCalendar renders each mood point as a one-day event on the point's date.
// Points with an unparseable date are skipped.
func MoodCalendar(points []models.MoodDataPoint, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")

	for _, p := range points {
		day, err := models.ParseDate(p.Date)
		if err != nil {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, p.ID+"@aura_journal")
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		event.Props.SetDate(ical.PropDateTimeStart, day)
		event.Props.SetDate(ical.PropDateTimeEnd, day.AddDate(0, 0, 1))
		event.Props.SetText(ical.PropSummary, fmt.Sprintf("Mood: %s (%d/5)", p.Mood, p.Intensity))
		if p.Notes != nil && *p.Notes != "" {
			event.Props.SetText(ical.PropDescription, *p.Notes)
		}

		cal.Children = append(cal.Children, event.Component)
	}
	return cal
}

func WriteMoodCalendar(w io.Writer, points []models.MoodDataPoint, stamp time.Time) error {
	cal := MoodCalendar(points, stamp)
	if len(cal.Children) == 0 {
		return ErrEmptyCalendar
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode mood calendar: %w", err)
	}
	return nil
}
