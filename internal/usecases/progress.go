package usecases

import (
	"aura_journal/internal/models"
	"fmt"
	"time"
)

// AdvanceProgress applies one new journal entry written on the calendar day today.
//
// totalEntries always grows by one. The streak only moves on the first entry of a
// day: it grows when the previous entry day was yesterday and restarts at 1 after
// any other gap. Badges earned by the new state are added, never removed.
func AdvanceProgress(p models.ProgressRecord, today string, now time.Time) (models.ProgressRecord, error) {
	if _, err := models.ParseDate(today); err != nil {
		return p, NewInvalidError(fmt.Sprintf("invalid entry date: %v", err))
	}

	next := p.Clone()
	isNewDay := next.LastEntryDate == nil || *next.LastEntryDate != today

	next.TotalEntries++

	if isNewDay {
		if next.LastEntryDate != nil && isConsecutiveDay(*next.LastEntryDate, today) {
			next.Streak++
		} else {
			next.Streak = 1
		}
		day := today
		next.LastEntryDate = &day
	}

	next.Badges = MergeBadges(next.Badges, EvaluateBadges(next))
	next.UpdatedAt = now

	return next, nil
}

func isConsecutiveDay(last, current string) bool {
	gap, err := models.DaysBetween(last, current)
	if err != nil {
		return false
	}
	return gap == 1
}
