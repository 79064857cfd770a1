package usecases

import (
	"aura_journal/internal/models"
	"math"
)

// positiveThreshold is the sentiment score above which an entry counts as positive.
const positiveThreshold = 0.1

type Stats struct {
	MostFrequentMood   models.Mood         `json:"mostFrequentMood"`
	PositivePercentage int                 `json:"positivePercentage"`
	EntriesThisWeek    int                 `json:"entriesThisWeek"`
	TotalEntries       int                 `json:"totalEntries"`
	MoodDistribution   map[models.Mood]int `json:"moodDistribution"`
	WeeklyAverage      *float64            `json:"weeklyAverage"`
}

// PositivePercentage is round(100 * positive / classified), 0 without classified entries.
func PositivePercentage(entries []models.JournalEntry) int {
	classified := 0
	positive := 0
	for _, e := range entries {
		if e.SentimentScore == nil {
			continue
		}
		classified++
		if *e.SentimentScore > positiveThreshold {
			positive++
		}
	}
	if classified == 0 {
		return 0
	}
	return int(math.Round(100 * float64(positive) / float64(classified)))
}

func countClassified(entries []models.JournalEntry) int {
	n := 0
	for _, e := range entries {
		if e.Classified() {
			n++
		}
	}
	return n
}

func buildStats(points []models.MoodDataPoint, entries []models.JournalEntry, entryDays []string, today string) (Stats, error) {
	agg := NewMoodAggregator(points)

	thisWeek, err := countInWindow(entryDays, weeklyWindow, today)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		MostFrequentMood:   agg.MostFrequentMood(),
		PositivePercentage: PositivePercentage(entries),
		EntriesThisWeek:    thisWeek,
		TotalEntries:       len(entries),
		MoodDistribution:   agg.Distribution(),
	}
	if avg, ok := agg.WeeklyAverage(); ok {
		stats.WeeklyAverage = &avg
	}
	return stats, nil
}
