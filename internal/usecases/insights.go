package usecases

import (
	"aura_journal/internal/models"
	"fmt"
	"sort"
)

var DefaultOnboardingInsights = []string{
	"Start journaling regularly to unlock personalized insights!",
	"Your emotional journey begins with your first entry.",
	"AI insights will become more accurate as you write more.",
}

var DefaultEncouragements = []string{
	"Your mood improves with consistent journaling",
	"Your most positive entries mention personal achievements",
}

// InsightSynthesizer turns mood history into short analytics sentences:
// a data-driven part followed by the configured encouragement lines.
type InsightSynthesizer struct {
	Onboarding     []string
	Encouragements []string
}

func NewInsightSynthesizer(onboarding, encouragements []string) *InsightSynthesizer {
	if len(onboarding) == 0 {
		onboarding = DefaultOnboardingInsights
	}
	if encouragements == nil {
		encouragements = DefaultEncouragements
	}
	return &InsightSynthesizer{
		Onboarding:     append([]string(nil), onboarding...),
		Encouragements: append([]string(nil), encouragements...),
	}
}

func (s *InsightSynthesizer) Synthesize(points []models.MoodDataPoint, entries []models.JournalEntry) []string {
	if len(points) == 0 {
		return append([]string{}, s.Onboarding...)
	}

	agg := NewMoodAggregator(points)
	insights := make([]string, 0, 4+len(s.Encouragements))

	if day, ok := MostChallengingDay(points); ok {
		insights = append(insights, fmt.Sprintf("Most challenging day: %s", day))
	}

	avg, _ := agg.AverageIntensity()
	insights = append(insights, fmt.Sprintf("Average mood intensity: %.1f/5", avg))

	mood := agg.MostFrequentMood()
	insights = append(insights, fmt.Sprintf("Most frequent mood: %s (%d of %d check-ins)", mood, agg.Distribution()[mood], agg.Len()))

	if classified := countClassified(entries); classified > 0 {
		insights = append(insights, fmt.Sprintf("%d%% of your analyzed entries were positive", PositivePercentage(entries)))
	}

	return append(insights, s.Encouragements...)
}

// MostChallengingDay returns the weekday with the lowest mean intensity.
// Ties go to the alphabetically first weekday name; undated points are ignored.
func MostChallengingDay(points []models.MoodDataPoint) (string, bool) {
	byDay := make(map[string][]int)
	for _, p := range points {
		t, err := models.ParseDate(p.Date)
		if err != nil {
			continue
		}
		day := t.Weekday().String()
		byDay[day] = append(byDay[day], p.Intensity)
	}
	if len(byDay) == 0 {
		return "", false
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	best := ""
	bestAvg := 0.0
	for _, d := range days {
		avg := mean(byDay[d])
		if best == "" || avg < bestAvg {
			best, bestAvg = d, avg
		}
	}
	return best, true
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
