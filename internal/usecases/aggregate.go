package usecases

import (
	"aura_journal/internal/models"
	"math"
	"sort"
)

const weeklyWindow = 7

// MoodAggregator answers read-only questions over a snapshot of mood points.
type MoodAggregator struct {
	points []models.MoodDataPoint // newest first
}

func NewMoodAggregator(points []models.MoodDataPoint) *MoodAggregator {
	cloned := append([]models.MoodDataPoint(nil), points...)
	models.SortNewestFirst(cloned)
	return &MoodAggregator{points: cloned}
}

func (a *MoodAggregator) Len() int { return len(a.points) }

func (a *MoodAggregator) Distribution() map[models.Mood]int {
	counts := make(map[models.Mood]int)
	for _, p := range a.points {
		counts[p.Mood]++
	}
	return counts
}

// Trend returns points oldest-to-newest for charting. With a range, every point
// dated inside it is returned; otherwise the limit most recent ones (all when limit <= 0).
func (a *MoodAggregator) Trend(limit int, r *models.DateRange) []models.TrendPoint {
	var selected []models.MoodDataPoint

	if r != nil {
		for _, p := range a.points {
			if r.Contains(p.Date) {
				selected = append(selected, p)
			}
		}
		sort.SliceStable(selected, func(i, j int) bool {
			if selected[i].Date != selected[j].Date {
				return selected[i].Date < selected[j].Date
			}
			return selected[i].CreatedAt.Before(selected[j].CreatedAt)
		})
	} else {
		n := len(a.points)
		if limit > 0 && limit < n {
			n = limit
		}
		selected = make([]models.MoodDataPoint, 0, n)
		for i := n - 1; i >= 0; i-- {
			selected = append(selected, a.points[i])
		}
	}

	out := make([]models.TrendPoint, 0, len(selected))
	for _, p := range selected {
		out = append(out, models.TrendPoint{Date: p.Date, Intensity: p.Intensity})
	}
	return out
}

// WeeklyAverage is the mean intensity of the latest seven points, rounded to one
// decimal. ok is false when there are no points.
func (a *MoodAggregator) WeeklyAverage() (avg float64, ok bool) {
	if len(a.points) == 0 {
		return 0, false
	}
	n := min(weeklyWindow, len(a.points))
	sum := 0
	for _, p := range a.points[:n] {
		sum += p.Intensity
	}
	return roundTenth(float64(sum) / float64(n)), true
}

// AverageIntensity is the mean over every point. ok is false when there are none.
func (a *MoodAggregator) AverageIntensity() (avg float64, ok bool) {
	if len(a.points) == 0 {
		return 0, false
	}
	sum := 0
	for _, p := range a.points {
		sum += p.Intensity
	}
	return float64(sum) / float64(len(a.points)), true
}

// MostFrequentMood picks the label with the highest count, the lexicographically
// smallest label on ties, and neutral when there is no data.
func (a *MoodAggregator) MostFrequentMood() models.Mood {
	counts := a.Distribution()
	if len(counts) == 0 {
		return models.MoodNeutral
	}
	best := models.Mood("")
	bestCount := -1
	for mood, count := range counts {
		if count > bestCount || (count == bestCount && mood < best) {
			best, bestCount = mood, count
		}
	}
	return best
}

// EntriesInLastNDays counts points dated within [ref-n days, ref].
func (a *MoodAggregator) EntriesInLastNDays(n int, ref string) (int, error) {
	dates := make([]string, 0, len(a.points))
	for _, p := range a.points {
		dates = append(dates, p.Date)
	}
	return countInWindow(dates, n, ref)
}

func countInWindow(dates []string, n int, ref string) (int, error) {
	if n < 0 {
		return 0, NewInvalidError("window size must not be negative")
	}
	start, err := models.AddDays(ref, -n)
	if err != nil {
		return 0, NewInvalidError(err.Error())
	}
	window := models.DateRange{Start: start, End: ref}

	count := 0
	for _, d := range dates {
		if window.Contains(d) {
			count++
		}
	}
	return count, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
