package usecases

import (
	"aura_journal/internal/models"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_OnboardingWithoutData(t *testing.T) {
	got := NewInsightSynthesizer(nil, nil).Synthesize(nil, nil)
	want := []string{
		"Start journaling regularly to unlock personalized insights!",
		"Your emotional journey begins with your first entry.",
		"AI insights will become more accurate as you write more.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Synthesize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesize_WithData(t *testing.T) {
	points := []models.MoodDataPoint{
		point("2024-03-11", models.MoodSad, 2, 1),   // Monday
		point("2024-03-12", models.MoodHappy, 4, 2), // Tuesday
		point("2024-03-18", models.MoodSad, 2, 3),   // Monday
	}
	pos, neg := 0.6, -0.4
	entries := []models.JournalEntry{
		{ID: "a", SentimentScore: &pos, AIInsights: &models.AIInsights{}},
		{ID: "b", SentimentScore: &neg, AIInsights: &models.AIInsights{}},
		{ID: "c"},
	}

	got := NewInsightSynthesizer(nil, []string{"Keep going"}).Synthesize(points, entries)
	want := []string{
		"Most challenging day: Monday",
		"Average mood intensity: 2.7/5",
		"Most frequent mood: sad (2 of 3 check-ins)",
		"50% of your analyzed entries were positive",
		"Keep going",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Synthesize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesize_DefaultEncouragementsAndNoClassifiedEntries(t *testing.T) {
	points := []models.MoodDataPoint{point("2024-03-15", models.MoodCalm, 3, 1)}

	got := NewInsightSynthesizer(nil, nil).Synthesize(points, []models.JournalEntry{{ID: "x"}})
	require.Len(t, got, 3+len(DefaultEncouragements))
	assert.Equal(t, DefaultEncouragements, got[3:])
	for _, line := range got {
		assert.NotContains(t, line, "analyzed entries")
	}

	got = NewInsightSynthesizer(nil, []string{}).Synthesize(points, nil)
	assert.Len(t, got, 3)
}

func TestMostChallengingDay_TieGoesToFirstName(t *testing.T) {
	points := []models.MoodDataPoint{
		point("2024-03-11", models.MoodSad, 2, 1), // Monday
		point("2024-03-15", models.MoodSad, 2, 2), // Friday
		point("2024-03-13", models.MoodHappy, 5, 3),
	}
	day, ok := MostChallengingDay(points)
	require.True(t, ok)
	assert.Equal(t, "Friday", day)

	_, ok = MostChallengingDay(nil)
	assert.False(t, ok)
}
