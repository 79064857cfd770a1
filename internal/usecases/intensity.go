package usecases

import (
	"aura_journal/internal/models"
	"math"
)

// IntensityFromSentiment maps a sentiment score in [-1,1] onto the 1..5 scale.
// The raw formula reaches 6 at the top of the range, so the result is clamped.
func IntensityFromSentiment(score float64) int {
	raw := int(math.Round((score+1)*2.5 + 1))
	return ClampIntensity(raw)
}

func ClampIntensity(v int) int {
	return max(models.MinIntensity, min(models.MaxIntensity, v))
}

func validIntensity(v int) bool {
	return v >= models.MinIntensity && v <= models.MaxIntensity
}
