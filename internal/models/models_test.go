package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadgeValid(t *testing.T) {
	for _, b := range Badges {
		assert.True(t, b.Valid(), b)
	}
	assert.False(t, Badge("gold_star").Valid())
	assert.False(t, Badge("").Valid())
}

func TestMoodDataPointClone(t *testing.T) {
	notes, entry := "rainy", "e1"
	p := MoodDataPoint{ID: "p1", Mood: MoodSad, Notes: &notes, EntryID: &entry}

	c := p.Clone()
	*c.Notes = "sunny"
	*c.EntryID = "e2"
	assert.Equal(t, "rainy", *p.Notes)
	assert.Equal(t, "e1", *p.EntryID)

	assert.Nil(t, MoodDataPoint{}.Clone().Notes)
}

func TestMusicRecommendationClone(t *testing.T) {
	url := "https://open.spotify.com/track/x"
	m := MusicRecommendation{ID: "m1", SpotifyURL: &url}

	c := m.Clone()
	*c.SpotifyURL = "changed"
	assert.Equal(t, "https://open.spotify.com/track/x", *m.SpotifyURL)
	assert.Nil(t, c.YoutubeURL)
}
