package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodAnxious Mood = "anxious"
	MoodExcited Mood = "excited"
	MoodNeutral Mood = "neutral"
	MoodAngry   Mood = "angry"
	MoodCalm    Mood = "calm"
)

// Moods lists the closed mood enumeration in its canonical order.
var Moods = []Mood{MoodHappy, MoodSad, MoodAnxious, MoodExcited, MoodNeutral, MoodAngry, MoodCalm}

func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}

const (
	MinIntensity = 1
	MaxIntensity = 5
)

type MoodDataPoint struct {
	ID        string    `json:"id" db:"id"`
	Date      string    `json:"date" db:"date"`
	Mood      Mood      `json:"mood" db:"mood"`
	Intensity int       `json:"intensity" db:"intensity"`
	Notes     *string   `json:"notes" db:"notes"`
	EntryID   *string   `json:"entryId" db:"entry_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Clone returns a copy that shares no pointers with p.
func (p MoodDataPoint) Clone() MoodDataPoint {
	out := p
	if p.Notes != nil {
		v := *p.Notes
		out.Notes = &v
	}
	if p.EntryID != nil {
		v := *p.EntryID
		out.EntryID = &v
	}
	return out
}

// TrendPoint is a mood point reduced for charting.
type TrendPoint struct {
	Date      string `json:"date"`
	Intensity int    `json:"intensity"`
}

// SortNewestFirst orders points by creation time, newest first.
func SortNewestFirst(points []MoodDataPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].CreatedAt.After(points[j].CreatedAt)
	})
}
