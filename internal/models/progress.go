package models

import (
	"time"
)

type Badge string

const (
	BadgeFirstEntry          Badge = "first_entry"
	BadgeStreakKeeper        Badge = "streak_keeper"
	BadgePositivity          Badge = "positivity"
	BadgeResilience          Badge = "resilience"
	BadgeCalmMind            Badge = "calm_mind"
	BadgeWeekWarrior         Badge = "week_warrior"
	BadgeMonthMaster         Badge = "month_master"
	BadgeIntrospectionExpert Badge = "introspection_expert"
)

var Badges = []Badge{
	BadgeFirstEntry,
	BadgeStreakKeeper,
	BadgePositivity,
	BadgeResilience,
	BadgeCalmMind,
	BadgeWeekWarrior,
	BadgeMonthMaster,
	BadgeIntrospectionExpert,
}

func (b Badge) Valid() bool {
	for _, known := range Badges {
		if b == known {
			return true
		}
	}
	return false
}

// ProgressRecord is the single progress row of the implicit user.
type ProgressRecord struct {
	ID            string    `json:"id" db:"id"`
	Streak        int       `json:"streak" db:"streak"`
	TotalEntries  int       `json:"totalEntries" db:"total_entries"`
	Badges        []Badge   `json:"badges" db:"badges"`
	AuraLevel     int       `json:"auraLevel" db:"aura_level"`
	LastEntryDate *string   `json:"lastEntryDate" db:"last_entry_date"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

func NewProgressRecord(id string, now time.Time) ProgressRecord {
	return ProgressRecord{
		ID:        id,
		Badges:    []Badge{},
		AuraLevel: 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p ProgressRecord) HasBadge(b Badge) bool {
	for _, held := range p.Badges {
		if held == b {
			return true
		}
	}
	return false
}

func (p ProgressRecord) Clone() ProgressRecord {
	out := p
	out.Badges = append([]Badge{}, p.Badges...)
	if p.LastEntryDate != nil {
		d := *p.LastEntryDate
		out.LastEntryDate = &d
	}
	return out
}
