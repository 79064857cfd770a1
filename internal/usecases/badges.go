package usecases

import "aura_journal/internal/models"

const (
	streakKeeperDays    = 7
	weekWarriorEntries  = 7
	monthMasterEntries  = 30
	firstEntryThreshold = 1
)

// EvaluateBadges returns every badge the given progress snapshot qualifies for.
// positivity, resilience, calm_mind and introspection_expert have no rule yet.
func EvaluateBadges(p models.ProgressRecord) []models.Badge {
	earned := []models.Badge{}
	if p.TotalEntries == firstEntryThreshold {
		earned = append(earned, models.BadgeFirstEntry)
	}
	if p.Streak >= streakKeeperDays {
		earned = append(earned, models.BadgeStreakKeeper)
	}
	if p.TotalEntries >= weekWarriorEntries {
		earned = append(earned, models.BadgeWeekWarrior)
	}
	if p.TotalEntries >= monthMasterEntries {
		earned = append(earned, models.BadgeMonthMaster)
	}
	return earned
}

// MergeBadges unions earned into held. Held badges keep their order and are never dropped.
func MergeBadges(held, earned []models.Badge) []models.Badge {
	out := make([]models.Badge, 0, len(held)+len(earned))
	seen := make(map[models.Badge]bool, len(held)+len(earned))
	for _, list := range [][]models.Badge{held, earned} {
		for _, b := range list {
			if seen[b] {
				continue
			}
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}
