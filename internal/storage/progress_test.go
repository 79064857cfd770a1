package storage

import (
	"aura_journal/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBadges(t *testing.T) {
	got, err := decodeBadges([]string{"first_entry", "week_warrior"})
	require.NoError(t, err)
	assert.Equal(t, []models.Badge{models.BadgeFirstEntry, models.BadgeWeekWarrior}, got)

	got, err = decodeBadges(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = decodeBadges([]string{"first_entry", "gold_star"})
	assert.ErrorContains(t, err, `unknown badge "gold_star"`)
}
