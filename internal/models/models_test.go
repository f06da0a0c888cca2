package models_test

import (
	"testing"

	"setlist/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeRatings(t *testing.T) {
	// No ratings yields a zero average rather than dividing by zero
	summary := models.SummarizeRatings(nil)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0.0, summary.Avg)

	summary = models.SummarizeRatings([]models.Rating{{Rating: 3}, {Rating: 5}})
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 4.0, summary.Avg)

	summary = models.SummarizeRatings([]models.Rating{{Rating: 1}, {Rating: 2}})
	assert.Equal(t, 1.5, summary.Avg)
}

func TestParseRole(t *testing.T) {
	role, ok := models.ParseRole("")
	assert.True(t, ok)
	assert.Equal(t, models.RoleCommon, role)

	role, ok = models.ParseRole("artist")
	assert.True(t, ok)
	assert.Equal(t, models.RoleArtist, role)

	_, ok = models.ParseRole("superuser")
	assert.False(t, ok)
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, models.RoleAdmin.CanPublish())
	assert.True(t, models.RoleArtist.CanPublish())
	assert.False(t, models.RoleCommon.CanPublish())
	assert.False(t, models.Role("unknown").CanPublish())

	assert.True(t, models.RoleAdmin.IsAdmin())
	assert.False(t, models.RoleArtist.IsAdmin())
}
