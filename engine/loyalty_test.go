package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-acaishop/models"
)

func TestPointsEarned(t *testing.T) {
	program := models.LoyaltyProgram{Enabled: true, PointsPerReal: 1, PointsForReward: 100}

	assert.Equal(t, 50, PointsEarned(50.00, program))
	assert.Equal(t, 37, PointsEarned(37.90, program))

	program.PointsPerReal = 0.5
	assert.Equal(t, 25, PointsEarned(50.00, program))
}

func TestPointsEarnedDisabledOrZeroRate(t *testing.T) {
	assert.Zero(t, PointsEarned(50, models.LoyaltyProgram{Enabled: false, PointsPerReal: 1}))
	assert.Zero(t, PointsEarned(50, models.LoyaltyProgram{Enabled: true, PointsPerReal: 0}))
}

func TestCanRedeem(t *testing.T) {
	program := models.LoyaltyProgram{Enabled: true, PointsPerReal: 1, PointsForReward: 100}

	assert.False(t, CanRedeem(program, 80))
	assert.True(t, CanRedeem(program, 100))
	assert.True(t, CanRedeem(program, 130))

	program.Enabled = false
	assert.False(t, CanRedeem(program, 130))
}
