package engine

import (
	"math"

	"go-acaishop/models"
)

// PointsEarned is the loyalty credit for a finalized order:
// floor(subtotal * points_per_real). Discounts never reduce points
// earned, so this takes the order's subtotal, not its total. Returns 0
// when the program is disabled or the rate is not positive.
func PointsEarned(subtotal float64, program models.LoyaltyProgram) int {
	if !program.Enabled || program.PointsPerReal <= 0 {
		return 0
	}
	return int(math.Floor(subtotal * program.PointsPerReal))
}

// CanRedeem reports whether a balance is sufficient to redeem the
// program's reward.
func CanRedeem(program models.LoyaltyProgram, balance int) bool {
	return program.Enabled && balance >= program.PointsForReward
}
