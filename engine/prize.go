package engine

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"go-acaishop/models"
)

// SelectPrize picks one wheel segment uniformly at random. The rand
// source is injected so spins are reproducible in tests. Returns false
// when no prizes are configured.
func SelectPrize(prizes []models.WheelPrize, rng *rand.Rand) (models.WheelPrize, bool) {
	if len(prizes) == 0 {
		return models.WheelPrize{}, false
	}
	return prizes[rng.Intn(len(prizes))], true
}

// PrizeCoupon turns a won prize into a short-lived single-use coupon
// that flows through the discount engine like any other coupon. The
// generated code lands in the customer's used set on redemption, so it
// cannot be spent twice.
func PrizeCoupon(prize models.WheelPrize) models.Coupon {
	code := "ROLETA-" + strings.ToUpper(uuid.NewString()[:8])
	return models.Coupon{
		Code:          code,
		Description:   prize.Label,
		DiscountType:  prize.DiscountType,
		DiscountValue: prize.DiscountValue,
	}
}
