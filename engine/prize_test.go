package engine

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-acaishop/models"
)

func TestSelectPrize(t *testing.T) {
	prizes := []models.WheelPrize{
		{Label: "10% off", DiscountType: DiscountPercentage, DiscountValue: 10},
		{Label: "R$5 off", DiscountType: DiscountFixed, DiscountValue: 5},
		{Label: "Frete grátis", DiscountType: DiscountFreeShipping},
	}

	rng := rand.New(rand.NewSource(1))
	counts := map[string]int{}
	for i := 0; i < 300; i++ {
		prize, ok := SelectPrize(prizes, rng)
		require.True(t, ok)
		counts[prize.Label]++
	}
	// every segment can win
	assert.Len(t, counts, 3)
}

func TestSelectPrizeEmpty(t *testing.T) {
	_, ok := SelectPrize(nil, rand.New(rand.NewSource(1)))
	assert.False(t, ok)
}

func TestPrizeCoupon(t *testing.T) {
	prize := models.WheelPrize{Label: "R$5 off", DiscountType: DiscountFixed, DiscountValue: 5}

	coupon := PrizeCoupon(prize)
	assert.True(t, strings.HasPrefix(coupon.Code, "ROLETA-"))
	assert.Equal(t, DiscountFixed, coupon.DiscountType)
	assert.InDelta(t, 5.00, coupon.DiscountValue, 1e-9)
	assert.Equal(t, "R$5 off", coupon.Description)

	// codes must not collide between spins
	assert.NotEqual(t, coupon.Code, PrizeCoupon(prize).Code)
}

func TestPrizeCouponFlowsThroughDiscounts(t *testing.T) {
	coupon := PrizeCoupon(models.WheelPrize{Label: "R$5 off", DiscountType: DiscountFixed, DiscountValue: 5})

	d := NewDiscounts()
	require.NoError(t, d.ApplyCoupon(coupon.Code, []models.Coupon{coupon}, nil, 30))
	assert.InDelta(t, 25.00, d.Total(30, 0), 1e-9)

	// once spent, the code lands in the used set and is rejected
	err := d.ApplyCoupon(coupon.Code, []models.Coupon{coupon}, []string{coupon.Code}, 30)
	assert.ErrorIs(t, err, ErrCouponUsed)
}
