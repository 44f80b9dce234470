package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-acaishop/models"
)

func testCoupons() []models.Coupon {
	return []models.Coupon{
		{Code: "DESCONTO10", DiscountType: DiscountFixed, DiscountValue: 10, MinimumOrderValue: 20},
		{Code: "METADE", DiscountType: DiscountPercentage, DiscountValue: 50},
		{Code: "FRETEGRATIS", DiscountType: DiscountFreeShipping, MinimumOrderValue: 30},
	}
}

func TestApplyCouponFixed(t *testing.T) {
	d := NewDiscounts()
	require.NoError(t, d.ApplyCoupon("DESCONTO10", testCoupons(), nil, 50))

	assert.InDelta(t, 10.00, d.DiscountAmount(50), 1e-9)
	assert.InDelta(t, 45.00, d.Total(50, 5), 1e-9)
}

func TestApplyCouponCaseInsensitive(t *testing.T) {
	d := NewDiscounts()
	require.NoError(t, d.ApplyCoupon("desconto10", testCoupons(), nil, 50))
	assert.Equal(t, "DESCONTO10", d.Coupon().Code)
}

func TestApplyCouponBelowMinimum(t *testing.T) {
	d := NewDiscounts()
	err := d.ApplyCoupon("DESCONTO10", testCoupons(), nil, 15)

	var minErr *MinimumOrderError
	require.ErrorAs(t, err, &minErr)
	assert.InDelta(t, 20.00, minErr.Minimum, 1e-9)
	assert.Nil(t, d.Coupon())
}

func TestApplyCouponUnknown(t *testing.T) {
	d := NewDiscounts()
	err := d.ApplyCoupon("NAOEXISTE", testCoupons(), nil, 50)
	assert.True(t, errors.Is(err, ErrCouponInvalid))
}

func TestApplyCouponAlreadyUsed(t *testing.T) {
	d := NewDiscounts()
	err := d.ApplyCoupon("DESCONTO10", testCoupons(), []string{"desconto10"}, 50)
	assert.True(t, errors.Is(err, ErrCouponUsed))
}

func TestApplyCouponPercentage(t *testing.T) {
	d := NewDiscounts()
	require.NoError(t, d.ApplyCoupon("METADE", testCoupons(), nil, 40))
	assert.InDelta(t, 20.00, d.DiscountAmount(40), 1e-9)
}

func TestApplyCouponFreeShipping(t *testing.T) {
	d := NewDiscounts()
	require.NoError(t, d.ApplyCoupon("FRETEGRATIS", testCoupons(), nil, 50))

	assert.Zero(t, d.DiscountAmount(50))
	assert.InDelta(t, 8.00, d.ShippingDiscountAmount(50, 8), 1e-9)
	assert.InDelta(t, 50.00, d.Total(50, 8), 1e-9)
}

func TestFixedCouponCappedAtSubtotal(t *testing.T) {
	coupons := []models.Coupon{{Code: "GIGANTE", DiscountType: DiscountFixed, DiscountValue: 100}}
	d := NewDiscounts()
	require.NoError(t, d.ApplyCoupon("GIGANTE", coupons, nil, 25))

	assert.InDelta(t, 25.00, d.DiscountAmount(25), 1e-9)
	assert.InDelta(t, 5.00, d.Total(25, 5), 1e-9)
}

func TestRemoveCouponIdempotent(t *testing.T) {
	d := NewDiscounts()
	d.RemoveCoupon()
	assert.Nil(t, d.Coupon())

	require.NoError(t, d.ApplyCoupon("DESCONTO10", testCoupons(), nil, 50))
	d.RemoveCoupon()
	d.RemoveCoupon()
	assert.Nil(t, d.Coupon())
	assert.Zero(t, d.DiscountAmount(50))
}

func TestCouponAndLoyaltyMutuallyExclusive(t *testing.T) {
	program := models.LoyaltyProgram{
		Enabled: true, PointsPerReal: 1, PointsForReward: 100,
		RewardType: DiscountFixed, RewardValue: 15,
	}

	d := NewDiscounts()
	require.NoError(t, d.ApplyCoupon("DESCONTO10", testCoupons(), nil, 50))
	require.NoError(t, d.ApplyLoyaltyReward(program, 120))
	assert.Nil(t, d.Coupon())
	assert.True(t, d.LoyaltyRewardActive())

	require.NoError(t, d.ApplyCoupon("DESCONTO10", testCoupons(), nil, 50))
	assert.NotNil(t, d.Coupon())
	assert.False(t, d.LoyaltyRewardActive())
}

func TestApplyLoyaltyReward(t *testing.T) {
	program := models.LoyaltyProgram{
		Enabled: true, PointsPerReal: 1, PointsForReward: 100,
		RewardType: DiscountFixed, RewardValue: 15,
	}

	d := NewDiscounts()
	require.NoError(t, d.ApplyLoyaltyReward(program, 100))
	assert.InDelta(t, 15.00, d.LoyaltyDiscountAmount(), 1e-9)
	assert.InDelta(t, 40.00, d.Total(50, 5), 1e-9)

	d.RemoveLoyaltyReward()
	assert.False(t, d.LoyaltyRewardActive())
}

func TestApplyLoyaltyRewardFreeShipping(t *testing.T) {
	program := models.LoyaltyProgram{
		Enabled: true, PointsPerReal: 1, PointsForReward: 100,
		RewardType: DiscountFreeShipping,
	}

	d := NewDiscounts()
	require.NoError(t, d.ApplyLoyaltyReward(program, 150))
	assert.InDelta(t, 7.00, d.LoyaltyShippingDiscountAmount(7), 1e-9)
	assert.InDelta(t, 50.00, d.Total(50, 7), 1e-9)
}

func TestApplyLoyaltyRewardRejections(t *testing.T) {
	d := NewDiscounts()

	err := d.ApplyLoyaltyReward(models.LoyaltyProgram{Enabled: false}, 500)
	assert.True(t, errors.Is(err, ErrLoyaltyDisabled))

	program := models.LoyaltyProgram{Enabled: true, PointsForReward: 100, RewardType: DiscountFixed, RewardValue: 15}
	err = d.ApplyLoyaltyReward(program, 80)
	assert.True(t, errors.Is(err, ErrInsufficientPoints))
	assert.False(t, d.LoyaltyRewardActive())
}

func TestTotalNeverNegative(t *testing.T) {
	program := models.LoyaltyProgram{
		Enabled: true, PointsPerReal: 1, PointsForReward: 100,
		RewardType: DiscountFixed, RewardValue: 40,
	}

	d := NewDiscounts()
	require.NoError(t, d.ApplyLoyaltyReward(program, 100))
	assert.Zero(t, d.Total(10, 0))
}
