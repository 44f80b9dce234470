package engine

import (
	"strings"

	"go-acaishop/models"
)

// Coupon / loyalty reward discount types
const (
	DiscountFixed        = "fixed"
	DiscountPercentage   = "percentage"
	DiscountFreeShipping = "free_shipping"
)

// Discounts holds the at-most-one active discount source of a checkout
// session: a coupon XOR a loyalty reward. Amounts are recomputed on
// demand from the current subtotal and delivery fee, never cached.
type Discounts struct {
	coupon              *models.Coupon
	loyaltyDiscount     float64
	loyaltyFreeShipping bool
}

// NewDiscounts returns a state with no active discount source.
func NewDiscounts() *Discounts {
	return &Discounts{}
}

// ApplyCoupon activates a coupon by code. The code is matched
// case-insensitively against the known coupons, rejected when the
// customer already redeemed it or the subtotal is below the coupon's
// minimum. Success clears any active loyalty reward.
func (d *Discounts) ApplyCoupon(code string, coupons []models.Coupon, usedCoupons []string, subtotal float64) error {
	var coupon *models.Coupon
	for i := range coupons {
		if strings.EqualFold(coupons[i].Code, code) {
			coupon = &coupons[i]
			break
		}
	}
	if coupon == nil {
		return ErrCouponInvalid
	}
	for _, used := range usedCoupons {
		if strings.EqualFold(used, coupon.Code) {
			return ErrCouponUsed
		}
	}
	if coupon.MinimumOrderValue > 0 && subtotal < coupon.MinimumOrderValue {
		return &MinimumOrderError{Minimum: coupon.MinimumOrderValue}
	}
	d.coupon = coupon
	d.loyaltyDiscount = 0
	d.loyaltyFreeShipping = false
	return nil
}

// RemoveCoupon clears the active coupon; removing an inactive coupon is
// a no-op.
func (d *Discounts) RemoveCoupon() {
	d.coupon = nil
}

// Coupon returns the active coupon, or nil.
func (d *Discounts) Coupon() *models.Coupon {
	return d.coupon
}

// ApplyLoyaltyReward activates the loyalty reward for a customer with
// the given point balance. Success clears any active coupon.
func (d *Discounts) ApplyLoyaltyReward(program models.LoyaltyProgram, points int) error {
	if !program.Enabled {
		return ErrLoyaltyDisabled
	}
	if points < program.PointsForReward {
		return ErrInsufficientPoints
	}
	d.coupon = nil
	if program.RewardType == DiscountFreeShipping {
		d.loyaltyDiscount = 0
		d.loyaltyFreeShipping = true
	} else {
		d.loyaltyDiscount = program.RewardValue
		d.loyaltyFreeShipping = false
	}
	return nil
}

// RemoveLoyaltyReward clears the active loyalty reward.
func (d *Discounts) RemoveLoyaltyReward() {
	d.loyaltyDiscount = 0
	d.loyaltyFreeShipping = false
}

// LoyaltyRewardActive reports whether a loyalty reward is applied.
func (d *Discounts) LoyaltyRewardActive() bool {
	return d.loyaltyDiscount > 0 || d.loyaltyFreeShipping
}

// DiscountAmount is the coupon's cut of the subtotal: min(value,
// subtotal) for fixed coupons, a percentage for percentage coupons, 0
// for free-shipping coupons and whenever the minimum order is not met.
func (d *Discounts) DiscountAmount(subtotal float64) float64 {
	coupon := d.coupon
	if coupon == nil || subtotal <= 0 {
		return 0
	}
	if coupon.MinimumOrderValue > 0 && subtotal < coupon.MinimumOrderValue {
		return 0
	}
	switch coupon.DiscountType {
	case DiscountFixed:
		if coupon.DiscountValue > subtotal {
			return subtotal
		}
		return coupon.DiscountValue
	case DiscountPercentage:
		return subtotal * coupon.DiscountValue / 100
	default:
		return 0
	}
}

// ShippingDiscountAmount equals the delivery fee while a free-shipping
// coupon is active and its minimum is met.
func (d *Discounts) ShippingDiscountAmount(subtotal, deliveryFee float64) float64 {
	coupon := d.coupon
	if coupon == nil || subtotal <= 0 || coupon.DiscountType != DiscountFreeShipping {
		return 0
	}
	if coupon.MinimumOrderValue > 0 && subtotal < coupon.MinimumOrderValue {
		return 0
	}
	return deliveryFee
}

// LoyaltyDiscountAmount is the fixed loyalty reward value, if active.
func (d *Discounts) LoyaltyDiscountAmount() float64 {
	return d.loyaltyDiscount
}

// LoyaltyShippingDiscountAmount equals the delivery fee while a
// free-shipping loyalty reward is active.
func (d *Discounts) LoyaltyShippingDiscountAmount(deliveryFee float64) float64 {
	if d.loyaltyFreeShipping {
		return deliveryFee
	}
	return 0
}

// Total is the payable amount, floored at zero:
// subtotal + fee - all discount components.
func (d *Discounts) Total(subtotal, deliveryFee float64) float64 {
	total := subtotal + deliveryFee -
		d.DiscountAmount(subtotal) -
		d.ShippingDiscountAmount(subtotal, deliveryFee) -
		d.LoyaltyDiscountAmount() -
		d.LoyaltyShippingDiscountAmount(deliveryFee)
	if total < 0 {
		return 0
	}
	return total
}
