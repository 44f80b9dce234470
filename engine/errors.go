package engine

import (
	"errors"
	"fmt"
)

// Validation errors: recoverable locally, nothing mutated.
var (
	ErrCouponInvalid = errors.New("invalid coupon code")
	ErrCouponUsed    = errors.New("coupon already used")
	ErrEmptyCart     = errors.New("cart is empty")
)

// Eligibility errors: the actor must retry with different input or
// refresh state.
var (
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
	ErrLoyaltyDisabled    = errors.New("loyalty program is disabled")
	ErrAlreadyClaimed     = errors.New("order already claimed by another driver")
	ErrDriverNotApproved  = errors.New("driver is not approved")
)

// MinimumOrderError reports a coupon rejected because the subtotal is
// below the coupon's minimum order value.
type MinimumOrderError struct {
	Minimum float64
}

func (e *MinimumOrderError) Error() string {
	return fmt.Sprintf("minimum order of %.2f not met", e.Minimum)
}

// SelectionError reports an invalid addon selection for one category.
type SelectionError struct {
	Category string
	Min      int
	Max      int
	Count    int
}

func (e *SelectionError) Error() string {
	if e.Min > 0 && e.Count < e.Min {
		return fmt.Sprintf("category %q requires at least %d selection(s)", e.Category, e.Min)
	}
	return fmt.Sprintf("category %q allows at most %d selection(s)", e.Category, e.Max)
}

// UnavailableAddonError reports a selection naming an addon that does
// not exist or is currently unavailable.
type UnavailableAddonError struct {
	AddonID string
}

func (e *UnavailableAddonError) Error() string {
	return fmt.Sprintf("addon %q is not available", e.AddonID)
}

// MaxReachedError signals a toggle-on attempt when the category is
// already at its maximum.
type MaxReachedError struct {
	Category string
	Max      int
}

func (e *MaxReachedError) Error() string {
	return fmt.Sprintf("maximum of %d reached for category %q", e.Max, e.Category)
}
