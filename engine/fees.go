package engine

import (
	"go-acaishop/models"
)

// Fee settings types
const (
	DeliveryTypeFixed        = "fixed"
	DeliveryTypeNeighborhood = "neighborhood"
)

// ResolveDeliveryFee computes the delivery fee for an order. Pickup and
// counter sales are always free. An unmatched neighborhood resolves to
// 0 (the shop's standing "free delivery" default for unknown
// neighborhoods; pending product sign-off on whether it should reject
// instead).
func ResolveDeliveryFee(settings models.DeliverySettings, deliveryOption, neighborhood string) float64 {
	if deliveryOption != models.DeliveryOptionDelivery {
		return 0
	}
	if settings.Type == DeliveryTypeFixed {
		return settings.FixedFee
	}
	for _, hood := range settings.Neighborhoods {
		if hood.Name == neighborhood {
			return hood.Fee
		}
	}
	return 0
}
