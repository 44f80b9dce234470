package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-acaishop/models"
)

func TestResolveDeliveryFeeNeighborhood(t *testing.T) {
	settings := models.DeliverySettings{
		Type: DeliveryTypeNeighborhood,
		Neighborhoods: []models.NeighborhoodFee{
			{Name: "Centro", Fee: 3.00},
			{Name: "BairroX", Fee: 7.00},
		},
	}

	assert.InDelta(t, 7.00, ResolveDeliveryFee(settings, models.DeliveryOptionDelivery, "BairroX"), 1e-9)
	assert.InDelta(t, 3.00, ResolveDeliveryFee(settings, models.DeliveryOptionDelivery, "Centro"), 1e-9)
	// unmatched neighborhoods default to free delivery
	assert.Zero(t, ResolveDeliveryFee(settings, models.DeliveryOptionDelivery, "BairroDesconhecido"))
}

func TestResolveDeliveryFeeFixed(t *testing.T) {
	settings := models.DeliverySettings{Type: DeliveryTypeFixed, FixedFee: 5.00}
	assert.InDelta(t, 5.00, ResolveDeliveryFee(settings, models.DeliveryOptionDelivery, ""), 1e-9)
}

func TestResolveDeliveryFeePickupAndCounter(t *testing.T) {
	settings := models.DeliverySettings{Type: DeliveryTypeFixed, FixedFee: 5.00}
	assert.Zero(t, ResolveDeliveryFee(settings, models.DeliveryOptionPickup, ""))
	assert.Zero(t, ResolveDeliveryFee(settings, models.DeliveryOptionCounter, ""))
}
