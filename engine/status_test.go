package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-acaishop/models"
)

func strptr(s string) *string { return &s }

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, models.StatusScheduled, InitialStatus("19:30"))
	assert.Equal(t, models.StatusReceived, InitialStatus(""))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(models.StatusPreparing))
	assert.True(t, IsValidStatus(models.StatusPaidDelivered))
	assert.False(t, IsValidStatus("Em Transito"))
	assert.False(t, IsValidStatus(""))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusDelivered))
	assert.True(t, IsTerminal(models.StatusPaidDelivered))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.False(t, IsTerminal(models.StatusOutForDelivery))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.StatusReceived, models.StatusPreparing))
	// the kanban is not a forced lane: moving backwards is allowed
	assert.True(t, CanTransition(models.StatusAwaitingPickup, models.StatusPreparing))
	assert.True(t, CanTransition(models.StatusOutForDelivery, models.StatusCancelled))

	assert.False(t, CanTransition(models.StatusDelivered, models.StatusPreparing))
	assert.False(t, CanTransition(models.StatusCancelled, models.StatusReceived))
	assert.False(t, CanTransition(models.StatusReceived, "Qualquer Coisa"))
}

func TestIsBroadcastVisible(t *testing.T) {
	order := models.Order{
		Status:                models.StatusPreparing,
		DeliveryOption:        models.DeliveryOptionDelivery,
		IsDeliveryBroadcasted: true,
	}
	assert.True(t, IsBroadcastVisible(order))

	assigned := order
	assigned.AssignedDriverID = strptr("d1")
	assert.False(t, IsBroadcastVisible(assigned))

	pickup := order
	pickup.DeliveryOption = models.DeliveryOptionPickup
	assert.False(t, IsBroadcastVisible(pickup))

	notBroadcasted := order
	notBroadcasted.IsDeliveryBroadcasted = false
	assert.False(t, IsBroadcastVisible(notBroadcasted))

	received := order
	received.Status = models.StatusReceived
	assert.False(t, IsBroadcastVisible(received))
}

func TestIsVisibleToDriver(t *testing.T) {
	broadcast := models.Order{
		Status:                models.StatusAwaitingPickup,
		DeliveryOption:        models.DeliveryOptionDelivery,
		IsDeliveryBroadcasted: true,
	}
	assert.True(t, IsVisibleToDriver(broadcast, "d1"))
	assert.True(t, IsVisibleToDriver(broadcast, "d2"))

	mine := models.Order{
		Status:           models.StatusOutForDelivery,
		DeliveryOption:   models.DeliveryOptionDelivery,
		AssignedDriverID: strptr("d1"),
	}
	assert.True(t, IsVisibleToDriver(mine, "d1"))
	assert.False(t, IsVisibleToDriver(mine, "d2"))

	done := mine
	done.Status = models.StatusDelivered
	assert.False(t, IsVisibleToDriver(done, "d1"))
}

func TestQueuePriority(t *testing.T) {
	delivery := models.DeliveryOptionDelivery

	assert.Equal(t, 4, QueuePriority(models.Order{Status: models.StatusAwaitingPickup, DeliveryOption: delivery}))
	assert.Equal(t, 3, QueuePriority(models.Order{Status: models.StatusPreparing, DeliveryOption: delivery}))
	assert.Equal(t, 2, QueuePriority(models.Order{Status: models.StatusOutForDelivery, DeliveryOption: delivery, AssignedDriverID: strptr("d1")}))
	assert.Equal(t, 1, QueuePriority(models.Order{Status: models.StatusPreparing, DeliveryOption: delivery, AssignedDriverID: strptr("d1")}))
	assert.Equal(t, 0, QueuePriority(models.Order{Status: models.StatusReceived, DeliveryOption: delivery}))
}

func TestSortDriverQueue(t *testing.T) {
	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	delivery := models.DeliveryOptionDelivery

	orders := []models.Order{
		{CustomerName: "assigned-preparing", Status: models.StatusPreparing, DeliveryOption: delivery, AssignedDriverID: strptr("d1"), Date: base},
		{CustomerName: "pickup-late", Status: models.StatusAwaitingPickup, DeliveryOption: delivery, Date: base.Add(10 * time.Minute)},
		{CustomerName: "on-the-road", Status: models.StatusOutForDelivery, DeliveryOption: delivery, AssignedDriverID: strptr("d1"), Date: base},
		{CustomerName: "pickup-early", Status: models.StatusAwaitingPickup, DeliveryOption: delivery, Date: base},
		{CustomerName: "unassigned-preparing", Status: models.StatusPreparing, DeliveryOption: delivery, Date: base},
	}
	SortDriverQueue(orders)

	var names []string
	for _, o := range orders {
		names = append(names, o.CustomerName)
	}
	assert.Equal(t, []string{
		"pickup-early",
		"pickup-late",
		"unassigned-preparing",
		"on-the-road",
		"assigned-preparing",
	}, names)
}
