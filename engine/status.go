package engine

import (
	"sort"

	"go-acaishop/models"
)

var allStatuses = []string{
	models.StatusScheduled,
	models.StatusReceived,
	models.StatusPreparing,
	models.StatusAwaitingPickup,
	models.StatusOutForDelivery,
	models.StatusDelivered,
	models.StatusPaidDelivered,
	models.StatusCancelled,
}

// IsValidStatus reports whether s names a known order status.
func IsValidStatus(s string) bool {
	for _, status := range allStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// InitialStatus is the status an order is created with: Agendado when
// it carries a scheduled time slot, Recebido otherwise.
func InitialStatus(scheduledTime string) string {
	if scheduledTime != "" {
		return models.StatusScheduled
	}
	return models.StatusReceived
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status string) bool {
	switch status {
	case models.StatusDelivered, models.StatusPaidDelivered, models.StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an operator may move an order from one
// status to another. Active statuses are not forced into a linear
// order (the kanban presents one, the engine does not enforce it);
// terminal statuses admit nothing, and Cancelado is reachable from any
// non-terminal status.
func CanTransition(from, to string) bool {
	if !IsValidStatus(to) {
		return false
	}
	if IsTerminal(from) {
		return false
	}
	return true
}

// IsBroadcastVisible reports whether an order sits in the unassigned
// pool every approved driver sees.
func IsBroadcastVisible(o models.Order) bool {
	return o.IsDeliveryBroadcasted &&
		o.AssignedDriverID == nil &&
		o.DeliveryOption == models.DeliveryOptionDelivery &&
		(o.Status == models.StatusPreparing || o.Status == models.StatusAwaitingPickup)
}

// IsVisibleToDriver reports whether an order shows up in the given
// driver's queue: either unassigned and broadcasted, or assigned to
// this driver and still in flight.
func IsVisibleToDriver(o models.Order, driverID string) bool {
	if o.DeliveryOption != models.DeliveryOptionDelivery {
		return false
	}
	if IsBroadcastVisible(o) {
		return true
	}
	if o.AssignedDriverID == nil || *o.AssignedDriverID != driverID {
		return false
	}
	switch o.Status {
	case models.StatusPreparing, models.StatusAwaitingPickup, models.StatusOutForDelivery:
		return true
	}
	return false
}

// QueuePriority ranks an order in a driver's queue. Higher ranks sort
// first: orders waiting for pickup, then unassigned ones still in
// preparation, then deliveries on the road, then assigned orders in
// preparation.
func QueuePriority(o models.Order) int {
	switch {
	case o.Status == models.StatusAwaitingPickup:
		return 4
	case o.Status == models.StatusPreparing && o.AssignedDriverID == nil:
		return 3
	case o.Status == models.StatusOutForDelivery:
		return 2
	case o.Status == models.StatusPreparing:
		return 1
	}
	return 0
}

// SortDriverQueue orders a driver's view by descending priority rank,
// ties broken by ascending order date.
func SortDriverQueue(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		pi, pj := QueuePriority(orders[i]), QueuePriority(orders[j])
		if pi != pj {
			return pi > pj
		}
		return orders[i].Date.Before(orders[j].Date)
	})
}
