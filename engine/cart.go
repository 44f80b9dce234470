package engine

import (
	"go-acaishop/models"
)

// Cart aggregates the line items of a single checkout session. All
// operations are synchronous and touch only the cart's own state; the
// cart lives for one checkout and is discarded afterwards.
type Cart struct {
	items []models.CartItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddItem appends a priced line item. The line total is
// (size price + sum of addon prices) * quantity.
func (c *Cart) AddItem(productID, productName string, size models.ProductSize, addons []models.Addon, quantity int, notes string) {
	if quantity < 1 {
		quantity = 1
	}
	unitPrice := size.Price
	for _, addon := range addons {
		unitPrice += addon.Price
	}
	c.items = append(c.items, models.CartItem{
		ProductID:   productID,
		ProductName: productName,
		Size:        size,
		Addons:      addons,
		Quantity:    quantity,
		TotalPrice:  unitPrice * float64(quantity),
		Notes:       notes,
	})
}

// RemoveItem drops the item at the given position; out-of-range
// positions are ignored.
func (c *Cart) RemoveItem(index int) {
	if index < 0 || index >= len(c.items) {
		return
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
}

// IncrementItem raises the item's quantity by one, re-scaling its total
// from the unit price.
func (c *Cart) IncrementItem(index int) {
	if index < 0 || index >= len(c.items) {
		return
	}
	item := &c.items[index]
	unitPrice := item.TotalPrice / float64(item.Quantity)
	item.Quantity++
	item.TotalPrice = unitPrice * float64(item.Quantity)
}

// DecrementItem lowers the item's quantity by one, flooring at 1.
func (c *Cart) DecrementItem(index int) {
	if index < 0 || index >= len(c.items) {
		return
	}
	item := &c.items[index]
	if item.Quantity <= 1 {
		return
	}
	unitPrice := item.TotalPrice / float64(item.Quantity)
	item.Quantity--
	item.TotalPrice = unitPrice * float64(item.Quantity)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns the cart's line items.
func (c *Cart) Items() []models.CartItem {
	return c.items
}

// Subtotal sums all line totals.
func (c *Cart) Subtotal() float64 {
	subtotal := 0.0
	for _, item := range c.items {
		subtotal += item.TotalPrice
	}
	return subtotal
}

// ItemCount sums all line quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}
