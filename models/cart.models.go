package models

// CartItem is one priced line of a cart or order.
// TotalPrice = (size price + sum of addon prices) * quantity.
type CartItem struct {
	ProductID   string      `bson:"product_id" json:"product_id"`
	ProductName string      `bson:"product_name" json:"product_name"`
	Size        ProductSize `bson:"size" json:"size"`
	Addons      []Addon     `bson:"addons" json:"addons"`
	Quantity    int         `bson:"quantity" json:"quantity"`
	TotalPrice  float64     `bson:"total_price" json:"total_price"`
	Notes       string      `bson:"notes,omitempty" json:"notes,omitempty"`
}
