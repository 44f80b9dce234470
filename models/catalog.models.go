package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products on the menu
type Category struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Order int                `bson:"order" json:"order"`
}

// ProductSize is one selectable size of a sized product
type ProductSize struct {
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	IsAvailable bool    `bson:"is_available" json:"is_available"`
}

// Product is a menu item; pricing is either a single fixed price or per size
type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description" json:"description"`
	CategoryID      string             `bson:"category_id" json:"category_id"`
	PriceType       string             `bson:"price_type" json:"price_type"` // "fixed" or "sized"
	Price           float64            `bson:"price" json:"price"`
	Sizes           []ProductSize      `bson:"sizes" json:"sizes"`
	AddonCategories []string           `bson:"addon_categories" json:"addon_categories"`
	Order           int                `bson:"order" json:"order"`
	IsAvailable     bool               `bson:"is_available" json:"is_available"`
}

// Addon is an optional extra grouped under an AddonCategory
type Addon struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	Order       int     `bson:"order" json:"order"`
	IsAvailable bool    `bson:"is_available" json:"is_available"`
}

// AddonCategory groups addons under selection rules.
// MaxSelection 0 means unlimited; MinSelection 0 falls back to the
// Required flag (required means at least one).
type AddonCategory struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Required     bool               `bson:"required" json:"required"`
	MinSelection int                `bson:"min_selection" json:"min_selection"`
	MaxSelection int                `bson:"max_selection" json:"max_selection"`
	Addons       []Addon            `bson:"addons" json:"addons"`
	Order        int                `bson:"order" json:"order"`
}

// Coupon is a redeemable discount code; codes are matched case-insensitively
type Coupon struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code              string             `bson:"code" json:"code"`
	Description       string             `bson:"description" json:"description"`
	DiscountType      string             `bson:"discount_type" json:"discount_type"` // "fixed", "percentage" or "free_shipping"
	DiscountValue     float64            `bson:"discount_value" json:"discount_value"`
	MinimumOrderValue float64            `bson:"minimum_order_value" json:"minimum_order_value"`
}
