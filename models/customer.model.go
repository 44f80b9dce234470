package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer represents a storefront account. LoyaltyPoints never goes
// negative; UsedCoupons tracks codes this customer already redeemed.
type Customer struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password,omitempty" json:"-"`
	Role          string             `bson:"role" json:"role"` // "customer" or "admin"
	LoyaltyPoints int                `bson:"loyalty_points" json:"loyalty_points"`
	UsedCoupons   []string           `bson:"used_coupons" json:"used_coupons"`
}
