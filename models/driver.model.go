package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driver account statuses
const (
	DriverPending  = "pending"
	DriverApproved = "approved"
	DriverDeclined = "declined"
	DriverBlocked  = "blocked"
)

// DeliveryDriver is a courier account. Only approved drivers may log in
// and claim deliveries.
type DeliveryDriver struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Whatsapp string             `bson:"whatsapp" json:"whatsapp"`
	Address  string             `bson:"address" json:"address"`
	CNH      string             `bson:"cnh" json:"cnh"`
	Password string             `bson:"password,omitempty" json:"-"`
	Status   string             `bson:"status" json:"status"`
}
