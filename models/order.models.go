package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses, in the language the shop runs its kanban in
const (
	StatusScheduled      = "Agendado"
	StatusReceived       = "Recebido"
	StatusPreparing      = "Em Preparo"
	StatusAwaitingPickup = "Aguardando Retirada"
	StatusOutForDelivery = "Saiu para Entrega"
	StatusDelivered      = "Entregue"
	StatusPaidDelivered  = "Pago e Entregue"
	StatusCancelled      = "Cancelado"
)

// Delivery options
const (
	DeliveryOptionDelivery = "delivery"
	DeliveryOptionPickup   = "pickup"
	DeliveryOptionCounter  = "counter" // PDV sale at the counter
)

// Order is the immutable snapshot created at checkout. Only the status
// and driver-assignment fields change afterwards; orders are never deleted.
type Order struct {
	ID                            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CustomerName                  string             `bson:"customer_name" json:"customer_name"`
	CustomerEmail                 string             `bson:"customer_email,omitempty" json:"customer_email,omitempty"`
	DeliveryOption                string             `bson:"delivery_option" json:"delivery_option"`
	DeliveryAddress               string             `bson:"delivery_address,omitempty" json:"delivery_address,omitempty"`
	Neighborhood                  string             `bson:"neighborhood,omitempty" json:"neighborhood,omitempty"`
	PaymentMethod                 string             `bson:"payment_method" json:"payment_method"`
	ChangeFor                     float64            `bson:"change_for,omitempty" json:"change_for,omitempty"`
	Items                         []CartItem         `bson:"items" json:"items"`
	Subtotal                      float64            `bson:"subtotal" json:"subtotal"`
	DeliveryFee                   float64            `bson:"delivery_fee" json:"delivery_fee"`
	Total                         float64            `bson:"total" json:"total"`
	Date                          time.Time          `bson:"date" json:"date"`
	Status                        string             `bson:"status" json:"status"`
	ScheduledTime                 string             `bson:"scheduled_time,omitempty" json:"scheduled_time,omitempty"`
	CouponCode                    string             `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	DiscountAmount                float64            `bson:"discount_amount" json:"discount_amount"`
	ShippingDiscountAmount        float64            `bson:"shipping_discount_amount" json:"shipping_discount_amount"`
	LoyaltyDiscountAmount         float64            `bson:"loyalty_discount_amount" json:"loyalty_discount_amount"`
	LoyaltyShippingDiscountAmount float64            `bson:"loyalty_shipping_discount_amount" json:"loyalty_shipping_discount_amount"`
	AssignedDriverID              *string            `bson:"assigned_driver_id" json:"assigned_driver_id"`
	AssignedDriverName            *string            `bson:"assigned_driver_name" json:"assigned_driver_name"`
	IsDeliveryBroadcasted         bool               `bson:"is_delivery_broadcasted" json:"is_delivery_broadcasted"`
}
