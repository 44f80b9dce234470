package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-acaishop/engine"
	"go-acaishop/middleware"
	"go-acaishop/models"
	"go-acaishop/utils"
)

// OrderController serves order projections and the operator-driven
// status/assignment workflow
type OrderController struct {
	OrderCollection    *mongo.Collection
	DriverCollection   *mongo.Collection
	CustomerCollection *mongo.Collection
	EmailService       *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(client *mongo.Client, emailService *utils.EmailService) *OrderController {
	db := client.Database(utils.DatabaseName)
	return &OrderController{
		OrderCollection:    db.Collection("orders"),
		DriverCollection:   db.Collection("delivery_drivers"),
		CustomerCollection: db.Collection("customers"),
		EmailService:       emailService,
	}
}

// GetActiveOrders returns every order not yet delivered or cancelled,
// oldest first (Admin only)
func (oc *OrderController) GetActiveOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"status": bson.M{"$nin": []string{
		models.StatusDelivered, models.StatusPaidDelivered, models.StatusCancelled,
	}}}
	cursor, err := oc.OrderCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		http.Error(w, "Error decoding orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// GetMyOrders returns the authenticated customer's order history,
// newest first
func (oc *OrderController) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok || claims.Email == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := oc.OrderCollection.Find(ctx,
		bson.M{"customer_email": claims.Email},
		options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		http.Error(w, "Error decoding orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// GetOrder returns one order by id, for tracking
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.OrderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// OrderUpdateRequest patches an order's status and/or driver
// assignment. Both land in a single write so status changes and
// assignment changes can never interleave.
type OrderUpdateRequest struct {
	Status     *string `json:"status,omitempty"`
	DriverID   *string `json:"driver_id,omitempty"`
	DriverName *string `json:"driver_name,omitempty"`
	Broadcast  *bool   `json:"broadcast,omitempty"`
}

// UpdateOrder applies a status and/or assignment patch (Admin only).
// Sending driver_id "" together with broadcast true broadcasts the
// delivery to the whole approved pool; a concrete driver_id assigns it
// directly.
func (oc *OrderController) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	var req OrderUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.OrderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	set := bson.M{}
	if req.Status != nil {
		if !engine.IsValidStatus(*req.Status) {
			http.Error(w, "Unknown status", http.StatusBadRequest)
			return
		}
		if !engine.CanTransition(order.Status, *req.Status) {
			http.Error(w, "Order is in a terminal status", http.StatusConflict)
			return
		}
		set["status"] = *req.Status
	}
	if req.DriverID != nil {
		if *req.DriverID == "" {
			set["assigned_driver_id"] = nil
			set["assigned_driver_name"] = nil
		} else {
			driver, err := oc.approvedDriver(ctx, *req.DriverID)
			if err != nil {
				http.Error(w, "Driver not found or not approved", http.StatusBadRequest)
				return
			}
			driverID := driver.ID.Hex()
			set["assigned_driver_id"] = driverID
			set["assigned_driver_name"] = driver.Name
			if req.DriverName != nil {
				set["assigned_driver_name"] = *req.DriverName
			}
		}
	}
	if req.Broadcast != nil {
		set["is_delivery_broadcasted"] = *req.Broadcast
	}
	if len(set) == 0 {
		http.Error(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	if _, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}

	var updated models.Order
	if err := oc.OrderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		http.Error(w, "Failed to retrieve updated order", http.StatusInternalServerError)
		return
	}

	if req.Status != nil && updated.CustomerEmail != "" {
		go func(order models.Order) {
			if err := oc.EmailService.SendStatusUpdateEmail(order.CustomerEmail, order); err != nil {
				log.Error().Err(err).Msg("Failed to send status update email")
			}
		}(updated)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// UnassignOrder clears the driver assignment and the broadcast flag,
// leaving the order's status untouched (Admin only)
func (oc *OrderController) UnassignOrder(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"assigned_driver_id":      nil,
		"assigned_driver_name":    nil,
		"is_delivery_broadcasted": false,
	}})
	if err != nil {
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Delivery unassigned"})
}

func (oc *OrderController) approvedDriver(ctx context.Context, idHex string) (*models.DeliveryDriver, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, err
	}
	var driver models.DeliveryDriver
	err = oc.DriverCollection.FindOne(ctx, bson.M{"_id": id, "status": models.DriverApproved}).Decode(&driver)
	if err != nil {
		return nil, err
	}
	return &driver, nil
}
