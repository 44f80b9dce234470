package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"go-acaishop/engine"
	"go-acaishop/middleware"
	"go-acaishop/models"
	"go-acaishop/utils"
)

// DriverController handles courier accounts and the delivery queue
type DriverController struct {
	DriverCollection *mongo.Collection
	OrderCollection  *mongo.Collection
}

// NewDriverController creates a new DriverController
func NewDriverController(client *mongo.Client) *DriverController {
	db := client.Database(utils.DatabaseName)
	return &DriverController{
		DriverCollection: db.Collection("delivery_drivers"),
		OrderCollection:  db.Collection("orders"),
	}
}

// Register creates a driver account in pending status, awaiting admin
// approval
func (dc *DriverController) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Whatsapp string `json:"whatsapp"`
		Address  string `json:"address"`
		CNH      string `json:"cnh"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Name == "" || input.Whatsapp == "" || input.Password == "" {
		http.Error(w, "Name, whatsapp and password are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := dc.DriverCollection.CountDocuments(ctx, bson.M{"name": input.Name})
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "A driver with this name already exists", http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}
	driver := models.DeliveryDriver{
		Name:     input.Name,
		Whatsapp: input.Whatsapp,
		Address:  input.Address,
		CNH:      input.CNH,
		Password: string(hashedPassword),
		Status:   models.DriverPending,
	}

	if _, err := dc.DriverCollection.InsertOne(ctx, driver); err != nil {
		http.Error(w, "Error creating driver", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Registration submitted for review"})
}

// Login authenticates an approved driver by name and returns a JWT
// carrying the driver identity
func (dc *DriverController) Login(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var driver models.DeliveryDriver
	err := dc.DriverCollection.FindOne(ctx, bson.M{
		"name": bson.M{"$regex": "^" + strings.TrimSpace(credentials.Name) + "$", "$options": "i"},
	}).Decode(&driver)
	if err != nil {
		http.Error(w, "Driver not found", http.StatusUnauthorized)
		return
	}

	if driver.Password != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(driver.Password), []byte(credentials.Password)); err != nil {
			http.Error(w, "Invalid password", http.StatusUnauthorized)
			return
		}
	}

	if driver.Status != models.DriverApproved {
		http.Error(w, engine.ErrDriverNotApproved.Error()+": "+driver.Status, http.StatusForbidden)
		return
	}

	token, err := utils.GenerateDriverJWT(driver.ID.Hex(), driver.Name)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"token": token, "driver": driver})
}

// GetQueue returns the driver's delivery queue: broadcasted unassigned
// orders plus this driver's in-flight deliveries, ranked for pickup
func (dc *DriverController) GetQueue(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok || claims.DriverID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"delivery_option": models.DeliveryOptionDelivery,
		"$or": []bson.M{
			{
				"is_delivery_broadcasted": true,
				"assigned_driver_id":      nil,
				"status":                  bson.M{"$in": []string{models.StatusPreparing, models.StatusAwaitingPickup}},
			},
			{
				"assigned_driver_id": claims.DriverID,
				"status": bson.M{"$in": []string{
					models.StatusPreparing, models.StatusAwaitingPickup, models.StatusOutForDelivery,
				}},
			},
		},
	}

	cursor, err := dc.OrderCollection.Find(ctx, filter)
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

	engine.SortDriverQueue(orders)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// ClaimOrder attaches the driver to an unassigned broadcasted order.
// The claim is one conditional update filtered on the order still
// being unassigned, so concurrent claims resolve to exactly one
// winner; losers get a conflict and should refresh their queue.
func (dc *DriverController) ClaimOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok || claims.DriverID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":                     orderID,
		"assigned_driver_id":      nil,
		"is_delivery_broadcasted": true,
		"delivery_option":         models.DeliveryOptionDelivery,
		"status":                  bson.M{"$in": []string{models.StatusPreparing, models.StatusAwaitingPickup}},
	}
	update := bson.M{"$set": bson.M{
		"assigned_driver_id":   claims.DriverID,
		"assigned_driver_name": claims.Name,
	}}

	var order models.Order
	err = dc.OrderCollection.FindOneAndUpdate(ctx, filter, update,
		mongoAfterUpdate()).Decode(&order)
	if err == mongo.ErrNoDocuments {
		http.Error(w, engine.ErrAlreadyClaimed.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "Failed to claim order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// UpdateDeliveryStatus lets a driver advance an order assigned to them
// (out for delivery, delivered)
func (dc *DriverController) UpdateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok || claims.DriverID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status != models.StatusOutForDelivery && req.Status != models.StatusDelivered {
		http.Error(w, "Drivers may only mark orders out for delivery or delivered", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err = dc.OrderCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": orderID, "assigned_driver_id": claims.DriverID},
		bson.M{"$set": bson.M{"status": req.Status}},
		mongoAfterUpdate()).Decode(&order)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Order not assigned to this driver", http.StatusForbidden)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// GetStats returns the driver's delivered order count and the delivery
// fees earned since the start of the given period (day, week or month)
func (dc *DriverController) GetStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok || claims.DriverID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	var since time.Time
	switch r.URL.Query().Get("period") {
	case "week":
		since = now.AddDate(0, 0, -int(now.Weekday()))
		since = time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, now.Location())
	case "month":
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := dc.OrderCollection.Find(ctx, bson.M{
		"assigned_driver_id": claims.DriverID,
		"status":             models.StatusDelivered,
		"date":               bson.M{"$gte": since},
	})
	if err != nil {
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	count := 0
	totalFee := 0.0
	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			http.Error(w, "Error decoding order", http.StatusInternalServerError)
			return
		}
		count++
		totalFee += order.DeliveryFee
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"count":     count,
		"total_fee": totalFee,
	})
}

// ListDrivers returns every driver account (Admin only)
func (dc *DriverController) ListDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	drivers, err := decodeAll[models.DeliveryDriver](ctx, dc.DriverCollection)
	if err != nil {
		http.Error(w, "Failed to retrieve drivers", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(drivers)
}

func mongoAfterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// UpdateDriverStatus approves, declines or blocks a driver (Admin only)
func (dc *DriverController) UpdateDriverStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid driver ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	switch req.Status {
	case models.DriverPending, models.DriverApproved, models.DriverDeclined, models.DriverBlocked:
	default:
		http.Error(w, "Unknown driver status", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := dc.DriverCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": req.Status}})
	if err != nil {
		http.Error(w, "Failed to update driver", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "Driver not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Driver status updated"})
}
