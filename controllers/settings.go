package controllers

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-acaishop/engine"
	"go-acaishop/models"
	"go-acaishop/utils"
)

// SettingsController serves the shop configuration, schedule slots and
// the wheel-of-fortune promotion
type SettingsController struct {
	SettingsCollection *mongo.Collection
	CouponCollection   *mongo.Collection
	rng                *rand.Rand
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(client *mongo.Client) *SettingsController {
	db := client.Database(utils.DatabaseName)
	return &SettingsController{
		SettingsCollection: db.Collection("settings"),
		CouponCollection:   db.Collection("coupons"),
		rng:                rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// LoadSettings fetches the single shop settings document
func (sc *SettingsController) LoadSettings(ctx context.Context) (models.ShopSettings, error) {
	var settings models.ShopSettings
	err := sc.SettingsCollection.FindOne(ctx, bson.M{}).Decode(&settings)
	return settings, err
}

// GetSettings returns the shop settings plus the current open/closed state
func (sc *SettingsController) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	settings, err := sc.LoadSettings(ctx)
	if err != nil {
		http.Error(w, "Shop settings not found", http.StatusNotFound)
		return
	}

	isOpen, hoursToday := engine.ShopOpen(settings, time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"settings":    settings,
		"is_open":     isOpen,
		"hours_today": hoursToday,
	})
}

// UpdateSettings replaces the shop settings document (Admin only)
func (sc *SettingsController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.ShopSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{
		"name":                      settings.Name,
		"address":                   settings.Address,
		"whatsapp":                  settings.Whatsapp,
		"notification_email":        settings.NotificationEmail,
		"welcome_message":           settings.WelcomeMessage,
		"wait_time":                 settings.WaitTime,
		"opening_hours":             settings.OpeningHours,
		"delivery":                  settings.Delivery,
		"pix_key":                   settings.PixKey,
		"loyalty_program":           settings.LoyaltyProgram,
		"is_temporarily_closed":     settings.IsTemporarilyClosed,
		"temporary_closure_message": settings.TemporaryClosureMessage,
		"wheel_prizes":              settings.WheelPrizes,
	}}
	_, err := sc.SettingsCollection.UpdateOne(ctx, bson.M{}, update, options.Update().SetUpsert(true))
	if err != nil {
		http.Error(w, "Error saving settings", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Settings saved"})
}

// GetSlots returns today's valid pickup/delivery time slots
func (sc *SettingsController) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	settings, err := sc.LoadSettings(ctx)
	if err != nil {
		http.Error(w, "Shop settings not found", http.StatusNotFound)
		return
	}

	now := time.Now()
	slots := []string{}
	if !settings.IsTemporarilyClosed {
		hoursToday := settings.OpeningHours.HoursFor(int(now.Weekday()))
		slots = append(slots, engine.GenerateSlots(hoursToday, now)...)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slots)
}

// SpinWheel picks a wheel prize and materializes it as a single-use
// coupon the discount engine accepts like any other code
func (sc *SettingsController) SpinWheel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	settings, err := sc.LoadSettings(ctx)
	if err != nil {
		http.Error(w, "Shop settings not found", http.StatusNotFound)
		return
	}

	prize, ok := engine.SelectPrize(settings.WheelPrizes, sc.rng)
	if !ok {
		http.Error(w, "No prizes configured", http.StatusNotFound)
		return
	}

	coupon := engine.PrizeCoupon(prize)
	_, err = sc.CouponCollection.InsertOne(ctx, coupon)
	if err != nil {
		http.Error(w, "Error creating prize coupon", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"prize":  prize,
		"coupon": coupon,
	})
}
