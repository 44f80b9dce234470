package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-acaishop/engine"
	"go-acaishop/middleware"
	"go-acaishop/models"
	"go-acaishop/utils"
)

// CheckoutController turns a validated cart into a priced, persisted
// order
type CheckoutController struct {
	SettingsCollection      *mongo.Collection
	ProductCollection       *mongo.Collection
	AddonCategoryCollection *mongo.Collection
	CouponCollection        *mongo.Collection
	CustomerCollection      *mongo.Collection
	OrderCollection         *mongo.Collection
	EmailService            *utils.EmailService
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(client *mongo.Client, emailService *utils.EmailService) *CheckoutController {
	db := client.Database(utils.DatabaseName)
	return &CheckoutController{
		SettingsCollection:      db.Collection("settings"),
		ProductCollection:       db.Collection("products"),
		AddonCategoryCollection: db.Collection("addon_categories"),
		CouponCollection:        db.Collection("coupons"),
		CustomerCollection:      db.Collection("customers"),
		OrderCollection:         db.Collection("orders"),
		EmailService:            emailService,
	}
}

// CheckoutItem is one candidate cart line: the selection the server
// re-prices from the catalog (client prices are never trusted)
type CheckoutItem struct {
	ProductID string   `json:"product_id"`
	SizeName  string   `json:"size_name,omitempty"`
	AddonIDs  []string `json:"addon_ids,omitempty"`
	Quantity  int      `json:"quantity"`
	Notes     string   `json:"notes,omitempty"`
}

// CheckoutRequest is the payload accepted by /checkout and /cart/quote
type CheckoutRequest struct {
	CustomerName    string         `json:"customer_name"`
	Items           []CheckoutItem `json:"items"`
	DeliveryOption  string         `json:"delivery_option"`
	DeliveryAddress string         `json:"delivery_address,omitempty"`
	Neighborhood    string         `json:"neighborhood,omitempty"`
	PaymentMethod   string         `json:"payment_method"`
	ChangeFor       float64        `json:"change_for,omitempty"`
	ScheduledTime   string         `json:"scheduled_time,omitempty"`
	CouponCode      string         `json:"coupon_code,omitempty"`
	RedeemLoyalty   bool           `json:"redeem_loyalty,omitempty"`
}

var validPaymentMethods = map[string]bool{
	"pix-machine": true,
	"pix-online":  true,
	"card":        true,
	"cash":        true,
}

// buildCart rebuilds and validates the cart server-side from the
// catalog: availability, size resolution and addon selection rules.
func (cc *CheckoutController) buildCart(ctx context.Context, items []CheckoutItem) (*engine.Cart, error) {
	if len(items) == 0 {
		return nil, engine.ErrEmptyCart
	}

	addonCategories, err := decodeAll[models.AddonCategory](ctx, cc.AddonCategoryCollection)
	if err != nil {
		return nil, err
	}

	cart := engine.NewCart()
	for _, item := range items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, errors.New("invalid product id")
		}
		var product models.Product
		if err := cc.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			return nil, errors.New("product not found: " + item.ProductID)
		}
		if !product.IsAvailable {
			return nil, errors.New("product not available: " + product.Name)
		}

		var size models.ProductSize
		if product.PriceType == "fixed" || len(product.Sizes) == 0 {
			size = models.ProductSize{Name: "Único", Price: product.Price, IsAvailable: true}
		} else {
			found := false
			for _, s := range product.Sizes {
				if s.Name == item.SizeName {
					size = s
					found = true
					break
				}
			}
			if !found || !size.IsAvailable {
				return nil, errors.New("size not available for product: " + product.Name)
			}
		}

		selected := make(map[string]bool, len(item.AddonIDs))
		for _, id := range item.AddonIDs {
			selected[id] = true
		}
		if err := engine.ValidateSelection(product, addonCategories, selected); err != nil {
			return nil, err
		}

		var addons []models.Addon
		for _, category := range addonCategories {
			for _, addon := range category.Addons {
				if selected[addon.ID] {
					addons = append(addons, addon)
				}
			}
		}

		cart.AddItem(product.ID.Hex(), product.Name, size, addons, item.Quantity, item.Notes)
	}
	return cart, nil
}

// priceCart resolves the delivery fee and the discount state for a
// cart. customer may be nil (guest checkout: no loyalty, no used-code
// tracking).
func (cc *CheckoutController) priceCart(ctx context.Context, req CheckoutRequest, cart *engine.Cart, settings models.ShopSettings, customer *models.Customer) (float64, *engine.Discounts, error) {
	fee := engine.ResolveDeliveryFee(settings.Delivery, req.DeliveryOption, req.Neighborhood)
	discounts := engine.NewDiscounts()

	if req.CouponCode != "" {
		coupons, err := decodeAll[models.Coupon](ctx, cc.CouponCollection)
		if err != nil {
			return 0, nil, err
		}
		var used []string
		if customer != nil {
			used = customer.UsedCoupons
		}
		if err := discounts.ApplyCoupon(req.CouponCode, coupons, used, cart.Subtotal()); err != nil {
			return 0, nil, err
		}
	}

	if req.RedeemLoyalty {
		if customer == nil {
			return 0, nil, engine.ErrInsufficientPoints
		}
		if err := discounts.ApplyLoyaltyReward(settings.LoyaltyProgram, customer.LoyaltyPoints); err != nil {
			return 0, nil, err
		}
	}

	return fee, discounts, nil
}

func (cc *CheckoutController) loadCustomer(ctx context.Context, r *http.Request) *models.Customer {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok || claims.Email == "" {
		return nil
	}
	var customer models.Customer
	if err := cc.CustomerCollection.FindOne(ctx, bson.M{"email": claims.Email}).Decode(&customer); err != nil {
		return nil
	}
	return &customer
}

func writeEngineError(w http.ResponseWriter, err error) {
	var minErr *engine.MinimumOrderError
	var selErr *engine.SelectionError
	var maxErr *engine.MaxReachedError
	var addonErr *engine.UnavailableAddonError
	switch {
	case errors.Is(err, engine.ErrInsufficientPoints),
		errors.Is(err, engine.ErrLoyaltyDisabled),
		errors.Is(err, engine.ErrAlreadyClaimed):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, engine.ErrCouponInvalid),
		errors.Is(err, engine.ErrCouponUsed),
		errors.Is(err, engine.ErrEmptyCart),
		errors.As(err, &minErr),
		errors.As(err, &selErr),
		errors.As(err, &maxErr),
		errors.As(err, &addonErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

// QuoteCart validates and prices a candidate cart without persisting
// anything, so the storefront can show live totals computed by the
// same rules checkout uses
func (cc *CheckoutController) QuoteCart(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var settings models.ShopSettings
	if err := cc.SettingsCollection.FindOne(ctx, bson.M{}).Decode(&settings); err != nil {
		http.Error(w, "Shop settings not found", http.StatusBadGateway)
		return
	}

	cart, err := cc.buildCart(ctx, req.Items)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	customer := cc.loadCustomer(ctx, r)
	fee, discounts, err := cc.priceCart(ctx, req, cart, settings, customer)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	subtotal := cart.Subtotal()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items":                            cart.Items(),
		"subtotal":                         subtotal,
		"delivery_fee":                     fee,
		"discount_amount":                  discounts.DiscountAmount(subtotal),
		"shipping_discount_amount":         discounts.ShippingDiscountAmount(subtotal, fee),
		"loyalty_discount_amount":          discounts.LoyaltyDiscountAmount(),
		"loyalty_shipping_discount_amount": discounts.LoyaltyShippingDiscountAmount(fee),
		"total":                            discounts.Total(subtotal, fee),
	})
}

// Checkout creates an order from the request. The cart is rebuilt and
// priced server-side, the loyalty redemption is a conditional balance
// decrement, and nothing is persisted when any validation fails.
func (cc *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.CustomerName == "" {
		http.Error(w, "Customer name is required", http.StatusBadRequest)
		return
	}
	if !validPaymentMethods[req.PaymentMethod] {
		http.Error(w, "Invalid payment method", http.StatusBadRequest)
		return
	}
	switch req.DeliveryOption {
	case models.DeliveryOptionDelivery:
		if req.DeliveryAddress == "" || req.Neighborhood == "" {
			http.Error(w, "Delivery address and neighborhood are required", http.StatusBadRequest)
			return
		}
	case models.DeliveryOptionPickup:
	default:
		http.Error(w, "Invalid delivery option", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var settings models.ShopSettings
	if err := cc.SettingsCollection.FindOne(ctx, bson.M{}).Decode(&settings); err != nil {
		http.Error(w, "Shop settings not found", http.StatusBadGateway)
		return
	}

	cart, err := cc.buildCart(ctx, req.Items)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	customer := cc.loadCustomer(ctx, r)
	fee, discounts, err := cc.priceCart(ctx, req, cart, settings, customer)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	order, err := cc.finalizeOrder(ctx, req, cart, settings, customer, fee, discounts)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

// finalizeOrder persists the order snapshot and applies the loyalty
// side effects. The redemption runs first as a conditional decrement
// (balance must still cover the reward when we get here); a lost race
// aborts the checkout before anything is written.
func (cc *CheckoutController) finalizeOrder(ctx context.Context, req CheckoutRequest, cart *engine.Cart, settings models.ShopSettings, customer *models.Customer, fee float64, discounts *engine.Discounts) (*models.Order, error) {
	subtotal := cart.Subtotal()

	threshold := settings.LoyaltyProgram.PointsForReward
	redeemed := false
	if discounts.LoyaltyRewardActive() {
		result, err := cc.CustomerCollection.UpdateOne(ctx,
			bson.M{"_id": customer.ID, "loyalty_points": bson.M{"$gte": threshold}},
			bson.M{"$inc": bson.M{"loyalty_points": -threshold}},
		)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 0 {
			return nil, engine.ErrInsufficientPoints
		}
		redeemed = true
	}

	order := models.Order{
		CustomerName:                  req.CustomerName,
		DeliveryOption:                req.DeliveryOption,
		PaymentMethod:                 req.PaymentMethod,
		Items:                         cart.Items(),
		Subtotal:                      subtotal,
		DeliveryFee:                   fee,
		Total:                         discounts.Total(subtotal, fee),
		Date:                          time.Now(),
		Status:                        engine.InitialStatus(req.ScheduledTime),
		ScheduledTime:                 req.ScheduledTime,
		DiscountAmount:                discounts.DiscountAmount(subtotal),
		ShippingDiscountAmount:        discounts.ShippingDiscountAmount(subtotal, fee),
		LoyaltyDiscountAmount:         discounts.LoyaltyDiscountAmount(),
		LoyaltyShippingDiscountAmount: discounts.LoyaltyShippingDiscountAmount(fee),
		AssignedDriverID:              nil,
		AssignedDriverName:            nil,
		IsDeliveryBroadcasted:         false,
	}
	if req.DeliveryOption == models.DeliveryOptionDelivery {
		order.DeliveryAddress = req.DeliveryAddress
		order.Neighborhood = req.Neighborhood
	}
	if req.PaymentMethod == "cash" {
		order.ChangeFor = req.ChangeFor
	}
	if coupon := discounts.Coupon(); coupon != nil {
		order.CouponCode = coupon.Code
	}
	if customer != nil {
		order.CustomerEmail = customer.Email
	}

	result, err := cc.OrderCollection.InsertOne(ctx, order)
	if err != nil {
		if redeemed {
			// no order was created, so the decremented points go back
			if _, refundErr := cc.CustomerCollection.UpdateOne(ctx,
				bson.M{"_id": customer.ID},
				bson.M{"$inc": bson.M{"loyalty_points": threshold}},
			); refundErr != nil {
				log.Error().Err(refundErr).Str("customer", customer.Email).Msg("Failed to refund loyalty points")
			}
		}
		return nil, err
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	if customer != nil {
		patch := bson.M{}
		if points := engine.PointsEarned(subtotal, settings.LoyaltyProgram); points > 0 {
			patch["$inc"] = bson.M{"loyalty_points": points}
		}
		if coupon := discounts.Coupon(); coupon != nil {
			patch["$addToSet"] = bson.M{"used_coupons": coupon.Code}
		}
		if len(patch) > 0 {
			if _, err := cc.CustomerCollection.UpdateOne(ctx, bson.M{"_id": customer.ID}, patch); err != nil {
				log.Error().Err(err).Str("customer", customer.Email).Msg("Failed to update loyalty state")
			}
		}
	}

	go func(order models.Order, toEmail string) {
		if err := cc.EmailService.SendNewOrderEmail(toEmail, order); err != nil {
			log.Error().Err(err).Msg("Failed to send new order email")
		}
	}(order, settings.NotificationEmail)

	return &order, nil
}

// CheckoutPDV records a counter or delivery sale entered by staff.
// Counter sales are fulfilled on the spot and complete immediately.
func (cc *CheckoutController) CheckoutPDV(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CustomerName == "" {
		http.Error(w, "Customer name is required", http.StatusBadRequest)
		return
	}
	if !validPaymentMethods[req.PaymentMethod] {
		http.Error(w, "Invalid payment method", http.StatusBadRequest)
		return
	}
	if req.DeliveryOption != models.DeliveryOptionCounter && req.DeliveryOption != models.DeliveryOptionDelivery {
		http.Error(w, "Invalid delivery option", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var settings models.ShopSettings
	if err := cc.SettingsCollection.FindOne(ctx, bson.M{}).Decode(&settings); err != nil {
		http.Error(w, "Shop settings not found", http.StatusBadGateway)
		return
	}

	cart, err := cc.buildCart(ctx, req.Items)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	fee := engine.ResolveDeliveryFee(settings.Delivery, req.DeliveryOption, req.Neighborhood)
	subtotal := cart.Subtotal()

	order := models.Order{
		CustomerName:          req.CustomerName,
		DeliveryOption:        req.DeliveryOption,
		PaymentMethod:         req.PaymentMethod,
		ChangeFor:             req.ChangeFor,
		Items:                 cart.Items(),
		Subtotal:              subtotal,
		DeliveryFee:           fee,
		Total:                 subtotal + fee,
		Date:                  time.Now(),
		Status:                models.StatusReceived,
		IsDeliveryBroadcasted: false,
	}
	if req.DeliveryOption == models.DeliveryOptionCounter {
		// fulfilled at the counter, no delivery phase
		order.Status = models.StatusDelivered
	} else {
		order.DeliveryAddress = req.DeliveryAddress
		order.Neighborhood = req.Neighborhood
	}

	result, err := cc.OrderCollection.InsertOne(ctx, order)
	if err != nil {
		http.Error(w, "Failed to create order", http.StatusInternalServerError)
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}
