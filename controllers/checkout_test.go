package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"go-acaishop/engine"
	"go-acaishop/models"
	"go-acaishop/utils"
)

func TestFinalizeOrderRefundsLoyaltyWhenInsertFails(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("refund on insert failure", func(mt *mtest.T) {
		cc := &CheckoutController{
			CustomerCollection: mt.Coll,
			OrderCollection:    mt.Coll,
			EmailService:       &utils.EmailService{},
		}

		settings := models.ShopSettings{
			LoyaltyProgram: models.LoyaltyProgram{
				Enabled: true, PointsPerReal: 1, PointsForReward: 100,
				RewardType: engine.DiscountFixed, RewardValue: 10,
			},
		}
		customer := &models.Customer{ID: primitive.NewObjectID(), Email: "cliente@example.com", LoyaltyPoints: 120}

		discounts := engine.NewDiscounts()
		require.NoError(mt.T, discounts.ApplyLoyaltyReward(settings.LoyaltyProgram, customer.LoyaltyPoints))

		cart := engine.NewCart()
		cart.AddItem("p1", "Açaí", models.ProductSize{Name: "500ml", Price: 15.00, IsAvailable: true}, nil, 1, "")

		req := CheckoutRequest{
			CustomerName:   "Cliente",
			DeliveryOption: models.DeliveryOptionPickup,
			PaymentMethod:  "cash",
			RedeemLoyalty:  true,
		}

		mt.AddMockResponses(
			// points decrement succeeds
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			// order insert fails
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}),
			// compensating increment succeeds
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		order, err := cc.finalizeOrder(context.Background(), req, cart, settings, customer, 0, discounts)
		require.Error(mt.T, err)
		assert.Nil(mt.T, order)

		var commands []string
		for _, evt := range mt.GetAllStartedEvents() {
			commands = append(commands, evt.CommandName)
		}
		// the failed insert must be followed by the refunding update
		assert.Equal(mt.T, []string{"update", "insert", "update"}, commands)
	})
}

func TestCheckoutPDVRejectsUnknownPaymentMethod(t *testing.T) {
	cc := &CheckoutController{}

	for _, payment := range []string{"", "fiado"} {
		body := `{"customer_name":"Balcão","delivery_option":"counter","payment_method":"` + payment + `","items":[]}`
		r := httptest.NewRequest(http.MethodPost, "/admin/orders/pdv", strings.NewReader(body))
		w := httptest.NewRecorder()

		cc.CheckoutPDV(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "payment method")
	}
}
