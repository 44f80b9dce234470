// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"go-acaishop/controllers"
	"go-acaishop/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router,
	userController *controllers.UserController,
	catalogController *controllers.CatalogController,
	settingsController *controllers.SettingsController,
	checkoutController *controllers.CheckoutController,
	orderController *controllers.OrderController,
	driverController *controllers.DriverController) {

	// Public routes
	router.HandleFunc("/register", userController.Register).Methods("POST")
	router.HandleFunc("/login", userController.Login).Methods("POST")
	router.HandleFunc("/settings", settingsController.GetSettings).Methods("GET")
	router.HandleFunc("/catalog", catalogController.GetCatalog).Methods("GET")
	router.HandleFunc("/coupons", catalogController.GetCoupons).Methods("GET")
	router.HandleFunc("/slots", settingsController.GetSlots).Methods("GET")
	router.HandleFunc("/wheel/spin", settingsController.SpinWheel).Methods("POST")
	router.HandleFunc("/track/{id}", orderController.GetOrder).Methods("GET")

	// Checkout works for guests; a bearer token adds loyalty and
	// coupon tracking
	checkout := router.PathPrefix("/").Subrouter()
	checkout.Use(middleware.OptionalAuthMiddleware)
	checkout.HandleFunc("/cart/quote", checkoutController.QuoteCart).Methods("POST")
	checkout.HandleFunc("/checkout", checkoutController.Checkout).Methods("POST")

	// Customer routes
	customer := router.PathPrefix("/").Subrouter()
	customer.Use(middleware.AuthMiddleware)
	customer.HandleFunc("/profile", userController.GetProfile).Methods("GET")
	customer.HandleFunc("/orders/mine", orderController.GetMyOrders).Methods("GET")

	// Driver account routes
	router.HandleFunc("/drivers/register", driverController.Register).Methods("POST")
	router.HandleFunc("/drivers/login", driverController.Login).Methods("POST")

	driver := router.PathPrefix("/driver").Subrouter()
	driver.Use(middleware.AuthMiddleware)
	driver.Use(middleware.DriverMiddleware)
	driver.HandleFunc("/queue", driverController.GetQueue).Methods("GET")
	driver.HandleFunc("/orders/{id}/claim", driverController.ClaimOrder).Methods("POST")
	driver.HandleFunc("/orders/{id}/status", driverController.UpdateDeliveryStatus).Methods("PATCH")
	driver.HandleFunc("/stats", driverController.GetStats).Methods("GET")

	// Admin routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/settings", settingsController.UpdateSettings).Methods("PUT")
	admin.HandleFunc("/catalog/{resource}", catalogController.CreateCatalogItem).Methods("POST")
	admin.HandleFunc("/catalog/{resource}/{id}", catalogController.UpdateCatalogItem).Methods("PUT")
	admin.HandleFunc("/catalog/{resource}/{id}", catalogController.DeleteCatalogItem).Methods("DELETE")
	admin.HandleFunc("/orders/active", orderController.GetActiveOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", orderController.UpdateOrder).Methods("PATCH")
	admin.HandleFunc("/orders/{id}/unassign", orderController.UnassignOrder).Methods("POST")
	admin.HandleFunc("/orders/pdv", checkoutController.CheckoutPDV).Methods("POST")
	admin.HandleFunc("/drivers", driverController.ListDrivers).Methods("GET")
	admin.HandleFunc("/drivers/{id}/status", driverController.UpdateDriverStatus).Methods("PATCH")
}
