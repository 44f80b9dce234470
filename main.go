// main.go
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"go-acaishop/controllers"
	"go-acaishop/routes"
	"go-acaishop/utils"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()

	// Initialize controllers
	userController := controllers.NewUserController(client)
	catalogController := controllers.NewCatalogController(client)
	settingsController := controllers.NewSettingsController(client)
	checkoutController := controllers.NewCheckoutController(client, emailService)
	orderController := controllers.NewOrderController(client, emailService)
	driverController := controllers.NewDriverController(client)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, catalogController, settingsController,
		checkoutController, orderController, driverController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Info().Str("port", port).Msg("Server is running")
	log.Fatal().Err(http.ListenAndServe(":"+port, router)).Msg("Server stopped")
}
