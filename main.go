// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"grocery-api/controllers"
	"grocery-api/gateway"
	"grocery-api/repository"
	"grocery-api/routes"
	"grocery-api/services"
	"grocery-api/utils"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	// Mongo-backed collaborators
	orderStore := repository.NewOrderStore(client)
	catalog := repository.NewCatalog(client)
	addressBook := repository.NewAddressBook(client)
	userDirectory := repository.NewUserDirectory(client)

	// Stripe gateway
	stripeGateway := gateway.NewStripeGateway(
		os.Getenv("STRIPE_SECRET_KEY"),
		os.Getenv("STRIPE_WEBHOOK_SECRET"),
	)

	// Order service and controller
	orderService := services.NewOrderService(orderStore, catalog, addressBook, userDirectory, stripeGateway, emailService)
	orderController := controllers.NewOrderController(orderService, stripeGateway)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, orderController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
