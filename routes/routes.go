// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"grocery-api/controllers"
	"grocery-api/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, orderController *controllers.OrderController) {
	// Stripe webhook - raw body, authenticated by signature, not JWT
	router.HandleFunc("/api/order/webhook", orderController.StripeWebhook).Methods("POST")

	// User routes
	user := router.PathPrefix("/api/order").Subrouter()
	user.Use(middleware.AuthMiddleware)
	user.HandleFunc("/cod", orderController.PlaceOrderCOD).Methods("POST")
	user.HandleFunc("/stripe", orderController.PlaceOrderStripe).Methods("POST")
	user.HandleFunc("/user", orderController.GetUserOrders).Methods("GET")

	// Seller routes
	seller := router.PathPrefix("/api/order").Subrouter()
	seller.Use(middleware.AuthMiddleware)
	seller.Use(middleware.SellerMiddleware)
	seller.HandleFunc("/seller", orderController.GetSellerOrders).Methods("GET")

	// Admin routes
	admin := router.PathPrefix("/api/order").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/all", orderController.GetAllOrders).Methods("GET")
}
