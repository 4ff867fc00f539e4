// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"grocery-api/gateway"
	"grocery-api/middleware"
	"grocery-api/models"
	"grocery-api/services"
	"grocery-api/utils"
)

// OrderController handles order-related requests
type OrderController struct {
	Service  *services.OrderService
	Verifier gateway.WebhookVerifier
}

// NewOrderController creates a new OrderController
func NewOrderController(service *services.OrderService, verifier gateway.WebhookVerifier) *OrderController {
	return &OrderController{
		Service:  service,
		Verifier: verifier,
	}
}

// orderRequest is the body of both placement endpoints
type orderRequest struct {
	Items   []models.OrderItem `json:"items"`
	Address string             `json:"address"`
}

// callerID extracts the authenticated user's id from the request context
func callerID(r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseOrderRequest decodes the placement body. A malformed body or a
// malformed address id is reported the same way as missing fields.
func parseOrderRequest(r *http.Request) ([]models.OrderItem, primitive.ObjectID, error) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, primitive.NilObjectID, services.ErrInvalidOrder
	}
	var address primitive.ObjectID
	if req.Address != "" {
		var err error
		address, err = primitive.ObjectIDFromHex(req.Address)
		if err != nil {
			return nil, primitive.NilObjectID, services.ErrInvalidOrder
		}
	}
	return req.Items, address, nil
}

func writeOrderError(w http.ResponseWriter, err error) {
	var notFound *services.ProductNotFoundError
	var sessionErr *gateway.SessionError
	switch {
	case errors.Is(err, services.ErrInvalidOrder):
		utils.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Invalid order details", "success": false,
		})
	case errors.As(err, &notFound):
		utils.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": notFound.Error(), "success": false,
		})
	case errors.As(err, &sessionErr):
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message": sessionErr.Msg, "success": false,
		})
	default:
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message": "Internal Server Error", "success": false,
		})
	}
}

// PlaceOrderCOD creates a cash-on-delivery order
func (oc *OrderController) PlaceOrderCOD(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"message": "Unauthorized", "success": false,
		})
		return
	}

	items, address, err := parseOrderRequest(r)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	if _, err := oc.Service.PlaceOrderCOD(ctx, userID, items, address); err != nil {
		writeOrderError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully", "success": true,
	})
}

// PlaceOrderStripe creates an online order and returns the hosted
// checkout URL
func (oc *OrderController) PlaceOrderStripe(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"message": "Unauthorized", "success": false,
		})
		return
	}

	items, address, err := parseOrderRequest(r)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	result, err := oc.Service.PlaceOrderStripe(ctx, userID, items, address, r.Header.Get("Origin"))
	if err != nil {
		writeOrderError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     result.URL,
		"orderId": result.OrderID,
	})
}

func (oc *OrderController) writeOrders(w http.ResponseWriter, orders []models.PopulatedOrder, err error) {
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message": "Internal Server Error", "success": false,
		})
		return
	}
	if orders == nil {
		orders = []models.PopulatedOrder{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

// GetUserOrders lists the authenticated user's orders
func (oc *OrderController) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"message": "Unauthorized", "success": false,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	orders, err := oc.Service.UserOrders(ctx, userID)
	oc.writeOrders(w, orders, err)
}

// GetSellerOrders lists orders containing the seller's products
func (oc *OrderController) GetSellerOrders(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"message": "Unauthorized", "success": false,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	orders, err := oc.Service.SellerOrders(ctx, sellerID)
	oc.writeOrders(w, orders, err)
}

// GetAllOrders lists every visible order (admin)
func (oc *OrderController) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	orders, err := oc.Service.AllOrders(ctx)
	oc.writeOrders(w, orders, err)
}

// StripeWebhook handles asynchronous payment notifications. The raw
// body is verified against the signature header before anything in the
// payload is trusted.
func (oc *OrderController) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Webhook Error: failed to read body", http.StatusBadRequest)
		return
	}

	event, err := oc.Verifier.VerifyEvent(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		log.Printf("Webhook Error: %v", err)
		http.Error(w, "Webhook Error: "+err.Error(), http.StatusBadRequest)
		return
	}

	if event.Type == gateway.EventCheckoutCompleted {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		if err := oc.Service.ReconcilePayment(ctx, event.OrderID, event.PaymentIntentID); err != nil {
			log.Printf("Error updating order status: %v", err)
			http.Error(w, "Webhook Error: Failed to update order status", http.StatusBadRequest)
			return
		}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"received": true})
}
