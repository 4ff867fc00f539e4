package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"grocery-api/models"
)

// DefaultOrigin is used for checkout redirect URLs when the request
// carries no Origin header.
const DefaultOrigin = "http://localhost:3000"

// taxPercent is the flat surcharge applied on top of the item subtotal.
const taxPercent = 2

// OrderService orchestrates order placement, listing and payment
// reconciliation. It keeps no state between calls; everything lives in
// the order store.
type OrderService struct {
	orders    OrderStore
	catalog   Catalog
	addresses AddressBook
	users     UserDirectory
	gateway   PaymentGateway
	mailer    Mailer
}

// NewOrderService creates a new OrderService. mailer may be nil, in
// which case no notification emails are sent.
func NewOrderService(orders OrderStore, catalog Catalog, addresses AddressBook, users UserDirectory, gateway PaymentGateway, mailer Mailer) *OrderService {
	return &OrderService{
		orders:    orders,
		catalog:   catalog,
		addresses: addresses,
		users:     users,
		gateway:   gateway,
		mailer:    mailer,
	}
}

// CheckoutResult is returned by PlaceOrderStripe: the hosted checkout
// URL the caller should redirect to, and the created order's id.
type CheckoutResult struct {
	URL     string
	OrderID primitive.ObjectID
}

func validateOrder(items []models.OrderItem, address primitive.ObjectID) error {
	if address.IsZero() || len(items) == 0 {
		return ErrInvalidOrder
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return ErrInvalidOrder
		}
	}
	return nil
}

// resolveProducts looks up every item's product concurrently. All
// lookups must succeed; the first failure aborts the rest.
func (s *OrderService) resolveProducts(ctx context.Context, items []models.OrderItem) ([]models.Product, error) {
	products := make([]models.Product, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			product, err := s.catalog.FindProduct(gctx, item.Product)
			if err != nil {
				return err
			}
			products[i] = *product
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}

// amountWithTax sums price x quantity across the items and adds the
// flat surcharge, rounded down.
func amountWithTax(products []models.Product, items []models.OrderItem) int64 {
	var subtotal int64
	for i, item := range items {
		subtotal += products[i].OfferPrice * int64(item.Quantity)
	}
	return subtotal + subtotal*taxPercent/100
}

// PlaceOrderCOD creates a cash-on-delivery order for the user and
// returns its id.
func (s *OrderService) PlaceOrderCOD(ctx context.Context, userID primitive.ObjectID, items []models.OrderItem, address primitive.ObjectID) (primitive.ObjectID, error) {
	if err := validateOrder(items, address); err != nil {
		return primitive.NilObjectID, err
	}

	products, err := s.resolveProducts(ctx, items)
	if err != nil {
		return primitive.NilObjectID, err
	}

	order := models.Order{
		UserID:      userID,
		Items:       items,
		Address:     address,
		Amount:      amountWithTax(products, items),
		PaymentType: models.PaymentTypeCOD,
		IsPaid:      false,
		CreatedAt:   time.Now(),
	}
	id, err := s.orders.Insert(ctx, &order)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("create order: %w", err)
	}
	order.ID = id

	s.notify(order.UserID, func(user models.User) error {
		return s.mailer.OrderPlaced(user, order)
	})
	return id, nil
}

// PlaceOrderStripe creates an online-payment order and a hosted
// checkout session for it. The order is persisted before the gateway
// call: a session failure leaves the order behind, unpaid and therefore
// invisible to every listing until reconciled.
func (s *OrderService) PlaceOrderStripe(ctx context.Context, userID primitive.ObjectID, items []models.OrderItem, address primitive.ObjectID, origin string) (*CheckoutResult, error) {
	if origin == "" {
		origin = DefaultOrigin
	}
	if err := validateOrder(items, address); err != nil {
		return nil, err
	}

	products, err := s.resolveProducts(ctx, items)
	if err != nil {
		return nil, err
	}

	lineItems := make([]CheckoutLineItem, len(items))
	for i, item := range items {
		lineItems[i] = CheckoutLineItem{
			Name:       products[i].Name,
			UnitAmount: products[i].OfferPrice * 100,
			Quantity:   item.Quantity,
		}
	}

	order := models.Order{
		UserID:      userID,
		Items:       items,
		Address:     address,
		Amount:      amountWithTax(products, items),
		PaymentType: models.PaymentTypeOnline,
		IsPaid:      false,
		CreatedAt:   time.Now(),
	}
	id, err := s.orders.Insert(ctx, &order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, CheckoutParams{
		LineItems:  lineItems,
		SuccessURL: origin + "/loader?next=/my-orders",
		CancelURL:  origin + "/cart",
		OrderID:    id.Hex(),
		UserID:     userID.Hex(),
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &CheckoutResult{URL: session.URL, OrderID: id}, nil
}

// UserOrders lists the caller's COD-or-paid orders, newest first.
func (s *OrderService) UserOrders(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedOrder, error) {
	orders, err := s.orders.FindVisibleByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user orders: %w", err)
	}
	return s.populate(ctx, orders)
}

// SellerOrders lists orders containing at least one of the seller's
// products, subject to the same visibility rule.
func (s *OrderService) SellerOrders(ctx context.Context, sellerID primitive.ObjectID) ([]models.PopulatedOrder, error) {
	productIDs, err := s.catalog.ProductIDsBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("find seller products: %w", err)
	}
	if len(productIDs) == 0 {
		return []models.PopulatedOrder{}, nil
	}
	orders, err := s.orders.FindVisibleByProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("find seller orders: %w", err)
	}
	return s.populate(ctx, orders)
}

// AllOrders lists every visible order system-wide, for admins.
func (s *OrderService) AllOrders(ctx context.Context) ([]models.PopulatedOrder, error) {
	orders, err := s.orders.FindVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	return s.populate(ctx, orders)
}

// ReconcilePayment marks the order referenced by a completed checkout
// session as paid. Safe to apply twice: a replayed notification writes
// the same payment state again.
func (s *OrderService) ReconcilePayment(ctx context.Context, orderID, paymentIntentID string) error {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return fmt.Errorf("%w: bad order id %q", ErrOrderNotFound, orderID)
	}

	order, err := s.orders.MarkPaid(ctx, id, paymentIntentID, time.Now())
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	log.Printf("Order %s has been paid", orderID)

	s.notify(order.UserID, func(user models.User) error {
		return s.mailer.OrderPaid(user, *order)
	})
	return nil
}

// populate resolves item products and the delivery address for each
// order. Products repeated across orders are fetched once.
func (s *OrderService) populate(ctx context.Context, orders []models.Order) ([]models.PopulatedOrder, error) {
	cache := make(map[primitive.ObjectID]models.Product)
	populated := make([]models.PopulatedOrder, 0, len(orders))
	for _, order := range orders {
		items := make([]models.PopulatedOrderItem, 0, len(order.Items))
		for _, item := range order.Items {
			product, ok := cache[item.Product]
			if !ok {
				found, err := s.catalog.FindProduct(ctx, item.Product)
				if err != nil {
					return nil, fmt.Errorf("populate order %s: %w", order.ID.Hex(), err)
				}
				product = *found
				cache[item.Product] = product
			}
			items = append(items, models.PopulatedOrderItem{Product: product, Quantity: item.Quantity})
		}

		address, err := s.addresses.FindAddress(ctx, order.Address)
		if err != nil {
			return nil, fmt.Errorf("populate order %s: %w", order.ID.Hex(), err)
		}

		populated = append(populated, models.PopulatedOrder{
			ID:          order.ID,
			UserID:      order.UserID,
			Items:       items,
			Address:     *address,
			Amount:      order.Amount,
			PaymentType: order.PaymentType,
			IsPaid:      order.IsPaid,
			PaidAt:      order.PaidAt,
			PaymentID:   order.PaymentID,
			CreatedAt:   order.CreatedAt,
		})
	}
	return populated, nil
}

// notify sends an email in the background; failures are logged only.
func (s *OrderService) notify(userID primitive.ObjectID, send func(models.User) error) {
	if s.mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		user, err := s.users.FindUser(ctx, userID)
		if err != nil {
			log.Printf("Failed to look up user %s for email: %v", userID.Hex(), err)
			return
		}
		if err := send(*user); err != nil {
			log.Printf("Failed to send email to %s: %v", user.Email, err)
		}
	}()
}
