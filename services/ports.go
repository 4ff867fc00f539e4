package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"grocery-api/models"
)

// OrderStore is the persistent collection of orders. The "visible"
// queries apply the listing rule: an order shows up only when it is COD
// or already paid. All of them return orders newest first.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	FindVisibleByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindVisibleByProducts(ctx context.Context, productIDs []primitive.ObjectID) ([]models.Order, error)
	FindVisible(ctx context.Context) ([]models.Order, error)

	// MarkPaid sets is_paid, paid_at and payment_id on the order and
	// returns the updated document. Re-applying it to an already paid
	// order must succeed. Returns ErrOrderNotFound when no order
	// matches.
	MarkPaid(ctx context.Context, orderID primitive.ObjectID, paymentID string, paidAt time.Time) (*models.Order, error)
}

// Catalog resolves product references. FindProduct returns a
// *ProductNotFoundError when the id is unknown.
type Catalog interface {
	FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ProductIDsBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// AddressBook resolves delivery address references for listings.
type AddressBook interface {
	FindAddress(ctx context.Context, id primitive.ObjectID) (*models.Address, error)
}

// UserDirectory resolves user ids to profile and email.
type UserDirectory interface {
	FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// CheckoutLineItem describes one product line for the hosted checkout
// page. UnitAmount is in the gateway's minor units.
type CheckoutLineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int
}

// CheckoutParams is everything the gateway needs to build a hosted
// checkout session. OrderID and UserID travel as opaque metadata and
// come back on the completion webhook.
type CheckoutParams struct {
	LineItems  []CheckoutLineItem
	SuccessURL string
	CancelURL  string
	OrderID    string
	UserID     string
}

// CheckoutSession is the gateway's hosted checkout page.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentGateway creates hosted checkout sessions.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
}

// Mailer sends order notification emails.
type Mailer interface {
	OrderPlaced(user models.User, order models.Order) error
	OrderPaid(user models.User, order models.Order) error
}
