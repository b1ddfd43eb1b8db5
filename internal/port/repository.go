package port

import (
	"context"
	"time"

	"toolfacturer-backend/internal/domain"
)

// Ids are hex-encoded ObjectIDs. Implementations return ErrInvalidID for a
// malformed id and ErrNotFound when a single-record lookup misses.

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	InsertProduct(ctx context.Context, p domain.Product) (InsertResult, error)
	DeleteProduct(ctx context.Context, id string) (DeleteResult, error)
}

type UserRepository interface {
	// UpsertUser inserts or updates the user keyed by email. Empty fields are
	// not written.
	UpsertUser(ctx context.Context, email string, fields domain.UserFields) (UpdateResult, error)
	SetRole(ctx context.Context, email, role string) (UpdateResult, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id string) (DeleteResult, error)
}

type OrderRepository interface {
	InsertOrder(ctx context.Context, o domain.Order) (InsertResult, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error)

	// MarkShipped and MarkPaid overwrite status; each touches only its own
	// timestamp (and MarkPaid the transaction id).
	MarkShipped(ctx context.Context, id string, at time.Time) (UpdateResult, error)
	MarkPaid(ctx context.Context, id, transactionID string, at time.Time) (UpdateResult, error)

	// DeleteOwnedOrder matches on both id and owner email; a foreign order
	// yields DeletedCount 0 and no error.
	DeleteOwnedOrder(ctx context.Context, id, email string) (DeleteResult, error)
	DeleteOrder(ctx context.Context, id string) (DeleteResult, error)
}

type PaymentRepository interface {
	InsertPayment(ctx context.Context, p domain.Payment) (InsertResult, error)
}

type ReviewRepository interface {
	InsertReview(ctx context.Context, r domain.Review) (InsertResult, error)
	ListReviews(ctx context.Context) ([]domain.Review, error)
}

// PaymentProcessor creates a payment intent with an external processor and
// returns its client secret. Amount is in minor currency units.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}
