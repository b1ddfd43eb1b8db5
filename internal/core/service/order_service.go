package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"toolfacturer-backend/internal/domain"
	"toolfacturer-backend/internal/port"
)

// OrderService drives orders from placed to Paid and/or Shipped. The two
// transitions share one status field with no ordering between them: the last
// write wins and nothing is terminal.
type OrderService struct {
	orders   port.OrderRepository
	payments port.PaymentRepository
	now      func() time.Time
}

func NewOrderService(orders port.OrderRepository, payments port.PaymentRepository) *OrderService {
	return &OrderService{orders: orders, payments: payments, now: time.Now}
}

// Create stores the order as submitted, owned by email. Product and quantity
// are not checked against the catalog and stock is not reserved.
func (s *OrderService) Create(ctx context.Context, o domain.Order, email string) (port.InsertResult, error) {
	o.UserEmail = email
	o.Status = ""
	o.TransactionID = ""
	o.PaidAt = nil
	o.ShippedAt = nil
	o.CreatedAt = s.now()
	return s.orders.InsertOrder(ctx, o)
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *OrderService) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return s.orders.ListOrdersByEmail(ctx, email)
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx)
}

func (s *OrderService) MarkShipped(ctx context.Context, id string) (port.UpdateResult, error) {
	return s.orders.MarkShipped(ctx, id, s.now())
}

// ConfirmPayment records the payment and then flips the order to Paid. The
// two writes are not atomic: if the second fails the payment record stays
// and the order keeps its previous status. A malformed id is rejected before
// anything is written.
func (s *OrderService) ConfirmPayment(ctx context.Context, id string, p domain.Payment) (port.UpdateResult, error) {
	if !primitive.IsValidObjectID(id) {
		return port.UpdateResult{}, port.ErrInvalidID
	}
	p.OrderID = id
	ins, err := s.payments.InsertPayment(ctx, p)
	if err != nil {
		return port.UpdateResult{}, fmt.Errorf("record payment: %w", err)
	}

	res, err := s.orders.MarkPaid(ctx, id, p.TransactionID, s.now())
	if err != nil {
		log.Printf("payment %s recorded but order %s not marked paid: %v", ins.InsertedID, id, err)
		return port.UpdateResult{}, fmt.Errorf("mark order paid: %w", err)
	}
	return res, nil
}

// DeleteOwn removes the order only when email owns it. Anything else is a
// zero-count no-op, not an error.
func (s *OrderService) DeleteOwn(ctx context.Context, id, email string) (port.DeleteResult, error) {
	return s.orders.DeleteOwnedOrder(ctx, id, email)
}

func (s *OrderService) DeleteAsAdmin(ctx context.Context, id string) (port.DeleteResult, error) {
	return s.orders.DeleteOrder(ctx, id)
}
