package storage

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"toolfacturer-backend/internal/domain"
	"toolfacturer-backend/internal/port"
)

// MemoryStore keeps every collection in process memory. It implements the
// same repository ports as MongoStore and is used for local runs and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]domain.Product
	users    map[primitive.ObjectID]domain.User
	orders   map[primitive.ObjectID]domain.Order
	payments map[primitive.ObjectID]domain.Payment
	reviews  map[primitive.ObjectID]domain.Review
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[primitive.ObjectID]domain.Product),
		users:    make(map[primitive.ObjectID]domain.User),
		orders:   make(map[primitive.ObjectID]domain.Order),
		payments: make(map[primitive.ObjectID]domain.Payment),
		reviews:  make(map[primitive.ObjectID]domain.Review),
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, port.ErrInvalidID
	}
	return oid, nil
}

func inserted(id primitive.ObjectID) port.InsertResult {
	return port.InsertResult{Acknowledged: true, InsertedID: id.Hex()}
}

// sortedValues returns map values in insertion order; ObjectIDs begin with a
// timestamp and counter, so byte order matches creation order.
func sortedValues[T any](m map[primitive.ObjectID]T) []T {
	ids := make([]primitive.ObjectID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// ----- Products -----

func (s *MemoryStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.products), nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[oid]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) InsertProduct(ctx context.Context, p domain.Product) (port.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	s.products[p.ID] = p
	return inserted(p.ID), nil
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id string) (port.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return port.DeleteResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteKey(s.products, oid), nil
}

func deleteKey[T any](m map[primitive.ObjectID]T, id primitive.ObjectID) port.DeleteResult {
	if _, ok := m[id]; !ok {
		return port.DeleteResult{Acknowledged: true}
	}
	delete(m, id)
	return port.DeleteResult{Acknowledged: true, DeletedCount: 1}
}

// ----- Users -----

func (s *MemoryStore) findUser(email string) (primitive.ObjectID, domain.User, bool) {
	for id, u := range s.users {
		if u.Email == email {
			return id, u, true
		}
	}
	return primitive.NilObjectID, domain.User{}, false
}

func (s *MemoryStore) UpsertUser(ctx context.Context, email string, f domain.UserFields) (port.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, u, found := s.findUser(email)
	before := u
	if !found {
		id = primitive.NewObjectID()
		u = domain.User{ID: id, Email: email}
	}
	applyUserFields(&u, f)
	s.users[id] = u

	if !found {
		return port.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id.Hex()}, nil
	}
	res := port.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if u != before {
		res.ModifiedCount = 1
	}
	return res, nil
}

func applyUserFields(u *domain.User, f domain.UserFields) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&u.Name, f.Name)
	set(&u.Phone, f.Phone)
	set(&u.Address, f.Address)
	set(&u.Education, f.Education)
	set(&u.LinkedIn, f.LinkedIn)
	set(&u.Password, f.Password)
}

func (s *MemoryStore) SetRole(ctx context.Context, email, role string) (port.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, u, found := s.findUser(email)
	if !found {
		return port.UpdateResult{Acknowledged: true}, nil
	}
	res := port.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if u.Role != role {
		u.Role = role
		s.users[id] = u
		res.ModifiedCount = 1
	}
	return res, nil
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, u, found := s.findUser(email)
	if !found {
		return nil, port.ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.users), nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id string) (port.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return port.DeleteResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteKey(s.users, oid), nil
}

// ----- Orders -----

func (s *MemoryStore) InsertOrder(ctx context.Context, o domain.Order) (port.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = primitive.NewObjectID()
	s.orders[o.ID] = o
	return inserted(o.ID), nil
}

func (s *MemoryStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[oid]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &o, nil
}

func (s *MemoryStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.orders), nil
}

func (s *MemoryStore) ListOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Order{}
	for _, o := range sortedValues(s.orders) {
		if o.UserEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *MemoryStore) updateOrder(id string, apply func(*domain.Order)) (port.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return port.UpdateResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[oid]
	if !ok {
		return port.UpdateResult{Acknowledged: true}, nil
	}
	before := o
	apply(&o)
	s.orders[oid] = o
	res := port.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if !sameOrder(before, o) {
		res.ModifiedCount = 1
	}
	return res, nil
}

// sameOrder compares timestamps by value, the way the store sees them.
func sameOrder(a, b domain.Order) bool {
	sameTime := func(x, y *time.Time) bool {
		if x == nil || y == nil {
			return x == y
		}
		return x.Equal(*y)
	}
	if !sameTime(a.PaidAt, b.PaidAt) || !sameTime(a.ShippedAt, b.ShippedAt) {
		return false
	}
	a.PaidAt, a.ShippedAt, b.PaidAt, b.ShippedAt = nil, nil, nil, nil
	return a == b
}

func (s *MemoryStore) MarkShipped(ctx context.Context, id string, at time.Time) (port.UpdateResult, error) {
	return s.updateOrder(id, func(o *domain.Order) {
		o.Status = domain.OrderStatusShipped
		o.ShippedAt = &at
	})
}

func (s *MemoryStore) MarkPaid(ctx context.Context, id, transactionID string, at time.Time) (port.UpdateResult, error) {
	return s.updateOrder(id, func(o *domain.Order) {
		o.Status = domain.OrderStatusPaid
		o.TransactionID = transactionID
		o.PaidAt = &at
	})
}

func (s *MemoryStore) DeleteOwnedOrder(ctx context.Context, id, email string) (port.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return port.DeleteResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[oid]; !ok || o.UserEmail != email {
		return port.DeleteResult{Acknowledged: true}, nil
	}
	return deleteKey(s.orders, oid), nil
}

func (s *MemoryStore) DeleteOrder(ctx context.Context, id string) (port.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return port.DeleteResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteKey(s.orders, oid), nil
}

// ----- Payments -----

func (s *MemoryStore) InsertPayment(ctx context.Context, p domain.Payment) (port.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	s.payments[p.ID] = p
	return inserted(p.ID), nil
}

// Payments returns every recorded payment.
func (s *MemoryStore) Payments() []domain.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.payments)
}

// ----- Reviews -----

func (s *MemoryStore) InsertReview(ctx context.Context, r domain.Review) (port.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = primitive.NewObjectID()
	s.reviews[r.ID] = r
	return inserted(r.ID), nil
}

func (s *MemoryStore) ListReviews(ctx context.Context) ([]domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.reviews), nil
}
