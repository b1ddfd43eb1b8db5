// Package storage holds the document-store adapters behind the repository
// ports.
package storage

import "toolfacturer-backend/internal/port"

// Store is the full set of repositories a running server needs.
type Store interface {
	port.ProductRepository
	port.UserRepository
	port.OrderRepository
	port.PaymentRepository
	port.ReviewRepository
}

var (
	_ Store = (*MongoStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
