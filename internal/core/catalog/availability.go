// Package catalog derives the quantity of each product still open for
// ordering.
//
// Orders are joined to products by product name, not by id. Renaming a
// product detaches every order placed under the old name, and its listed
// availability jumps back up accordingly.
package catalog

import "toolfacturer-backend/internal/domain"

// ClaimedByName sums OrderQuantity per product name.
func ClaimedByName(orders []domain.Order) map[string]int {
	claimed := make(map[string]int, len(orders))
	for _, o := range orders {
		claimed[o.ProductName] += o.OrderQuantity
	}
	return claimed
}

// ComputeAvailability returns copies of products whose AvailableQnt is the
// stored base quantity minus everything claimed by orders for that name.
// The result may go negative when a product is oversold; it is not clamped.
// Neither input is modified.
func ComputeAvailability(products []domain.Product, orders []domain.Order) []domain.Product {
	claimed := ClaimedByName(orders)
	out := make([]domain.Product, len(products))
	for i, p := range products {
		p.AvailableQnt -= claimed[p.Name]
		out[i] = p
	}
	return out
}
