package service

import (
	"context"
	"fmt"

	"toolfacturer-backend/internal/core/catalog"
	"toolfacturer-backend/internal/domain"
	"toolfacturer-backend/internal/port"
)

type CatalogService struct {
	products port.ProductRepository
	orders   port.OrderRepository
}

func NewCatalogService(products port.ProductRepository, orders port.OrderRepository) *CatalogService {
	return &CatalogService{products: products, orders: orders}
}

// List returns every product with AvailableQnt replaced by what is left
// after existing orders. Stored stock is not touched.
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return catalog.ComputeAvailability(products, orders), nil
}

// Get returns the stored record as-is, without derived availability.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetProduct(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, p domain.Product) (port.InsertResult, error) {
	return s.products.InsertProduct(ctx, p)
}

func (s *CatalogService) Delete(ctx context.Context, id string) (port.DeleteResult, error) {
	return s.products.DeleteProduct(ctx, id)
}
