// Package catalog is a thin read-only view over the products
// endpoints. No client-side state is kept; the rendering layer
// consumes what the server returns.
package catalog

import (
	"context"

	"github.com/Shanmukha18/unibuy-client/internal/api"
	"github.com/Shanmukha18/unibuy-client/internal/domain"
	"github.com/Shanmukha18/unibuy-client/internal/notify"
)

// Service reads the product catalog
type Service struct {
	api      *api.Client
	notifier notify.Notifier
}

// New creates a catalog service
func New(apiClient *api.Client, notifier notify.Notifier) *Service {
	return &Service{api: apiClient, notifier: notifier}
}

// List fetches all products
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		s.notifier.Error("Failed to load products")
		return nil, err
	}
	return products, nil
}

// Get fetches one product by id
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.api.GetProduct(ctx, id)
	if err != nil {
		s.notifier.Error("Failed to load product")
		return nil, err
	}
	return product, nil
}
