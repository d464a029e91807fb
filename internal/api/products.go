package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Shanmukha18/unibuy-client/internal/domain"
)

// ListProducts fetches the full catalog
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single catalog entry
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("/products/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
