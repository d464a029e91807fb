// Package orders exposes the order history and the cart-to-order
// checkout call. Orders are owned by the server; the client only
// reads them and reports payment outcomes.
package orders

import (
	"context"

	"github.com/Shanmukha18/unibuy-client/internal/api"
	"github.com/Shanmukha18/unibuy-client/internal/domain"
	"github.com/Shanmukha18/unibuy-client/internal/notify"
	"github.com/Shanmukha18/unibuy-client/internal/session"
)

// Service reads orders for the authenticated user
type Service struct {
	api      *api.Client
	session  *session.Store
	notifier notify.Notifier
}

// New creates an orders service
func New(apiClient *api.Client, sess *session.Store, notifier notify.Notifier) *Service {
	return &Service{api: apiClient, session: sess, notifier: notifier}
}

// History fetches the authenticated user's orders
func (s *Service) History(ctx context.Context) ([]domain.Order, error) {
	identity := s.session.Current()
	if identity == nil {
		return nil, domain.ErrLoginRequired
	}
	orders, err := s.api.GetUserOrders(ctx, identity.ID)
	if err != nil {
		s.notifier.Error("Failed to load orders")
		return nil, err
	}
	return orders, nil
}

// Checkout converts the authenticated user's cart into an order
func (s *Service) Checkout(ctx context.Context) (*domain.Order, error) {
	identity := s.session.Current()
	if identity == nil {
		return nil, domain.ErrLoginRequired
	}
	order, err := s.api.Checkout(ctx, identity.ID)
	if err != nil {
		s.notifier.Error(api.ServerMessage(err, "Checkout failed"))
		return nil, err
	}
	return order, nil
}
