// Package cart mirrors the server-side cart. The server is the only
// authority: every operation replaces the local cart wholesale with
// the server's response and falls back to the empty cart on failure.
// The client never reconciles partial merges.
package cart

import (
	"context"
	"strconv"
	"sync"

	"github.com/Shanmukha18/unibuy-client/internal/api"
	"github.com/Shanmukha18/unibuy-client/internal/domain"
	"github.com/Shanmukha18/unibuy-client/internal/notify"
	"github.com/Shanmukha18/unibuy-client/internal/session"
	"github.com/Shanmukha18/unibuy-client/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Synchronizer keeps a local copy of the server-side cart
type Synchronizer struct {
	api      *api.Client
	session  *session.Store
	notifier notify.Notifier
	log      *logger.Logger

	mu      sync.Mutex
	cart    *domain.Cart
	loading bool

	fetchGroup singleflight.Group
}

// New creates a cart synchronizer bound to the given session. It
// fetches the cart automatically whenever the identity transitions
// from logged-out to logged-in.
func New(apiClient *api.Client, sess *session.Store, notifier notify.Notifier) *Synchronizer {
	s := &Synchronizer{
		api:      apiClient,
		session:  sess,
		notifier: notifier,
		log:      logger.Get(),
		cart:     domain.EmptyCart(),
	}
	sess.Subscribe(s.onIdentityChange)
	return s
}

// onIdentityChange reacts to session transitions: a fresh login pulls
// the server cart once; a logout drops the local copy.
func (s *Synchronizer) onIdentityChange(identity *domain.Identity) {
	if identity == nil {
		s.replace(domain.EmptyCart())
		return
	}
	// Deduplicate overlapping triggers for the same user.
	key := strconv.FormatInt(identity.ID, 10)
	s.fetchGroup.Do(key, func() (interface{}, error) {
		return nil, s.Fetch(context.Background())
	})
}

// Fetch replaces the local cart with the server's current cart
func (s *Synchronizer) Fetch(ctx context.Context) error {
	identity := s.session.Current()
	if identity == nil {
		return domain.ErrLoginRequired
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	serverCart, err := s.api.GetCart(ctx, identity.ID)
	if err != nil {
		s.replace(domain.EmptyCart())
		s.notifier.Error("Failed to load cart")
		return err
	}
	s.replace(serverCart)
	return nil
}

// Add puts quantity units of a product into the cart
func (s *Synchronizer) Add(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	identity := s.session.Current()
	if identity == nil {
		s.notifier.Error("Please login to add items to cart")
		return domain.ErrLoginRequired
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	serverCart, err := s.api.AddToCart(ctx, identity.ID, productID, quantity)
	if err != nil {
		s.replace(domain.EmptyCart())
		s.notifier.Error("Failed to add item to cart")
		return err
	}
	s.replace(serverCart)
	s.notifier.Success("Item added to cart!")
	return nil
}

// UpdateQuantity sets the quantity of a product already in the cart
func (s *Synchronizer) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	identity := s.session.Current()
	if identity == nil {
		return domain.ErrLoginRequired
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	serverCart, err := s.api.UpdateCartItem(ctx, identity.ID, productID, quantity)
	if err != nil {
		s.replace(domain.EmptyCart())
		s.notifier.Error("Failed to update cart")
		return err
	}
	s.replace(serverCart)
	s.notifier.Success("Cart updated!")
	return nil
}

// Remove takes a product out of the cart
func (s *Synchronizer) Remove(ctx context.Context, productID int64) error {
	identity := s.session.Current()
	if identity == nil {
		return domain.ErrLoginRequired
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	serverCart, err := s.api.RemoveCartItem(ctx, identity.ID, productID)
	if err != nil {
		s.replace(domain.EmptyCart())
		s.notifier.Error("Failed to remove item from cart")
		return err
	}
	s.replace(serverCart)
	s.notifier.Success("Item removed from cart!")
	return nil
}

// Clear empties the cart. The local cart ends up empty no matter what
// the server call does, so the user never sees stale items after a
// requested clear.
func (s *Synchronizer) Clear(ctx context.Context) error {
	identity := s.session.Current()
	if identity == nil {
		return domain.ErrLoginRequired
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	serverCart, err := s.api.ClearCart(ctx, identity.ID)
	if err != nil {
		s.replace(domain.EmptyCart())
		s.notifier.Error("Failed to clear cart")
		return err
	}
	s.replace(serverCart)
	s.notifier.Success("Cart cleared!")
	return nil
}

// Cart returns a copy of the local cart
func (s *Synchronizer) Cart() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.CartItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	return &domain.Cart{Items: items}
}

// Total is the derived cart total; no I/O
func (s *Synchronizer) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// ItemCount is the derived item count; no I/O
func (s *Synchronizer) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// Loading reports whether a cart operation is in flight
func (s *Synchronizer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// begin rejects re-entrant operations instead of relying on the
// caller to disable its triggers
func (s *Synchronizer) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return domain.ErrBusy
	}
	s.loading = true
	return nil
}

func (s *Synchronizer) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Synchronizer) replace(serverCart *domain.Cart) {
	if serverCart == nil {
		serverCart = domain.EmptyCart()
	}
	s.mu.Lock()
	s.cart = serverCart
	s.mu.Unlock()
	s.log.Debug("cart replaced", zap.Int("items", len(serverCart.Items)))
}
