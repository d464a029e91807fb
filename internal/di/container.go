package di

import (
	"context"
	"fmt"

	"github.com/Shanmukha18/unibuy-client/internal/api"
	"github.com/Shanmukha18/unibuy-client/internal/cart"
	"github.com/Shanmukha18/unibuy-client/internal/catalog"
	"github.com/Shanmukha18/unibuy-client/internal/config"
	"github.com/Shanmukha18/unibuy-client/internal/notify"
	"github.com/Shanmukha18/unibuy-client/internal/orders"
	"github.com/Shanmukha18/unibuy-client/internal/payment"
	"github.com/Shanmukha18/unibuy-client/internal/session"
	"github.com/Shanmukha18/unibuy-client/internal/store"
	"github.com/Shanmukha18/unibuy-client/internal/webhook"
	"github.com/Shanmukha18/unibuy-client/pkg/logger"
)

// Container holds all dependencies for the storefront client
type Container struct {
	Config *config.Config

	// Infrastructure
	Credentials store.Store
	API         *api.Client
	Notifier    notify.Notifier

	// Stores and services
	Session *session.Store
	Cart    *cart.Synchronizer
	Catalog *catalog.Service
	Orders  *orders.Service

	// Payment
	Widget   payment.Widget
	Payments *payment.Coordinator

	// CallbackServer is non-nil only when the callback widget is
	// selected. The caller owns its Start/Shutdown lifecycle.
	CallbackServer *webhook.CallbackWidget
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	creds, err := newCredentialStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}
	c.Credentials = creds
	c.Notifier = notify.NewLogNotifier(logger.Get())

	// The expiry hook closes over the container so the session store
	// can be wired after the client that notifies it.
	apiClient, err := api.NewClient(&api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		OnSessionExpired: func() {
			if c.Session != nil {
				c.Session.ExpireLocal()
			}
		},
	}, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize API client: %w", err)
	}
	c.API = apiClient

	c.Session = session.New(c.API, creds, c.Notifier)
	c.Cart = cart.New(c.API, c.Session, c.Notifier)
	c.Catalog = catalog.New(c.API, c.Notifier)
	c.Orders = orders.New(c.API, c.Session, c.Notifier)

	switch cfg.Payment.Widget {
	case "callback":
		server := webhook.NewCallbackWidget(&webhook.Config{
			Addr: cfg.Callback.Addr(),
		})
		c.CallbackServer = server
		c.Widget = server
	default:
		c.Widget = payment.NewMockWidget(nil)
	}

	c.Payments = payment.NewCoordinator(c.API, c.Session, c.Widget, c.Notifier, &payment.Config{
		Currency:    cfg.Payment.Currency,
		StoreName:   cfg.Payment.StoreName,
		Description: cfg.Payment.Description,
		ThemeColor:  cfg.Payment.ThemeColor,
	})

	return c, nil
}

func newCredentialStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "redis":
		return store.NewRedisStore(ctx, &store.RedisConfig{
			Addr:         cfg.Redis.Addr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			KeyPrefix:    cfg.App.Name,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return store.NewFileStore(cfg.Storage.Path)
	}
}

// Close releases container resources
func (c *Container) Close(ctx context.Context) error {
	if c.CallbackServer != nil {
		if err := c.CallbackServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	if closer, ok := c.Credentials.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
