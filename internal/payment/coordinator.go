// Package payment coordinates one checkout payment attempt: create a
// server-side gateway intent, hand control to the external payment
// widget, and verify the gateway's callback server-side before
// anything is treated as paid.
package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Shanmukha18/unibuy-client/internal/api"
	"github.com/Shanmukha18/unibuy-client/internal/domain"
	"github.com/Shanmukha18/unibuy-client/internal/dto"
	"github.com/Shanmukha18/unibuy-client/internal/notify"
	"github.com/Shanmukha18/unibuy-client/internal/session"
	"github.com/Shanmukha18/unibuy-client/pkg/logger"
	"go.uber.org/zap"
)

// State is the coordinator's position in the payment flow
type State string

const (
	StateClosed         State = "closed"
	StateCreatingIntent State = "creating_intent"
	StateReady          State = "ready"
	StateHandingOff     State = "handing_off"
	StateVerifying      State = "verifying"
)

// Config holds payment flow defaults
type Config struct {
	Currency    string
	StoreName   string
	Description string
	ThemeColor  string
}

// Coordinator drives the payment state machine. Exactly one payment
// attempt is in flight at a time; re-entrant calls are rejected
// rather than left to the caller to suppress.
type Coordinator struct {
	api      *api.Client
	session  *session.Store
	widget   Widget
	notifier notify.Notifier
	cfg      *Config
	log      *logger.Logger

	mu        sync.Mutex
	state     State
	orderID   int64
	amount    float64
	intent    *domain.PaymentIntent
	onSuccess func()
}

// NewCoordinator creates a payment coordinator
func NewCoordinator(apiClient *api.Client, sess *session.Store, widget Widget, notifier notify.Notifier, cfg *Config) *Coordinator {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	if cfg.StoreName == "" {
		cfg.StoreName = "E-Commerce Store"
	}
	if cfg.Description == "" {
		cfg.Description = "Payment for your order"
	}
	return &Coordinator{
		api:      apiClient,
		session:  sess,
		widget:   widget,
		notifier: notifier,
		cfg:      cfg,
		log:      logger.Get(),
		state:    StateClosed,
	}
}

// Open validates the attempt and creates the server-side payment
// intent. Invalid amount or a missing identity rejects before any
// network call. Re-opening with the same order and amount while
// already ready reuses the stored intent instead of creating a
// duplicate.
func (c *Coordinator) Open(ctx context.Context, orderID int64, amount float64, onSuccess func()) error {
	c.mu.Lock()
	if c.state == StateReady && c.intent != nil && c.orderID == orderID && c.amount == amount {
		c.onSuccess = onSuccess
		c.mu.Unlock()
		return nil
	}
	if c.state != StateClosed && c.state != StateReady {
		c.mu.Unlock()
		return domain.ErrBusy
	}

	if amount <= 0 {
		c.reset()
		c.mu.Unlock()
		c.notifier.Error("Invalid amount for payment")
		return domain.ErrInvalidAmount
	}
	identity := c.session.Current()
	if identity == nil {
		c.reset()
		c.mu.Unlock()
		c.notifier.Error("User not authenticated")
		return domain.ErrLoginRequired
	}

	c.state = StateCreatingIntent
	c.orderID = orderID
	c.amount = amount
	c.onSuccess = onSuccess
	c.intent = nil
	c.mu.Unlock()

	// Receipt is unique per attempt: order identifier + creation time.
	receipt := fmt.Sprintf("order_%d_%d", orderID, time.Now().UnixMilli())
	req := &dto.PaymentOrderRequest{
		UserID:   identity.ID,
		Amount:   amount,
		Currency: c.cfg.Currency,
		Receipt:  receipt,
		Notes:    fmt.Sprintf("Payment for order %d", orderID),
	}

	resp, err := c.api.CreatePaymentOrder(ctx, req)
	if err != nil {
		c.mu.Lock()
		c.reset()
		c.mu.Unlock()
		c.notifier.Error(api.ServerMessage(err, "Failed to create payment order"))
		return err
	}

	intent := &domain.PaymentIntent{
		GatewayKey:     resp.Key,
		GatewayOrderID: resp.OrderID,
		Amount:         resp.Amount,
		Currency:       resp.Currency,
		DisplayName:    resp.Name,
		Description:    resp.Description,
		Receipt:        receipt,
	}
	if intent.Currency == "" {
		intent.Currency = c.cfg.Currency
	}
	if intent.DisplayName == "" {
		intent.DisplayName = c.cfg.StoreName
	}
	if intent.Description == "" {
		intent.Description = c.cfg.Description
	}

	c.mu.Lock()
	c.intent = intent
	c.state = StateReady
	c.mu.Unlock()
	c.log.Info("payment intent created",
		zap.String("gateway_order_id", intent.GatewayOrderID),
		zap.Float64("amount", intent.Amount))
	return nil
}

// Pay hands control to the payment widget and drives the callback
// through server-side verification. It blocks its flow until the
// attempt completes, fails, or is dismissed.
func (c *Coordinator) Pay(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateReady || c.intent == nil {
		c.mu.Unlock()
		return domain.ErrIntentNotReady
	}
	identity := c.session.Current()
	if identity == nil {
		c.mu.Unlock()
		c.notifier.Error("User not authenticated")
		return domain.ErrLoginRequired
	}
	intent := c.intent
	orderID := c.orderID
	c.state = StateHandingOff
	c.mu.Unlock()

	params := &LaunchParams{
		Key:            intent.GatewayKey,
		Amount:         intent.AmountMinorUnits(),
		Currency:       intent.Currency,
		Name:           intent.DisplayName,
		Description:    intent.Description,
		GatewayOrderID: intent.GatewayOrderID,
		PrefillEmail:   identity.Email,
		PrefillContact: identity.Phone,
		Notes:          map[string]string{"order_id": fmt.Sprintf("%d", orderID)},
		ThemeColor:     c.cfg.ThemeColor,
	}

	results, err := c.widget.Launch(ctx, params)
	if err != nil {
		c.mu.Lock()
		c.state = StateReady
		c.mu.Unlock()
		c.notifier.Error("Payment widget unavailable, please retry")
		return fmt.Errorf("%w: %v", domain.ErrWidgetUnavailable, err)
	}

	select {
	case <-ctx.Done():
		// Navigating away abandons the attempt; an eventual callback
		// is ignored.
		c.Close()
		return ctx.Err()
	case result, ok := <-results:
		if !ok {
			// User dismissed the widget before paying: no server call.
			c.log.Info("payment widget dismissed")
			c.Close()
			return nil
		}
		return c.verify(ctx, identity.ID, orderID, result)
	}
}

// verify runs the server-side verification for a gateway callback
func (c *Coordinator) verify(ctx context.Context, userID, orderID int64, result CallbackResult) error {
	c.mu.Lock()
	c.state = StateVerifying
	c.mu.Unlock()

	if !result.Complete() {
		c.mu.Lock()
		c.state = StateReady
		c.mu.Unlock()
		c.notifier.Error("Invalid payment response")
		return domain.ErrInvalidPaymentResponse
	}

	verified, err := c.api.VerifyPayment(ctx, &dto.VerificationRequest{
		RazorpayOrderID:   result.GatewayOrderID,
		RazorpayPaymentID: result.GatewayPaymentID,
		RazorpaySignature: result.Signature,
		UserID:            userID,
	})
	if err != nil || !verified {
		c.mu.Lock()
		c.reset()
		c.mu.Unlock()
		c.notifier.Error("Payment verification failed")
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
		}
		return domain.ErrVerificationFailed
	}

	// The gateway has confirmed the payment; a failed status update
	// must not unwind that.
	if orderID != 0 {
		if err := c.api.UpdateOrderPayment(ctx, orderID, result.GatewayPaymentID, domain.PaymentStatusCompleted); err != nil {
			c.log.Error("failed to update order payment status",
				zap.Int64("order_id", orderID), zap.Error(err))
		}
	}

	c.mu.Lock()
	onSuccess := c.onSuccess
	c.onSuccess = nil
	c.reset()
	c.mu.Unlock()

	c.notifier.Success("Payment successful!")
	if onSuccess != nil {
		onSuccess()
	}
	return nil
}

// Close discards the current attempt and its intent
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.reset()
	c.mu.Unlock()
}

// State returns the coordinator's current state
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Intent returns a copy of the stored payment intent, or nil
func (c *Coordinator) Intent() *domain.PaymentIntent {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.intent == nil {
		return nil
	}
	intent := *c.intent
	return &intent
}

// reset must be called with the mutex held
func (c *Coordinator) reset() {
	c.state = StateClosed
	c.intent = nil
	c.orderID = 0
	c.amount = 0
	c.onSuccess = nil
}
