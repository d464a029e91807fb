// Package webhook implements the payment widget boundary with a local
// HTTP callback server: the gateway's hosted checkout page redirects
// the browser back here with the payment identifiers, which are fed
// into the coordinator's pending attempt.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/Shanmukha18/unibuy-client/internal/payment"
	"github.com/Shanmukha18/unibuy-client/pkg/logger"
	"github.com/Shanmukha18/unibuy-client/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrNotRunning is returned when Launch is called before Start
var ErrNotRunning = errors.New("callback server not running")

// Config holds callback server settings
type Config struct {
	Addr string
}

// callbackRequest is the payload the hosted checkout page posts back
type callbackRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" form:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id" form:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature" form:"razorpay_signature"`
}

// cancelRequest dismisses a pending attempt
type cancelRequest struct {
	OrderID string `json:"order_id" form:"order_id"`
}

// CallbackWidget implements payment.Widget on top of a local gin
// server. One pending attempt is tracked per gateway order id.
type CallbackWidget struct {
	addr   string
	log    *logger.Logger
	engine *gin.Engine
	server *http.Server

	mu      sync.Mutex
	running bool
	pending map[string]chan payment.CallbackResult
}

// NewCallbackWidget creates the widget; call Start before Launch
func NewCallbackWidget(cfg *Config) *CallbackWidget {
	gin.SetMode(gin.ReleaseMode)

	w := &CallbackWidget{
		addr:    cfg.Addr,
		log:     logger.Get(),
		pending: make(map[string]chan payment.CallbackResult),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(Logger(w.log))
	engine.POST("/payment/callback", w.handleCallback)
	engine.POST("/payment/cancel", w.handleCancel)
	w.engine = engine
	return w
}

// Handler exposes the callback routes for embedding into an existing
// server instead of running a standalone listener.
func (w *CallbackWidget) Handler() http.Handler {
	return w.engine
}

// Start begins serving callbacks. It returns once the listener is
// running; serve errors surface through the log.
func (w *CallbackWidget) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.server = &http.Server{Addr: w.addr, Handler: w.engine}
	w.running = true
	w.mu.Unlock()

	go func() {
		if err := w.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.log.Error("callback server terminated", zap.Error(err))
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
		}
	}()
	return nil
}

// Shutdown stops the callback server and dismisses pending attempts
func (w *CallbackWidget) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	server := w.server
	w.running = false
	for id, ch := range w.pending {
		close(ch)
		delete(w.pending, id)
	}
	w.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// Launch registers a pending attempt and points the user at the
// gateway's hosted checkout page. The returned channel delivers the
// callback result, or closes on dismissal.
func (w *CallbackWidget) Launch(ctx context.Context, params *payment.LaunchParams) (<-chan payment.CallbackResult, error) {
	if params == nil || params.GatewayOrderID == "" {
		return nil, errors.New("gateway order id is required")
	}

	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil, ErrNotRunning
	}
	if prev, ok := w.pending[params.GatewayOrderID]; ok {
		// A relaunched attempt supersedes the previous one.
		close(prev)
	}
	ch := make(chan payment.CallbackResult, 1)
	w.pending[params.GatewayOrderID] = ch
	w.mu.Unlock()

	w.log.Info("awaiting payment callback",
		zap.String("gateway_order_id", params.GatewayOrderID),
		zap.Int64("amount_minor_units", params.Amount),
		zap.String("currency", params.Currency),
		zap.String("callback_addr", w.addr))

	return ch, nil
}

// Name returns the widget name
func (w *CallbackWidget) Name() string {
	return "callback-server"
}

func (w *CallbackWidget) handleCallback(c *gin.Context) {
	var req callbackRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.RazorpayOrderID == "" {
		response.BadRequest(c, "razorpay_order_id is required")
		return
	}

	w.mu.Lock()
	ch, ok := w.pending[req.RazorpayOrderID]
	if ok {
		delete(w.pending, req.RazorpayOrderID)
	}
	w.mu.Unlock()

	if !ok {
		response.NotFound(c, fmt.Sprintf("no pending payment for order %s", req.RazorpayOrderID))
		return
	}

	ch <- payment.CallbackResult{
		GatewayOrderID:   req.RazorpayOrderID,
		GatewayPaymentID: req.RazorpayPaymentID,
		Signature:        req.RazorpaySignature,
	}
	close(ch)

	response.Success(c, gin.H{"received": true})
}

func (w *CallbackWidget) handleCancel(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	w.mu.Lock()
	ch, ok := w.pending[req.OrderID]
	if ok {
		delete(w.pending, req.OrderID)
	}
	w.mu.Unlock()

	if !ok {
		response.NotFound(c, fmt.Sprintf("no pending payment for order %s", req.OrderID))
		return
	}

	// Dismissal: close without a result.
	close(ch)
	response.Success(c, gin.H{"cancelled": true})
}
