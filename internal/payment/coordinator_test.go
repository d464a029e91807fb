package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Shanmukha18/unibuy-client/internal/api"
	"github.com/Shanmukha18/unibuy-client/internal/domain"
	"github.com/Shanmukha18/unibuy-client/internal/dto"
	"github.com/Shanmukha18/unibuy-client/internal/notify"
	"github.com/Shanmukha18/unibuy-client/internal/session"
	"github.com/Shanmukha18/unibuy-client/internal/store"
)

// scriptedWidget delivers a preconfigured outcome
type scriptedWidget struct {
	result    *CallbackResult // nil means dismissal
	launchErr error
	launches  int32
	gotParams *LaunchParams
}

func (w *scriptedWidget) Launch(ctx context.Context, params *LaunchParams) (<-chan CallbackResult, error) {
	atomic.AddInt32(&w.launches, 1)
	w.gotParams = params
	if w.launchErr != nil {
		return nil, w.launchErr
	}
	ch := make(chan CallbackResult, 1)
	if w.result != nil {
		ch <- *w.result
	}
	close(ch)
	return ch, nil
}

func (w *scriptedWidget) Name() string { return "scripted" }

// paymentBackend fakes the payment and order endpoints
type paymentBackend struct {
	mux          *http.ServeMux
	createCalls  int32
	verifyCalls  int32
	orderCalls   int32
	verifyResult bool
	failCreate   bool
	failVerify   bool

	lastVerify dto.VerificationRequest
	lastOrder  string // paymentStatus query of the order update
}

func newPaymentBackend() *paymentBackend {
	b := &paymentBackend{mux: http.NewServeMux(), verifyResult: true}

	b.mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.LoginResponse{
			AccessToken:  "token-abc",
			RefreshToken: "refresh-abc",
			UserID:       7,
			Username:     "alice",
		})
	})
	b.mux.HandleFunc("/payments/create-order", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.createCalls, 1)
		if b.failCreate {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(dto.ErrorResponse{Message: "Gateway unavailable"})
			return
		}
		var req dto.PaymentOrderRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(dto.PaymentOrderResponse{
			OrderID:  "order_gw_123",
			Currency: req.Currency,
			Amount:   req.Amount,
			Key:      "rzp_test_key",
			Name:     "E-Commerce Store",
		})
	})
	b.mux.HandleFunc("/payments/verify", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.verifyCalls, 1)
		if b.failVerify {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewDecoder(r.Body).Decode(&b.lastVerify)
		fmt.Fprint(w, b.verifyResult)
	})
	b.mux.HandleFunc("/orders/42/payment", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.orderCalls, 1)
		b.lastOrder = r.URL.Query().Get("paymentStatus")
	})
	return b
}

func newTestCoordinator(t *testing.T, backend *paymentBackend, widget Widget) (*Coordinator, *notify.Recorder) {
	t.Helper()
	server := httptest.NewServer(backend.mux)
	t.Cleanup(server.Close)

	creds := store.NewMemoryStore()
	client, err := api.NewClient(&api.Config{BaseURL: server.URL}, creds)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	recorder := notify.NewRecorder()
	sess := session.New(client, creds, recorder)
	if !sess.Login(context.Background(), "alice", "secret") {
		t.Fatal("login failed")
	}
	return NewCoordinator(client, sess, widget, recorder, nil), recorder
}

func TestCoordinator_OpenRejectsInvalidAmount(t *testing.T) {
	backend := newPaymentBackend()
	coord, recorder := newTestCoordinator(t, backend, &scriptedWidget{})

	err := coord.Open(context.Background(), 42, 0, nil)
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if got := atomic.LoadInt32(&backend.createCalls); got != 0 {
		t.Errorf("expected no network call for invalid amount, got %d", got)
	}
	if recorder.LastError() != "Invalid amount for payment" {
		t.Errorf("unexpected notification: %q", recorder.LastError())
	}
	if coord.State() != StateClosed {
		t.Errorf("expected closed state, got %v", coord.State())
	}
}

func TestCoordinator_OpenRequiresLogin(t *testing.T) {
	backend := newPaymentBackend()
	server := httptest.NewServer(backend.mux)
	t.Cleanup(server.Close)

	creds := store.NewMemoryStore()
	client, err := api.NewClient(&api.Config{BaseURL: server.URL}, creds)
	if err != nil {
		t.Fatal(err)
	}
	recorder := notify.NewRecorder()
	sess := session.New(client, creds, recorder)
	coord := NewCoordinator(client, sess, &scriptedWidget{}, recorder, nil)

	if err := coord.Open(context.Background(), 42, 250.00, nil); !errors.Is(err, domain.ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if recorder.LastError() != "User not authenticated" {
		t.Errorf("unexpected notification: %q", recorder.LastError())
	}
}

func TestCoordinator_OpenCreatesIntent(t *testing.T) {
	backend := newPaymentBackend()
	coord, _ := newTestCoordinator(t, backend, &scriptedWidget{})

	if err := coord.Open(context.Background(), 42, 250.00, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coord.State() != StateReady {
		t.Fatalf("expected ready state, got %v", coord.State())
	}

	intent := coord.Intent()
	if intent == nil {
		t.Fatal("expected stored intent")
	}
	if intent.GatewayOrderID != "order_gw_123" {
		t.Errorf("unexpected gateway order id: %q", intent.GatewayOrderID)
	}
	if intent.GatewayKey != "rzp_test_key" {
		t.Errorf("unexpected gateway key: %q", intent.GatewayKey)
	}
	if got := intent.AmountMinorUnits(); got != 25000 {
		t.Errorf("expected 25000 minor units, got %d", got)
	}
	if intent.Currency != "INR" {
		t.Errorf("expected INR, got %q", intent.Currency)
	}
}

func TestCoordinator_ReopenReusesIntent(t *testing.T) {
	backend := newPaymentBackend()
	coord, _ := newTestCoordinator(t, backend, &scriptedWidget{})
	ctx := context.Background()

	if err := coord.Open(ctx, 42, 250.00, nil); err != nil {
		t.Fatal(err)
	}
	if err := coord.Open(ctx, 42, 250.00, nil); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&backend.createCalls); got != 1 {
		t.Errorf("expected one intent for repeated open, got %d", got)
	}
}

func TestCoordinator_OpenFailureResets(t *testing.T) {
	backend := newPaymentBackend()
	backend.failCreate = true
	coord, recorder := newTestCoordinator(t, backend, &scriptedWidget{})

	if err := coord.Open(context.Background(), 42, 250.00, nil); err == nil {
		t.Fatal("expected error")
	}
	if coord.State() != StateClosed {
		t.Errorf("expected closed state, got %v", coord.State())
	}
	if recorder.LastError() != "Gateway unavailable" {
		t.Errorf("expected server message, got %q", recorder.LastError())
	}
}

func TestCoordinator_PaySuccess(t *testing.T) {
	backend := newPaymentBackend()
	widget := &scriptedWidget{result: &CallbackResult{
		GatewayOrderID:   "order_gw_123",
		GatewayPaymentID: "pay_456",
		Signature:        "sig_789",
	}}
	coord, recorder := newTestCoordinator(t, backend, widget)
	ctx := context.Background()

	var successCalls int32
	if err := coord.Open(ctx, 42, 250.00, func() { atomic.AddInt32(&successCalls, 1) }); err != nil {
		t.Fatal(err)
	}
	if err := coord.Pay(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if widget.gotParams == nil {
		t.Fatal("widget never launched")
	}
	if widget.gotParams.Amount != 25000 {
		t.Errorf("expected 25000 minor units on the wire, got %d", widget.gotParams.Amount)
	}
	if got := atomic.LoadInt32(&backend.verifyCalls); got != 1 {
		t.Errorf("expected one verification, got %d", got)
	}
	if backend.lastVerify.RazorpayPaymentID != "pay_456" || backend.lastVerify.UserID != 7 {
		t.Errorf("unexpected verification request: %+v", backend.lastVerify)
	}
	if got := atomic.LoadInt32(&backend.orderCalls); got != 1 {
		t.Errorf("expected one order payment update, got %d", got)
	}
	if backend.lastOrder != "COMPLETED" {
		t.Errorf("expected COMPLETED status, got %q", backend.lastOrder)
	}
	if got := atomic.LoadInt32(&successCalls); got != 1 {
		t.Errorf("expected success callback exactly once, got %d", got)
	}
	if recorder.LastSuccess() != "Payment successful!" {
		t.Errorf("unexpected notification: %q", recorder.LastSuccess())
	}
	if coord.State() != StateClosed {
		t.Errorf("expected closed state after success, got %v", coord.State())
	}
}

func TestCoordinator_PayDismissal(t *testing.T) {
	backend := newPaymentBackend()
	coord, _ := newTestCoordinator(t, backend, &scriptedWidget{result: nil})
	ctx := context.Background()

	if err := coord.Open(ctx, 42, 250.00, nil); err != nil {
		t.Fatal(err)
	}
	if err := coord.Pay(ctx); err != nil {
		t.Fatalf("dismissal is not an error, got %v", err)
	}
	if got := atomic.LoadInt32(&backend.verifyCalls); got != 0 {
		t.Errorf("dismissal must not verify, got %d calls", got)
	}
	if coord.State() != StateClosed {
		t.Errorf("expected closed state, got %v", coord.State())
	}
}

func TestCoordinator_PayIncompleteCallback(t *testing.T) {
	backend := newPaymentBackend()
	widget := &scriptedWidget{result: &CallbackResult{
		GatewayOrderID: "order_gw_123",
		// missing payment id and signature
	}}
	coord, recorder := newTestCoordinator(t, backend, widget)
	ctx := context.Background()

	if err := coord.Open(ctx, 42, 250.00, nil); err != nil {
		t.Fatal(err)
	}
	if err := coord.Pay(ctx); !errors.Is(err, domain.ErrInvalidPaymentResponse) {
		t.Fatalf("expected ErrInvalidPaymentResponse, got %v", err)
	}
	if got := atomic.LoadInt32(&backend.verifyCalls); got != 0 {
		t.Errorf("incomplete callback must not verify, got %d calls", got)
	}
	if recorder.LastError() != "Invalid payment response" {
		t.Errorf("unexpected notification: %q", recorder.LastError())
	}
	// The intent survives so the user can retry.
	if coord.State() != StateReady {
		t.Errorf("expected ready state, got %v", coord.State())
	}
}

func TestCoordinator_PayVerificationRejected(t *testing.T) {
	backend := newPaymentBackend()
	backend.verifyResult = false
	widget := &scriptedWidget{result: &CallbackResult{
		GatewayOrderID:   "order_gw_123",
		GatewayPaymentID: "pay_456",
		Signature:        "sig_bad",
	}}
	coord, recorder := newTestCoordinator(t, backend, widget)
	ctx := context.Background()

	var successCalls int32
	if err := coord.Open(ctx, 42, 250.00, func() { atomic.AddInt32(&successCalls, 1) }); err != nil {
		t.Fatal(err)
	}
	if err := coord.Pay(ctx); !errors.Is(err, domain.ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
	if got := atomic.LoadInt32(&backend.orderCalls); got != 0 {
		t.Errorf("rejected payment must not update the order, got %d calls", got)
	}
	if got := atomic.LoadInt32(&successCalls); got != 0 {
		t.Errorf("success callback must not fire, got %d", got)
	}
	if recorder.LastError() != "Payment verification failed" {
		t.Errorf("unexpected notification: %q", recorder.LastError())
	}
	if coord.State() != StateClosed {
		t.Errorf("expected closed state, got %v", coord.State())
	}
}

func TestCoordinator_PayWidgetUnavailable(t *testing.T) {
	backend := newPaymentBackend()
	widget := &scriptedWidget{launchErr: errors.New("no display")}
	coord, recorder := newTestCoordinator(t, backend, widget)
	ctx := context.Background()

	if err := coord.Open(ctx, 42, 250.00, nil); err != nil {
		t.Fatal(err)
	}
	if err := coord.Pay(ctx); !errors.Is(err, domain.ErrWidgetUnavailable) {
		t.Fatalf("expected ErrWidgetUnavailable, got %v", err)
	}
	if recorder.LastError() != "Payment widget unavailable, please retry" {
		t.Errorf("unexpected notification: %q", recorder.LastError())
	}
	// The intent survives so the user can retry.
	if coord.State() != StateReady {
		t.Errorf("expected ready state, got %v", coord.State())
	}
	if err := coord.Pay(ctx); !errors.Is(err, domain.ErrWidgetUnavailable) {
		t.Fatalf("retry should reach the widget again, got %v", err)
	}
}

func TestCoordinator_PayWithoutIntent(t *testing.T) {
	backend := newPaymentBackend()
	coord, _ := newTestCoordinator(t, backend, &scriptedWidget{})

	if err := coord.Pay(context.Background()); !errors.Is(err, domain.ErrIntentNotReady) {
		t.Fatalf("expected ErrIntentNotReady, got %v", err)
	}
}

func TestCoordinator_Close(t *testing.T) {
	backend := newPaymentBackend()
	coord, _ := newTestCoordinator(t, backend, &scriptedWidget{})
	ctx := context.Background()

	if err := coord.Open(ctx, 42, 250.00, nil); err != nil {
		t.Fatal(err)
	}
	coord.Close()

	if coord.State() != StateClosed {
		t.Errorf("expected closed state, got %v", coord.State())
	}
	if coord.Intent() != nil {
		t.Error("expected intent to be discarded")
	}
	if err := coord.Pay(ctx); !errors.Is(err, domain.ErrIntentNotReady) {
		t.Errorf("expected ErrIntentNotReady after close, got %v", err)
	}
}
