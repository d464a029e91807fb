package payment

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestMockWidget_Completes(t *testing.T) {
	widget := NewMockWidget(&MockWidgetConfig{SuccessRate: 1.0, Delay: 0})

	results, err := widget.Launch(context.Background(), &LaunchParams{
		GatewayOrderID: "order_gw_123",
		Amount:         25000,
		Currency:       "INR",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, ok := <-results
	if !ok {
		t.Fatal("expected a callback result")
	}
	if result.GatewayOrderID != "order_gw_123" {
		t.Errorf("unexpected gateway order id: %q", result.GatewayOrderID)
	}
	if !strings.HasPrefix(result.GatewayPaymentID, "mock_pay_") {
		t.Errorf("unexpected payment id: %q", result.GatewayPaymentID)
	}
	if !result.Complete() {
		t.Error("expected a complete result")
	}

	// At most one result, then the channel closes.
	if _, ok := <-results; ok {
		t.Error("expected closed channel after the result")
	}
}

func TestMockWidget_Dismisses(t *testing.T) {
	widget := NewMockWidget(&MockWidgetConfig{SuccessRate: 0, Delay: 0})

	results, err := widget.Launch(context.Background(), &LaunchParams{GatewayOrderID: "order_gw_123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := <-results; ok {
		t.Error("expected dismissal (closed channel without a result)")
	}
}

func TestMockWidget_HonorsContext(t *testing.T) {
	widget := NewMockWidget(&MockWidgetConfig{SuccessRate: 1.0, Delay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	results, err := widget.Launch(ctx, &LaunchParams{GatewayOrderID: "order_gw_123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()

	select {
	case _, ok := <-results:
		if ok {
			t.Error("expected no result after cancellation")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel never closed after cancellation")
	}
}

func TestMockWidget_RequiresParams(t *testing.T) {
	widget := NewMockWidget(nil)
	if _, err := widget.Launch(context.Background(), nil); err == nil {
		t.Error("expected error for nil params")
	}
}

func TestCallbackResult_Complete(t *testing.T) {
	tests := []struct {
		name   string
		result CallbackResult
		want   bool
	}{
		{"all present", CallbackResult{"o", "p", "s"}, true},
		{"missing order", CallbackResult{"", "p", "s"}, false},
		{"missing payment", CallbackResult{"o", "", "s"}, false},
		{"missing signature", CallbackResult{"o", "p", ""}, false},
		{"zero value", CallbackResult{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}
