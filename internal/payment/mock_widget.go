package payment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// MockWidgetConfig holds configuration for the mock widget
type MockWidgetConfig struct {
	// SuccessRate is the probability the simulated user completes the
	// payment (0.0 to 1.0); otherwise the widget is dismissed
	SuccessRate float64

	// Delay is the simulated user interaction time
	Delay time.Duration
}

// DefaultMockWidgetConfig returns default configuration
func DefaultMockWidgetConfig() *MockWidgetConfig {
	return &MockWidgetConfig{
		SuccessRate: 0.95,
		Delay:       100 * time.Millisecond,
	}
}

// MockWidget simulates the external payment widget for development
// and load testing. No gateway is contacted; identifiers are
// fabricated, so server-side verification against a real gateway will
// reject them unless the backend runs in a test mode.
type MockWidget struct {
	config *MockWidgetConfig
}

// NewMockWidget creates a mock widget
func NewMockWidget(config *MockWidgetConfig) *MockWidget {
	if config == nil {
		config = DefaultMockWidgetConfig()
	}
	if config.SuccessRate < 0 {
		config.SuccessRate = 0
	}
	if config.SuccessRate > 1 {
		config.SuccessRate = 1
	}
	return &MockWidget{config: config}
}

// Launch simulates the user interacting with the payment surface
func (w *MockWidget) Launch(ctx context.Context, params *LaunchParams) (<-chan CallbackResult, error) {
	if params == nil {
		return nil, fmt.Errorf("launch params are required")
	}

	results := make(chan CallbackResult, 1)
	go func() {
		defer close(results)

		if w.config.Delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.config.Delay):
			}
		}

		if rand.Float64() >= w.config.SuccessRate {
			// Simulated dismissal: channel closes without a result.
			return
		}

		results <- CallbackResult{
			GatewayOrderID:   params.GatewayOrderID,
			GatewayPaymentID: fmt.Sprintf("mock_pay_%s", uuid.New().String()[:8]),
			Signature:        fmt.Sprintf("mock_sig_%s", uuid.New().String()[:8]),
		}
	}()

	return results, nil
}

// Name returns the widget name
func (w *MockWidget) Name() string {
	return "mock"
}
