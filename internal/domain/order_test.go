package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		in   string
		want OrderStatus
	}{
		{"PENDING", OrderStatusPending},
		{"CONFIRMED", OrderStatusConfirmed},
		{"SHIPPED", OrderStatusShipped},
		{"DELIVERED", OrderStatusDelivered},
		{"CANCELLED", OrderStatusCancelled},
		{"REFUNDED", OrderStatusUnknown},
		{"", OrderStatusUnknown},
		{"pending", OrderStatusUnknown},
	}

	for _, tt := range tests {
		if got := ParseOrderStatus(tt.in); got != tt.want {
			t.Errorf("ParseOrderStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrderDecode(t *testing.T) {
	raw := `{
		"id": 42,
		"userId": 7,
		"status": "SOMETHING_NEW",
		"orderDate": "2025-03-14T18:30:00.123456",
		"orderItems": [
			{"id": 1, "productId": 9, "productName": "Widget", "productPrice": 199.99, "quantity": 2}
		],
		"totalAmount": 399.98
	}`

	var order Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Status != OrderStatusUnknown {
		t.Errorf("expected unknown status, got %v", order.Status)
	}
	if order.OrderDate.IsZero() {
		t.Error("expected order date to be parsed")
	}
	if got := order.OrderDate.Month(); got != time.March {
		t.Errorf("expected March, got %v", got)
	}
	if len(order.OrderItems) != 1 || order.OrderItems[0].ProductName != "Widget" {
		t.Errorf("unexpected order items: %+v", order.OrderItems)
	}
}

func TestTimestampDecode(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantZero bool
	}{
		{"rfc3339", `"2025-03-14T18:30:00Z"`, false},
		{"zone-less", `"2025-03-14T18:30:00.123456"`, false},
		{"zone-less without fraction", `"2025-03-14T18:30:00"`, false},
		{"null", `null`, true},
		{"empty", `""`, true},
		{"garbage", `"not-a-date"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.in), &ts); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ts.IsZero() != tt.wantZero {
				t.Errorf("IsZero() = %v, want %v", ts.IsZero(), tt.wantZero)
			}
		})
	}
}
