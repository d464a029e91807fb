package domain

import (
	"bytes"
	"time"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusUnknown   OrderStatus = "UNKNOWN"
)

// ParseOrderStatus maps a server-provided status string onto the known
// set, falling back to UNKNOWN rather than trusting arbitrary input
func ParseOrderStatus(s string) OrderStatus {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s)
	default:
		return OrderStatusUnknown
	}
}

// UnmarshalJSON maps any unrecognized status onto UNKNOWN instead of
// letting arbitrary server strings flow into client state
func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(data, `"`))
	*s = ParseOrderStatus(raw)
	return nil
}

// Timestamp decodes both RFC 3339 and the backend's zone-less
// LocalDateTime serialization
type Timestamp struct {
	time.Time
}

const localDateTimeLayout = "2006-01-02T15:04:05.999999999"

// UnmarshalJSON accepts RFC 3339 or zone-less timestamps; anything
// else leaves the zero time rather than failing the whole order decode
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(data, `"`))
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		t.Time = parsed
		return nil
	}
	if parsed, err := time.Parse(localDateTimeLayout, raw); err == nil {
		t.Time = parsed
		return nil
	}
	t.Time = time.Time{}
	return nil
}

// OrderItem is one line of a placed order
type OrderItem struct {
	ID              int64   `json:"id"`
	ProductID       int64   `json:"productId"`
	ProductName     string  `json:"productName"`
	ProductImageURL string  `json:"productImageUrl,omitempty"`
	ProductPrice    float64 `json:"productPrice"`
	Quantity        int     `json:"quantity"`
}

// Order is a read-only view of a server-side order. The client never
// constructs one locally; it only displays what the server returns and
// updates payment status remotely.
type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	Status      OrderStatus `json:"status"`
	OrderDate   Timestamp   `json:"orderDate"`
	OrderItems  []OrderItem `json:"orderItems"`
	TotalAmount float64     `json:"totalAmount"`
}
