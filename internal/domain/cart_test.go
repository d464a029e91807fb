package domain

import "testing"

func TestCartTotal(t *testing.T) {
	tests := []struct {
		name  string
		cart  *Cart
		want  float64
		count int
	}{
		{
			name:  "nil cart",
			cart:  nil,
			want:  0,
			count: 0,
		},
		{
			name:  "empty cart",
			cart:  EmptyCart(),
			want:  0,
			count: 0,
		},
		{
			name: "mixed quantities",
			cart: &Cart{Items: []CartItem{
				{ProductID: 1, Price: 10, Quantity: 2},
				{ProductID: 2, Price: 5, Quantity: 0},
			}},
			want:  20.00,
			count: 2,
		},
		{
			name: "negative price counts as zero",
			cart: &Cart{Items: []CartItem{
				{ProductID: 1, Price: -10, Quantity: 3},
				{ProductID: 2, Price: 4.50, Quantity: 2},
			}},
			want:  9.00,
			count: 5,
		},
		{
			name: "negative quantity counts as zero",
			cart: &Cart{Items: []CartItem{
				{ProductID: 1, Price: 10, Quantity: -2},
				{ProductID: 2, Price: 3, Quantity: 1},
			}},
			want:  3.00,
			count: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cart.Total(); got != tt.want {
				t.Errorf("Total() = %v, want %v", got, tt.want)
			}
			if got := tt.cart.ItemCount(); got != tt.count {
				t.Errorf("ItemCount() = %v, want %v", got, tt.count)
			}
		})
	}
}

func TestEmptyCart(t *testing.T) {
	cart := EmptyCart()
	if cart.Items == nil {
		t.Error("expected non-nil item slice")
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(cart.Items))
	}
}
