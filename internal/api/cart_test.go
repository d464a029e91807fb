package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestClient_CartShapeValidation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantItems int
	}{
		{
			name:      "well-formed cart",
			body:      `{"items":[{"productId":1,"name":"Widget","price":10.5,"quantity":2}]}`,
			wantItems: 1,
		},
		{
			name:      "empty item sequence",
			body:      `{"items":[]}`,
			wantItems: 0,
		},
		{
			name:      "missing item sequence falls back to empty",
			body:      `{"id":1,"userId":7}`,
			wantItems: 0,
		},
		{
			name:      "null items falls back to empty",
			body:      `{"items":null}`,
			wantItems: 0,
		},
		{
			name:      "non-object response falls back to empty",
			body:      `"cleared"`,
			wantItems: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			})
			client, _ := newTestClient(t, handler, nil)

			cart, err := client.GetCart(context.Background(), 7)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cart == nil || cart.Items == nil {
				t.Fatal("expected a non-nil cart with non-nil items")
			}
			if len(cart.Items) != tt.wantItems {
				t.Errorf("expected %d items, got %d", tt.wantItems, len(cart.Items))
			}
		})
	}
}

func TestClient_CartServerError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client, _ := newTestClient(t, handler, nil)

	_, err := client.AddToCart(context.Background(), 7, 1, 2)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500 api error, got %v", err)
	}
}

func TestClient_CartRoutes(t *testing.T) {
	var gotMethod, gotPath, gotQuantity string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuantity = r.URL.Query().Get("quantity")
		fmt.Fprint(w, `{"items":[]}`)
	})
	client, _ := newTestClient(t, handler, nil)
	ctx := context.Background()

	tests := []struct {
		name         string
		call         func() error
		wantMethod   string
		wantPath     string
		wantQuantity string
	}{
		{
			name:       "get",
			call:       func() error { _, err := client.GetCart(ctx, 7); return err },
			wantMethod: http.MethodGet, wantPath: "/cart/7",
		},
		{
			name:       "add",
			call:       func() error { _, err := client.AddToCart(ctx, 7, 3, 2); return err },
			wantMethod: http.MethodPost, wantPath: "/cart/7/add/3", wantQuantity: "2",
		},
		{
			name:       "update",
			call:       func() error { _, err := client.UpdateCartItem(ctx, 7, 3, 5); return err },
			wantMethod: http.MethodPut, wantPath: "/cart/7/update/3", wantQuantity: "5",
		},
		{
			name:       "remove",
			call:       func() error { _, err := client.RemoveCartItem(ctx, 7, 3); return err },
			wantMethod: http.MethodDelete, wantPath: "/cart/7/remove/3",
		},
		{
			name:       "clear",
			call:       func() error { _, err := client.ClearCart(ctx, 7); return err },
			wantMethod: http.MethodDelete, wantPath: "/cart/7/clear",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotMethod != tt.wantMethod || gotPath != tt.wantPath {
				t.Errorf("got %s %s, want %s %s", gotMethod, gotPath, tt.wantMethod, tt.wantPath)
			}
			if gotQuantity != tt.wantQuantity {
				t.Errorf("got quantity %q, want %q", gotQuantity, tt.wantQuantity)
			}
		})
	}
}
