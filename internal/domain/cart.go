package domain

// CartItem represents one line of the server-side cart
type CartItem struct {
	ProductID   int64   `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Quantity    int     `json:"quantity"`
}

// Cart mirrors the server-side cart. The server is authoritative; a
// Cart held by the client is a cache and is only ever replaced
// wholesale with a server response or the empty cart.
type Cart struct {
	Items []CartItem `json:"items"`
}

// EmptyCart returns the safe fallback cart
func EmptyCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// Total sums price*quantity over all items. Absent (non-positive)
// price or quantity counts as zero, matching the server's own
// defensive accounting.
func (c *Cart) Total() float64 {
	if c == nil {
		return 0
	}
	var total float64
	for _, item := range c.Items {
		price := item.Price
		if price < 0 {
			price = 0
		}
		qty := item.Quantity
		if qty < 0 {
			qty = 0
		}
		total += price * float64(qty)
	}
	return total
}

// ItemCount sums the quantities of all items, treating negative
// quantities as zero
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	var count int
	for _, item := range c.Items {
		if item.Quantity > 0 {
			count += item.Quantity
		}
	}
	return count
}
