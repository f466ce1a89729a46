package domain

import "time"

// LineItem represents one menu item and its requested quantity within a cart.
type LineItem struct {
	MenuItemID  string `json:"menu_item_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"image_url,omitempty"`
}

// LineTotal returns unit price times quantity for this line (in cents).
func (li *LineItem) LineTotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// Cart is the set of line items a user intends to order from a single
// restaurant. A cart binds to exactly one restaurant at a time; every line
// item belongs to RestaurantID.
type Cart struct {
	UserID       string     `json:"user_id"`
	RestaurantID string     `json:"restaurant_id"`
	Items        []LineItem `json:"items"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TotalAmount calculates the subtotal of all line items (in cents).
func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// ItemCount returns the sum of quantities across all line items.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItemIndex returns the index of the line item with the given menu item
// ID, or -1 if not present.
func (c *Cart) FindItemIndex(menuItemID string) int {
	for i := range c.Items {
		if c.Items[i].MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}
