package domain

import "time"

// CartItem is a line in a user's cart. Adding an existing product merges
// quantities instead of duplicating the line.
type CartItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Image     string    `json:"image,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// Cart is keyed by the owning user id; totals are derived from items on
// every write.
type Cart struct {
	UserID     string     `json:"user_id"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Recompute refreshes the derived totals from the item lines.
func (c *Cart) Recompute() {
	c.TotalItems = 0
	c.TotalPrice = 0
	for _, it := range c.Items {
		c.TotalItems += it.Quantity
		c.TotalPrice += it.Price * float64(it.Quantity)
	}
}

// WishlistItem is a saved product reference; duplicates by product id are
// rejected.
type WishlistItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

type Wishlist struct {
	UserID     string         `json:"user_id"`
	Items      []WishlistItem `json:"items"`
	TotalItems int            `json:"total_items"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (w *Wishlist) Recompute() {
	w.TotalItems = len(w.Items)
}

// Preferences is the per-user profile preferences document.
type Preferences struct {
	UserID        string    `json:"user_id"`
	Theme         string    `json:"theme"`
	Currency      string    `json:"currency"`
	Notifications bool      `json:"notifications"`
	Newsletter    bool      `json:"newsletter"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DefaultPreferences is the document a user has before their first
// explicit save.
func DefaultPreferences(userID string) *Preferences {
	return &Preferences{
		UserID:        userID,
		Theme:         "light",
		Currency:      "USD",
		Notifications: true,
		Newsletter:    false,
	}
}
