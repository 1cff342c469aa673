package domain

import "time"

// Order statuses. pending is initial; completed and cancelled are terminal.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// OrderItem carries the price resolved from the product at creation time;
// client-supplied prices are never trusted.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Items      []OrderItem `json:"items"`
	Total      float64     `json:"total"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	CreatedBy  string      `json:"created_by,omitempty"`
}

// ValidOrderStatus reports whether s names a known order status.
func ValidOrderStatus(s string) bool {
	return s == OrderPending || s == OrderCompleted || s == OrderCancelled
}

// CanTransition reports whether an order may move from one status to
// another. Only pending orders move; the two end states are terminal.
func CanTransition(from, to string) bool {
	if from != OrderPending {
		return false
	}
	return to == OrderCompleted || to == OrderCancelled
}
