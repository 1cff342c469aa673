package domain

import "time"

// Product statuses
const (
	ProductActive  = "active"
	ProductDeleted = "deleted"
)

// Product represents a catalog product. Delete is a soft tombstone:
// status flips to deleted and the document stays in the collection.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	SKU         string    `json:"sku"`
	Status      string    `json:"status"`
	Value       float64   `json:"value"` // derived: price * stock
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
	UpdatedBy   string    `json:"updated_by,omitempty"`
}

// Deleted reports whether the product is soft-tombstoned.
func (p *Product) Deleted() bool {
	return p.Status == ProductDeleted
}

// ComputeValue refreshes the derived inventory value.
func (p *Product) ComputeValue() {
	p.Value = p.Price * float64(p.Stock)
}
