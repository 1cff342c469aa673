package domain

import "time"

// Discount is never mutated after creation, only deactivated.
type Discount struct {
	ID         string     `json:"id"`
	ProductID  string     `json:"product_id"`
	Percentage float64    `json:"percentage"` // 0..100
	Reason     string     `json:"reason"`
	StartAt    time.Time  `json:"start_at"`
	EndAt      *time.Time `json:"end_at,omitempty"`
	Active     bool       `json:"active"`
	CreatedBy  string     `json:"created_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// InEffect reports whether the discount applies at the given instant.
func (d *Discount) InEffect(now time.Time) bool {
	if !d.Active || d.StartAt.After(now) {
		return false
	}
	return d.EndAt == nil || !d.EndAt.Before(now)
}

// DiscountedPrice applies the percentage to a base price.
func (d *Discount) DiscountedPrice(base float64) float64 {
	return base * (1 - d.Percentage/100)
}
