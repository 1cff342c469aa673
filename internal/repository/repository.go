package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"retailgenie/internal/store"
)

// Collection names
const (
	CollectionUsers       = "users"
	CollectionProducts    = "products"
	CollectionCustomers   = "customers"
	CollectionOrders      = "orders"
	CollectionFeedback    = "feedback"
	CollectionCarts       = "carts"
	CollectionWishlists   = "wishlists"
	CollectionDiscounts   = "discounts"
	CollectionPreferences = "preferences"
)

// Collections lists every collection the service manages, in the order
// the database status and init endpoints report them.
var Collections = []string{
	CollectionUsers,
	CollectionProducts,
	CollectionCustomers,
	CollectionOrders,
	CollectionFeedback,
	CollectionCarts,
	CollectionWishlists,
	CollectionDiscounts,
}

// Pagination defaults and bounds
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Page describes a window over a list result.
type Page struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ClampPage normalises limit/offset to the allowed ranges.
func ClampPage(limit, offset int) (int, int) {
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// toDoc converts an entity to a store document via its JSON encoding, so
// the stored shape matches the wire shape field for field.
func toDoc(v interface{}) (store.Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var doc store.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}

// fromDoc decodes a store document into an entity.
func fromDoc(doc store.Document, v interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// nowUTC stamps server-authoritative timestamps, truncated so they
// round-trip through JSON identically.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
