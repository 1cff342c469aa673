package store

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable signals a transient backend failure; callers with a
	// defined sample payload may substitute it.
	ErrUnavailable = errors.New("store unavailable")

	// ErrNotFound is returned by Get/Update/Delete on a missing id.
	ErrNotFound = errors.New("document not found")

	// ErrConflict is returned by Create when the supplied id already exists.
	ErrConflict = errors.New("document already exists")
)

// Document is an arbitrary JSON-shaped record. The store does not
// schema-validate; it round-trips whatever it is given.
type Document = map[string]interface{}

// Store is an opaque mapping from collection name to a bag of documents
// keyed by string id. An empty collection is a successful empty list,
// never an error. Writes are durable before the call returns.
type Store interface {
	Create(ctx context.Context, collection string, doc Document) (string, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Update(ctx context.Context, collection, id string, patch Document) error
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection string) ([]Document, error)
	Query(ctx context.Context, collection, field string, value interface{}) ([]Document, error)
	Count(ctx context.Context, collection string) (int, error)
	Ping(ctx context.Context) error
}
