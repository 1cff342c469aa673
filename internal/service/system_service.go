package service

import (
	"context"
	"fmt"

	"retailgenie/internal/repository"
	"retailgenie/internal/store"

	"github.com/google/uuid"
)

// DatabaseStatus reports store reachability and per-collection counts.
type DatabaseStatus struct {
	Connected      bool           `json:"database_connected"`
	Collections    map[string]int `json:"collections"`
	TotalDocuments int            `json:"total_documents"`
}

// SystemService backs the database admin surface.
type SystemService interface {
	DatabaseStatus(ctx context.Context) (*DatabaseStatus, error)
	InitCollections(ctx context.Context) (map[string]string, error)
}

type systemService struct {
	store store.Store
}

func NewSystemService(s store.Store) SystemService {
	return &systemService{store: s}
}

func (s *systemService) DatabaseStatus(ctx context.Context) (*DatabaseStatus, error) {
	status := &DatabaseStatus{Collections: map[string]int{}}

	if err := s.store.Ping(ctx); err != nil {
		return status, nil
	}
	status.Connected = true

	for _, collection := range repository.Collections {
		count, err := s.store.Count(ctx, collection)
		if err != nil {
			count = 0
		}
		status.Collections[collection] = count
		status.TotalDocuments += count
	}
	return status, nil
}

// InitCollections seeds every empty collection with a marker document so
// the database surface reports them as present.
func (s *systemService) InitCollections(ctx context.Context) (map[string]string, error) {
	results := map[string]string{}
	for _, collection := range repository.Collections {
		count, err := s.store.Count(ctx, collection)
		if err != nil {
			results[collection] = fmt.Sprintf("error: %v", err)
			continue
		}
		if count > 0 {
			results[collection] = fmt.Sprintf("exists (%d docs)", count)
			continue
		}

		doc := store.Document{
			"id":          uuid.New().String(),
			"type":        "init_marker",
			"initialized": true,
		}
		if _, err := s.store.Create(ctx, collection, doc); err != nil {
			results[collection] = fmt.Sprintf("error: %v", err)
			continue
		}
		results[collection] = "initialized"
	}
	return results, nil
}
