package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each collection in a hash of id -> JSON document plus a
// list recording insertion order, so List is deterministic.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient builds a client from configured connection settings.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func docsKey(collection string) string {
	return fmt.Sprintf("rg:%s", collection)
}

func orderKey(collection string) string {
	return fmt.Sprintf("rg:%s:order", collection)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (s *RedisStore) Create(ctx context.Context, collection string, doc Document) (string, error) {
	id, _ := doc["id"].(string)
	if id == "" {
		id = uuid.New().String()
		doc["id"] = id
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	created, err := s.client.HSetNX(ctx, docsKey(collection), id, raw).Result()
	if err != nil {
		return "", unavailable(err)
	}
	if !created {
		return "", ErrConflict
	}

	if err := s.client.RPush(ctx, orderKey(collection), id).Err(); err != nil {
		return "", unavailable(err)
	}

	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, collection, id string) (Document, error) {
	raw, err := s.client.HGet(ctx, docsKey(collection), id).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable(err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

// Update merges patch into the stored document and writes it back in a
// single hash write. Same-document writes are serialised only as far as
// Redis serialises them; the single-writer assumption holds upstream.
func (s *RedisStore) Update(ctx context.Context, collection, id string, patch Document) error {
	doc, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}

	for k, v := range patch {
		doc[k] = v
	}
	doc["id"] = id

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := s.client.HSet(ctx, docsKey(collection), id, raw).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, collection, id string) error {
	removed, err := s.client.HDel(ctx, docsKey(collection), id).Result()
	if err != nil {
		return unavailable(err)
	}
	if removed == 0 {
		return ErrNotFound
	}

	if err := s.client.LRem(ctx, orderKey(collection), 0, id).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, collection string) ([]Document, error) {
	ids, err := s.client.LRange(ctx, orderKey(collection), 0, -1).Result()
	if err != nil {
		return nil, unavailable(err)
	}
	if len(ids) == 0 {
		return []Document{}, nil
	}

	raws, err := s.client.HMGet(ctx, docsKey(collection), ids...).Result()
	if err != nil {
		return nil, unavailable(err)
	}

	docs := make([]Document, 0, len(raws))
	for _, raw := range raws {
		str, ok := raw.(string)
		if !ok {
			continue // id in order list but document deleted concurrently
		}
		var doc Document
		if err := json.Unmarshal([]byte(str), &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document in %s: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *RedisStore) Query(ctx context.Context, collection, field string, value interface{}) ([]Document, error) {
	docs, err := s.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	matched := []Document{}
	for _, doc := range docs {
		if equalValues(doc[field], value) {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

func (s *RedisStore) Count(ctx context.Context, collection string) (int, error) {
	n, err := s.client.HLen(ctx, docsKey(collection)).Result()
	if err != nil {
		return 0, unavailable(err)
	}
	return int(n), nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

// equalValues compares a stored value with a query value, tolerating the
// float64 shape JSON decoding gives every number.
func equalValues(stored, query interface{}) bool {
	if stored == query {
		return true
	}
	sf, sok := asFloat(stored)
	qf, qok := asFloat(query)
	return sok && qok && sf == qf
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
