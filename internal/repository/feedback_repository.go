package repository

import (
	"context"
	"sort"
	"strings"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/store"

	"github.com/google/uuid"
)

// FeedbackFilter narrows a feedback listing.
type FeedbackFilter struct {
	Rating   int // 0 means any
	Category string
	Limit    int
}

type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) error
	List(ctx context.Context, filter FeedbackFilter) ([]*domain.Feedback, error)
	ForProduct(ctx context.Context, productID string) ([]*domain.Feedback, error)
	SentimentCounts(ctx context.Context) (positive, neutral, negative int, err error)
}

type feedbackRepository struct {
	store store.Store
}

func NewFeedbackRepository(s store.Store) FeedbackRepository {
	return &feedbackRepository{store: s}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	if fb.Rating < 1 || fb.Rating > 5 {
		return apperr.Validation("rating must be an integer between 1 and 5")
	}
	if strings.TrimSpace(fb.Message) == "" {
		return apperr.Validation("message is required")
	}
	if fb.Category == "" {
		fb.Category = domain.FeedbackGeneral
	}
	if !domain.ValidFeedbackCategory(fb.Category) {
		return apperr.Validation("category must be general, product, or service")
	}

	fb.ID = uuid.New().String()
	fb.CreatedAt = nowUTC()

	doc, err := toDoc(fb)
	if err != nil {
		return apperr.Internal(err)
	}
	if _, err := r.store.Create(ctx, CollectionFeedback, doc); err != nil {
		return storeErr(err, "feedback")
	}
	return nil
}

func (r *feedbackRepository) all(ctx context.Context) ([]*domain.Feedback, error) {
	docs, err := r.store.List(ctx, CollectionFeedback)
	if err != nil {
		return nil, storeErr(err, "feedback")
	}

	items := []*domain.Feedback{}
	for _, doc := range docs {
		fb := &domain.Feedback{}
		if err := fromDoc(doc, fb); err != nil {
			return nil, apperr.Internal(err)
		}
		items = append(items, fb)
	}
	return items, nil
}

// List returns matching feedback newest-first.
func (r *feedbackRepository) List(ctx context.Context, filter FeedbackFilter) ([]*domain.Feedback, error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}

	filtered := items[:0:0]
	for _, fb := range items {
		if filter.Rating != 0 && fb.Rating != filter.Rating {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(fb.Category, filter.Category) {
			continue
		}
		filtered = append(filtered, fb)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	limit := filter.Limit
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (r *feedbackRepository) ForProduct(ctx context.Context, productID string) ([]*domain.Feedback, error) {
	docs, err := r.store.Query(ctx, CollectionFeedback, "product_id", productID)
	if err != nil {
		return nil, storeErr(err, "feedback")
	}

	items := []*domain.Feedback{}
	for _, doc := range docs {
		fb := &domain.Feedback{}
		if err := fromDoc(doc, fb); err != nil {
			return nil, apperr.Internal(err)
		}
		items = append(items, fb)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *feedbackRepository) SentimentCounts(ctx context.Context) (int, int, int, error) {
	items, err := r.all(ctx)
	if err != nil {
		return 0, 0, 0, err
	}

	var pos, neu, neg int
	for _, fb := range items {
		switch fb.Sentiment {
		case domain.SentimentPositive:
			pos++
		case domain.SentimentNegative:
			neg++
		default:
			neu++
		}
	}
	return pos, neu, neg, nil
}
