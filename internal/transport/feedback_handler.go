package transport

import (
	"net/http"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/middleware"
	"retailgenie/internal/repository"
	"retailgenie/internal/sample"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateFeedbackRequest represents the feedback submission payload
type CreateFeedbackRequest struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Message    string `json:"message" validate:"required"`
	Category   string `json:"category"`
}

// FeedbackHandler handles HTTP requests for customer feedback
type FeedbackHandler struct {
	feedback repository.FeedbackRepository
	logger   *zap.Logger
}

func NewFeedbackHandler(feedback repository.FeedbackRepository, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, logger: logger}
}

func (h *FeedbackHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/feedback", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/sentiment", h.Sentiment)
		r.Get("/product/{id}", h.ForProduct)
	})
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	rating, err := intQuery(r, "rating", 0)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	items, err := h.feedback.List(r.Context(), repository.FeedbackFilter{
		Rating:   rating,
		Category: r.URL.Query().Get("category"),
		Limit:    limit,
	})
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"feedback": items,
		"count":    len(items),
	})
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFeedbackRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	fb := &domain.Feedback{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		Rating:     req.Rating,
		Message:    req.Message,
		Category:   req.Category,
		Sentiment:  domain.SentimentForRating(req.Rating),
	}
	if err := h.feedback.Create(r.Context(), fb); err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	h.logger.Info("Feedback received",
		zap.String("feedback_id", fb.ID),
		zap.Int("rating", fb.Rating))
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"feedback": fb,
	})
}

func (h *FeedbackHandler) ForProduct(w http.ResponseWriter, r *http.Request) {
	items, err := h.feedback.ForProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"feedback": items,
		"count":    len(items),
	})
}

func (h *FeedbackHandler) Sentiment(w http.ResponseWriter, r *http.Request) {
	pos, neu, neg, err := h.feedback.SentimentCounts(r.Context())
	if err != nil && !apperr.IsKind(err, apperr.KindUnavailable) {
		middleware.RespondWithError(w, err)
		return
	}

	total := pos + neu + neg
	if err != nil || total == 0 {
		analysis := sample.SentimentAnalysis()
		dist := analysis["sentiment_distribution"].(map[string]int)
		middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"sentiment": map[string]interface{}{
				"positive":          dist["positive"],
				"neutral":           dist["neutral"],
				"negative":          dist["negative"],
				"total":             dist["positive"] + dist["neutral"] + dist["negative"],
				"overall_sentiment": analysis["overall_sentiment"],
			},
			"mode": sample.ModeFallback,
		})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"sentiment": map[string]interface{}{
			"positive":          pos,
			"neutral":           neu,
			"negative":          neg,
			"total":             total,
			"overall_sentiment": majoritySentiment(pos, neu, neg),
		},
	})
}

// majoritySentiment labels the distribution by its largest bucket,
// preferring positive then neutral on ties.
func majoritySentiment(pos, neu, neg int) string {
	switch {
	case pos >= neu && pos >= neg:
		return "positive"
	case neu >= neg:
		return "neutral"
	default:
		return "negative"
	}
}
