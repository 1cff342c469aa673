package domain

import "time"

// Feedback categories
const (
	FeedbackGeneral = "general"
	FeedbackProduct = "product"
	FeedbackService = "service"
)

// Sentiment labels. Sentiment is advisory, set by an external collaborator.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

type Feedback struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id,omitempty"`
	ProductID  string    `json:"product_id,omitempty"`
	Rating     int       `json:"rating"` // integer 1..5
	Message    string    `json:"message"`
	Category   string    `json:"category"`
	Sentiment  string    `json:"sentiment"`
	CreatedAt  time.Time `json:"created_at"`
}

func ValidFeedbackCategory(c string) bool {
	return c == FeedbackGeneral || c == FeedbackProduct || c == FeedbackService
}

// SentimentForRating is the baseline label used when no analyzer has
// scored the message: 4 and above is positive, 3 neutral, below negative.
func SentimentForRating(rating int) string {
	switch {
	case rating >= 4:
		return SentimentPositive
	case rating == 3:
		return SentimentNeutral
	default:
		return SentimentNegative
	}
}
