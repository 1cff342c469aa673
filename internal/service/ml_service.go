package service

import (
	"context"
	"time"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/repository"
	"retailgenie/internal/sample"
)

// SentimentSummary is the sentiment read model.
type SentimentSummary struct {
	Analysis      map[string]interface{} `json:"analysis"`
	TotalFeedback int                    `json:"total_feedback"`
	GeneratedAt   time.Time              `json:"generated_at"`
	Mode          string                 `json:"mode,omitempty"`
}

// DemandForecast is the inventory forecast read model.
type DemandForecast struct {
	Predictions map[string]interface{} `json:"predictions"`
	GeneratedAt time.Time              `json:"generated_at"`
	Mode        string                 `json:"mode,omitempty"`
}

// DemandPrediction is the per-product forecast entry.
type DemandPrediction struct {
	PredictedDemand    int     `json:"predicted_demand"`
	Trend              string  `json:"trend"` // up, down, stable
	Confidence         float64 `json:"confidence"`
	CurrentStock       int     `json:"current_stock"`
	RecommendedReorder bool    `json:"recommended_reorder"`
}

// PriceSuggestion is the pricing optimization read model.
type PriceSuggestion struct {
	ProductID          string                 `json:"product_id"`
	CurrentPrice       float64                `json:"current_price"`
	OptimalPrice       float64                `json:"optimal_price"`
	PriceChangePercent float64                `json:"price_change_percent"`
	Confidence         float64                `json:"confidence"`
	Factors            map[string]interface{} `json:"factors"`
	GeneratedAt        time.Time              `json:"generated_at"`
	Mode               string                 `json:"mode,omitempty"`
}

// External collaborators. The core only knows these interfaces; training
// and inference live elsewhere. A nil collaborator means fallback.
type (
	SentimentAnalyzer interface {
		Analyze(ctx context.Context, feedback []*domain.Feedback) (map[string]interface{}, error)
	}
	DemandForecaster interface {
		Forecast(ctx context.Context, products []*domain.Product) (map[string]DemandPrediction, error)
	}
	PriceOptimizer interface {
		Optimize(ctx context.Context, product *domain.Product) (*PriceSuggestion, error)
	}
)

// MLService serves the three ML read models, substituting deterministic
// fallback payloads whenever a collaborator is absent or fails.
type MLService interface {
	SentimentSummary(ctx context.Context) (*SentimentSummary, error)
	InventoryForecast(ctx context.Context) (*DemandForecast, error)
	OptimizePrice(ctx context.Context, productID string) (*PriceSuggestion, error)
}

type mlService struct {
	feedback   repository.FeedbackRepository
	products   repository.ProductRepository
	sentiment  SentimentAnalyzer
	forecaster DemandForecaster
	optimizer  PriceOptimizer
}

func NewMLService(
	feedback repository.FeedbackRepository,
	products repository.ProductRepository,
	sentiment SentimentAnalyzer,
	forecaster DemandForecaster,
	optimizer PriceOptimizer,
) MLService {
	return &mlService{
		feedback:   feedback,
		products:   products,
		sentiment:  sentiment,
		forecaster: forecaster,
		optimizer:  optimizer,
	}
}

func (s *mlService) SentimentSummary(ctx context.Context) (*SentimentSummary, error) {
	items, err := s.feedback.List(ctx, repository.FeedbackFilter{Limit: repository.MaxLimit})
	if err != nil && !apperr.IsKind(err, apperr.KindUnavailable) {
		return nil, err
	}

	summary := &SentimentSummary{
		TotalFeedback: len(items),
		GeneratedAt:   time.Now().UTC(),
	}

	if s.sentiment != nil && err == nil {
		analysis, aerr := s.sentiment.Analyze(ctx, items)
		if aerr == nil {
			summary.Analysis = analysis
			return summary, nil
		}
	}

	summary.Analysis = sample.SentimentAnalysis()
	summary.Mode = sample.ModeFallback
	if summary.TotalFeedback == 0 {
		summary.TotalFeedback = 5
	}
	return summary, nil
}

func (s *mlService) InventoryForecast(ctx context.Context) (*DemandForecast, error) {
	forecast := &DemandForecast{GeneratedAt: time.Now().UTC()}

	products, err := s.products.Active(ctx)
	if err != nil && !apperr.IsKind(err, apperr.KindUnavailable) {
		return nil, err
	}

	if s.forecaster != nil && err == nil && len(products) > 0 {
		predictions, ferr := s.forecaster.Forecast(ctx, products)
		if ferr == nil {
			forecast.Predictions = map[string]interface{}{}
			for id, p := range predictions {
				forecast.Predictions[id] = p
			}
			return forecast, nil
		}
	}

	// Deterministic fallback: derive predictions from current stock when
	// products are readable, else serve the fixed sample set.
	forecast.Mode = sample.ModeFallback
	if err != nil || len(products) == 0 {
		forecast.Predictions = sample.ForecastPredictions()
		return forecast, nil
	}

	forecast.Predictions = map[string]interface{}{}
	for _, p := range products {
		forecast.Predictions[p.ID] = fallbackPrediction(p)
	}
	return forecast, nil
}

func (s *mlService) OptimizePrice(ctx context.Context, productID string) (*PriceSuggestion, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.optimizer != nil {
		suggestion, oerr := s.optimizer.Optimize(ctx, product)
		if oerr == nil {
			return suggestion, nil
		}
	}

	return fallbackSuggestion(product), nil
}

func fallbackPrediction(p *domain.Product) DemandPrediction {
	pred := DemandPrediction{
		CurrentStock: p.Stock,
		Confidence:   0.7,
	}
	switch {
	case p.Stock < DefaultLowStockThreshold:
		pred.Trend = "up"
	case p.Stock > 50:
		pred.Trend = "down"
	default:
		pred.Trend = "stable"
	}
	pred.PredictedDemand = p.Stock/2 + 5
	pred.RecommendedReorder = p.Stock < pred.PredictedDemand
	return pred
}

func fallbackSuggestion(p *domain.Product) *PriceSuggestion {
	optimal := p.Price
	switch {
	case p.Stock < DefaultLowStockThreshold:
		optimal = p.Price * 1.05
	case p.Stock > 50:
		optimal = p.Price * 0.95
	}

	change := 0.0
	if p.Price > 0 {
		change = (optimal - p.Price) / p.Price * 100
	}

	return &PriceSuggestion{
		ProductID:          p.ID,
		CurrentPrice:       p.Price,
		OptimalPrice:       optimal,
		PriceChangePercent: change,
		Confidence:         0.74,
		Factors: map[string]interface{}{
			"stock_level":  p.Stock,
			"category":     p.Category,
			"demand_trend": "heuristic",
		},
		GeneratedAt: time.Now().UTC(),
		Mode:        sample.ModeFallback,
	}
}
