// Package sample provides the deterministic synthetic payloads served
// when a read source is empty or unreachable, so the front-end always
// gets a well-formed answer. Payloads are constant so tests are stable.
package sample

import (
	"time"

	"retailgenie/internal/domain"
)

// ModeFallback flags a payload as synthetic.
const ModeFallback = "fallback"

var sampleTime = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

// Products is the sample catalog returned when the collection is empty.
func Products() []*domain.Product {
	products := []*domain.Product{
		{
			ID:          "sample-prod-001",
			Name:        "Sample Coffee",
			Description: "Premium roasted coffee beans",
			Category:    "Beverages",
			Price:       19.99,
			Stock:       100,
			SKU:         "SKU-COFFEE01",
			Status:      domain.ProductActive,
			CreatedAt:   sampleTime,
			UpdatedAt:   sampleTime,
		},
		{
			ID:          "sample-prod-002",
			Name:        "Smart Headphones",
			Description: "Wireless noise-cancelling headphones",
			Category:    "Electronics",
			Price:       199.99,
			Stock:       45,
			SKU:         "SKU-AUDIO02",
			Status:      domain.ProductActive,
			CreatedAt:   sampleTime,
			UpdatedAt:   sampleTime,
		},
	}
	for _, p := range products {
		p.ComputeValue()
	}
	return products
}

// Customers is the sample customer list returned when the collection is
// empty.
func Customers() []*domain.Customer {
	return []*domain.Customer{
		{
			ID:            "sample-cust-001",
			Name:          "John Smith",
			Email:         "john.smith@example.com",
			Phone:         "+1-555-0123",
			LoyaltyPoints: 250,
			TotalOrders:   12,
			CreatedAt:     sampleTime,
			UpdatedAt:     sampleTime,
		},
	}
}

// Cart is the sample cart served to anonymous readers.
func Cart(userID string) *domain.Cart {
	cart := &domain.Cart{
		UserID: userID,
		Items: []domain.CartItem{
			{
				ID:        "sample-cart-item-1",
				ProductID: "sample-prod-001",
				Name:      "Sample Coffee",
				Price:     19.99,
				Quantity:  2,
				AddedAt:   sampleTime,
			},
		},
		CreatedAt: sampleTime,
		UpdatedAt: sampleTime,
	}
	cart.Recompute()
	return cart
}

// Wishlist is the sample wishlist served to anonymous readers.
func Wishlist(userID string) *domain.Wishlist {
	wl := &domain.Wishlist{
		UserID: userID,
		Items: []domain.WishlistItem{
			{
				ID:        "sample-wish-item-1",
				ProductID: "sample-prod-002",
				Name:      "Smart Headphones",
				Price:     199.99,
				AddedAt:   sampleTime,
			},
		},
		CreatedAt: sampleTime,
		UpdatedAt: sampleTime,
	}
	wl.Recompute()
	return wl
}

// Preferences is the default preferences document.
func Preferences(userID string) *domain.Preferences {
	return &domain.Preferences{
		UserID:        userID,
		Theme:         "light",
		Currency:      "USD",
		Notifications: true,
		Newsletter:    false,
		UpdatedAt:     sampleTime,
	}
}

// AnalyticsOverview is the deterministic dashboard substituted when a
// source collection is empty.
func AnalyticsOverview() map[string]interface{} {
	return map[string]interface{}{
		"total_revenue":     125340.50,
		"revenue_change":    12.5,
		"total_orders":      1234,
		"orders_change":     8.3,
		"total_customers":   856,
		"customers_change":  15.2,
		"conversion_rate":   3.4,
		"conversion_change": -2.1,
	}
}

// SalesTrend is a fixed seven day revenue series.
func SalesTrend() []map[string]interface{} {
	days := []struct {
		date    string
		revenue float64
		orders  int
	}{
		{"2025-01-09", 12000, 120},
		{"2025-01-10", 15000, 145},
		{"2025-01-11", 18000, 160},
		{"2025-01-12", 14000, 135},
		{"2025-01-13", 22000, 180},
		{"2025-01-14", 16500, 150},
		{"2025-01-15", 19500, 170},
	}
	trend := make([]map[string]interface{}, 0, len(days))
	for _, d := range days {
		trend = append(trend, map[string]interface{}{
			"date":    d.date,
			"revenue": d.revenue,
			"orders":  d.orders,
		})
	}
	return trend
}

// TopProducts is the fixed best-seller list.
func TopProducts() []map[string]interface{} {
	return []map[string]interface{}{
		{"name": "Smart Headphones", "sales": 450, "revenue": 89910.0},
		{"name": "Cotton T-Shirt", "sales": 320, "revenue": 9597.0},
		{"name": "Programming Book", "sales": 180, "revenue": 8998.0},
		{"name": "Running Shoes", "sales": 150, "revenue": 14985.0},
		{"name": "Coffee Mug", "sales": 280, "revenue": 4200.0},
	}
}

// CategoryDistribution is the fixed category share breakdown.
func CategoryDistribution() []map[string]interface{} {
	return []map[string]interface{}{
		{"name": "Electronics", "value": 45, "revenue": 67500.0},
		{"name": "Clothing", "value": 30, "revenue": 22500.0},
		{"name": "Books", "value": 15, "revenue": 11250.0},
		{"name": "Home & Garden", "value": 10, "revenue": 7500.0},
	}
}

// CustomerSegments is the fixed segment summary.
func CustomerSegments() []map[string]interface{} {
	return []map[string]interface{}{
		{"segment": "Premium", "customers": 150, "avg_order_value": 285.0},
		{"segment": "Regular", "customers": 400, "avg_order_value": 125.0},
		{"segment": "New", "customers": 306, "avg_order_value": 85.0},
	}
}

// SentimentAnalysis is the fixed sentiment read model used when the
// sentiment collaborator is unavailable.
func SentimentAnalysis() map[string]interface{} {
	return map[string]interface{}{
		"overall_sentiment": "positive",
		"sentiment_distribution": map[string]int{
			"positive": 3,
			"neutral":  1,
			"negative": 1,
		},
		"trending_topics": []map[string]interface{}{
			{"topic": "product quality", "sentiment": "positive", "mentions": 3},
			{"topic": "customer service", "sentiment": "neutral", "mentions": 1},
			{"topic": "delivery", "sentiment": "negative", "mentions": 1},
		},
		"confidence": 0.82,
	}
}

// ForecastPredictions is the fixed demand forecast used when the
// forecaster collaborator is unavailable and no products exist.
func ForecastPredictions() map[string]interface{} {
	return map[string]interface{}{
		"sample-prod-001": map[string]interface{}{
			"predicted_demand":    15,
			"trend":               "up",
			"confidence":          0.85,
			"current_stock":       45,
			"recommended_reorder": false,
		},
		"sample-prod-002": map[string]interface{}{
			"predicted_demand":    25,
			"trend":               "down",
			"confidence":          0.72,
			"current_stock":       8,
			"recommended_reorder": true,
		},
		"sample-prod-003": map[string]interface{}{
			"predicted_demand":    8,
			"trend":               "stable",
			"confidence":          0.91,
			"current_stock":       120,
			"recommended_reorder": false,
		},
	}
}
