package service

import (
	"context"
	"sort"
	"time"

	"retailgenie/internal/domain"
	"retailgenie/internal/repository"
)

// DefaultLowStockThreshold is T in "low-stock iff 0 < stock < T".
const DefaultLowStockThreshold = 10

// InventorySummary is the read-only projection over the product catalog.
type InventorySummary struct {
	TotalProducts   int              `json:"total_products"`
	TotalStock      int              `json:"total_stock"`
	TotalValue      float64          `json:"total_value"`
	LowStockCount   int              `json:"low_stock_count"`
	OutOfStockCount int              `json:"out_of_stock_count"`
	Alerts          []InventoryAlert `json:"alerts"`
	Timestamp       time.Time        `json:"timestamp"`
}

type InventoryAlert struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Severity  string `json:"severity"` // critical (out of stock) or low
}

// StockUpdate is one entry of a bulk update request.
type StockUpdate struct {
	ProductID string `json:"product_id" validate:"required"`
	Stock     int    `json:"stock" validate:"gte=0"`
}

// StockUpdateResult reports the outcome of one bulk-update entry.
type StockUpdateResult struct {
	ProductID string `json:"product_id"`
	Success   bool   `json:"success"`
	OldStock  int    `json:"old_stock,omitempty"`
	NewStock  int    `json:"new_stock,omitempty"`
	Error     string `json:"error,omitempty"`
}

type InventoryService interface {
	Summary(ctx context.Context, threshold int) (*InventorySummary, error)
	LowStock(ctx context.Context, threshold int) ([]*domain.Product, error)
	BulkUpdate(ctx context.Context, updates []StockUpdate) []StockUpdateResult
}

type inventoryService struct {
	products repository.ProductRepository
}

func NewInventoryService(products repository.ProductRepository) InventoryService {
	return &inventoryService{products: products}
}

func (s *inventoryService) Summary(ctx context.Context, threshold int) (*InventorySummary, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}

	products, err := s.products.Active(ctx)
	if err != nil {
		return nil, err
	}

	summary := &InventorySummary{
		Alerts:    []InventoryAlert{},
		Timestamp: time.Now().UTC(),
	}
	for _, p := range products {
		summary.TotalProducts++
		summary.TotalStock += p.Stock
		summary.TotalValue += p.Value

		switch {
		case p.Stock == 0:
			summary.OutOfStockCount++
			summary.Alerts = append(summary.Alerts, InventoryAlert{
				ProductID: p.ID, Name: p.Name, Stock: p.Stock, Severity: "critical",
			})
		case p.Stock < threshold:
			summary.LowStockCount++
			summary.Alerts = append(summary.Alerts, InventoryAlert{
				ProductID: p.ID, Name: p.Name, Stock: p.Stock, Severity: "low",
			})
		}
	}
	return summary, nil
}

// LowStock returns products with 0 < stock < threshold, stock ascending.
// Out-of-stock products are a separate signal and are excluded.
func (s *inventoryService) LowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}

	products, err := s.products.Active(ctx)
	if err != nil {
		return nil, err
	}

	low := []*domain.Product{}
	for _, p := range products {
		if p.Stock > 0 && p.Stock < threshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Stock < low[j].Stock
	})
	return low, nil
}

// BulkUpdate attempts every entry independently; one bad product id does
// not fail the batch.
func (s *inventoryService) BulkUpdate(ctx context.Context, updates []StockUpdate) []StockUpdateResult {
	results := make([]StockUpdateResult, 0, len(updates))
	for _, u := range updates {
		old, err := s.products.SetStock(ctx, u.ProductID, u.Stock)
		if err != nil {
			results = append(results, StockUpdateResult{
				ProductID: u.ProductID,
				Success:   false,
				Error:     err.Error(),
			})
			continue
		}
		results = append(results, StockUpdateResult{
			ProductID: u.ProductID,
			Success:   true,
			OldStock:  old,
			NewStock:  u.Stock,
		})
	}
	return results
}
