package service

import (
	"context"
	"fmt"
	"testing"

	"retailgenie/internal/domain"
	"retailgenie/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryFixture(t *testing.T) (InventoryService, repository.ProductRepository) {
	t.Helper()
	products := repository.NewProductRepository(newTestStore(t))
	return NewInventoryService(products), products
}

func seedStocks(t *testing.T, products repository.ProductRepository, stocks []int) []*domain.Product {
	t.Helper()
	seeded := make([]*domain.Product, 0, len(stocks))
	for i, stock := range stocks {
		p := &domain.Product{Name: fmt.Sprintf("P%d", i), Price: 10, Stock: stock}
		require.NoError(t, products.Create(context.Background(), p, "u"))
		seeded = append(seeded, p)
	}
	return seeded
}

func TestLowStockBoundaries(t *testing.T) {
	svc, products := newInventoryFixture(t)
	seedStocks(t, products, []int{0, 5, 9, 10, 20})

	low, err := svc.LowStock(context.Background(), 10)
	require.NoError(t, err)

	// Zero stock is out-of-stock, not low; the threshold itself is not low
	require.Len(t, low, 2)
	assert.Equal(t, 5, low[0].Stock)
	assert.Equal(t, 9, low[1].Stock)
}

func TestLowStockSortedAscending(t *testing.T) {
	svc, products := newInventoryFixture(t)
	seedStocks(t, products, []int{8, 2, 6})

	low, err := svc.LowStock(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, low, 3)
	assert.Equal(t, []int{2, 6, 8}, []int{low[0].Stock, low[1].Stock, low[2].Stock})
}

func TestLowStockDefaultThreshold(t *testing.T) {
	svc, products := newInventoryFixture(t)
	seedStocks(t, products, []int{9, 10})

	low, err := svc.LowStock(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, 9, low[0].Stock)
}

func TestInventorySummary(t *testing.T) {
	svc, products := newInventoryFixture(t)
	seedStocks(t, products, []int{0, 5, 100})

	summary, err := svc.Summary(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalProducts)
	assert.Equal(t, 105, summary.TotalStock)
	assert.InDelta(t, 1050.0, summary.TotalValue, 1e-9)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, 1, summary.OutOfStockCount)
	require.Len(t, summary.Alerts, 2)
	assert.Equal(t, "critical", summary.Alerts[0].Severity)
	assert.Equal(t, "low", summary.Alerts[1].Severity)
}

func TestBulkUpdatePartialFailure(t *testing.T) {
	svc, products := newInventoryFixture(t)
	seeded := seedStocks(t, products, []int{10})

	results := svc.BulkUpdate(context.Background(), []StockUpdate{
		{ProductID: seeded[0].ID, Stock: 25},
		{ProductID: "ghost", Stock: 5},
	})

	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.Equal(t, 10, results[0].OldStock)
	assert.Equal(t, 25, results[0].NewStock)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Error)

	fresh, err := products.FindByID(context.Background(), seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 25, fresh.Stock)
}
