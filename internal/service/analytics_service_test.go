package service

import (
	"context"
	"testing"

	"retailgenie/internal/domain"
	"retailgenie/internal/repository"
	"retailgenie/internal/sample"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsFixture(t *testing.T) (AnalyticsService, repository.ProductRepository, repository.OrderRepository, repository.CustomerRepository) {
	t.Helper()
	s := newTestStore(t)
	products := repository.NewProductRepository(s)
	orders := repository.NewOrderRepository(s)
	customers := repository.NewCustomerRepository(s)
	return NewAnalyticsService(products, orders, customers), products, orders, customers
}

func TestDashboardFallsBackWhenEmpty(t *testing.T) {
	svc, _, _, _ := newAnalyticsFixture(t)

	dash, err := svc.Dashboard(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "week", dash.TimeRange)
	assert.Equal(t, sample.ModeFallback, dash.Mode)
	assert.NotEmpty(t, dash.Overview)
	assert.NotEmpty(t, dash.SalesTrend)
	assert.NotEmpty(t, dash.TopProducts)
}

func TestDashboardAggregatesLiveData(t *testing.T) {
	svc, products, orders, customers := newAnalyticsFixture(t)
	ctx := context.Background()

	p := &domain.Product{Name: "Coffee", Category: "Beverages", Price: 10, Stock: 100}
	require.NoError(t, products.Create(ctx, p, "u"))
	require.NoError(t, customers.Create(ctx, &domain.Customer{Name: "Ana", Email: "ana@example.com"}))

	kept := &domain.Order{
		CustomerID: "c1",
		Items:      []domain.OrderItem{{ProductID: p.ID, Quantity: 2, Price: 10, Subtotal: 20}},
		Total:      20,
	}
	require.NoError(t, orders.Create(ctx, kept, "u"))

	cancelled := &domain.Order{
		CustomerID: "c1",
		Items:      []domain.OrderItem{{ProductID: p.ID, Quantity: 1, Price: 10, Subtotal: 10}},
		Total:      10,
	}
	require.NoError(t, orders.Create(ctx, cancelled, "u"))
	_, err := orders.UpdateStatus(ctx, cancelled.ID, domain.OrderCancelled)
	require.NoError(t, err)

	dash, err := svc.Dashboard(ctx, "month")
	require.NoError(t, err)

	assert.Empty(t, dash.Mode)
	assert.Equal(t, "month", dash.TimeRange)

	// Cancelled orders count toward volume but not revenue
	assert.InDelta(t, 20.0, dash.Overview["total_revenue"].(float64), 1e-9)
	assert.Equal(t, 2, dash.Overview["total_orders"])
	assert.Equal(t, 1, dash.Overview["total_products"])
	require.NotEmpty(t, dash.TopProducts)
	assert.Equal(t, "Coffee", dash.TopProducts[0]["name"])
	require.NotEmpty(t, dash.CategoryDistribution)
	assert.Equal(t, "Beverages", dash.CategoryDistribution[0]["name"])
}
