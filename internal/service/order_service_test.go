package service

import (
	"context"
	"math"
	"testing"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(t *testing.T) (OrderService, repository.ProductRepository) {
	t.Helper()
	s := newTestStore(t)
	products := repository.NewProductRepository(s)
	orders := repository.NewOrderRepository(s)
	return NewOrderService(orders, products), products
}

func TestCreateOrderIgnoresClientPrice(t *testing.T) {
	svc, products := newOrderFixture(t)
	ctx := context.Background()

	p := &domain.Product{Name: "Coffee", Price: 10, Stock: 100}
	require.NoError(t, products.Create(ctx, p, "u"))

	order, err := svc.CreateOrder(ctx, "c1", []OrderItemInput{
		{ProductID: p.ID, Quantity: 3, Price: 999},
	}, "u")
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.InDelta(t, 10, order.Items[0].Price, 1e-9)
	assert.InDelta(t, 30, order.Items[0].Subtotal, 1e-9)
	assert.InDelta(t, 30, order.Total, 1e-9)
	assert.Equal(t, domain.OrderPending, order.Status)
}

func TestCreateOrderDoesNotTouchStock(t *testing.T) {
	svc, products := newOrderFixture(t)
	ctx := context.Background()

	p := &domain.Product{Name: "Coffee", Price: 10, Stock: 100}
	require.NoError(t, products.Create(ctx, p, "u"))

	_, err := svc.CreateOrder(ctx, "c1", []OrderItemInput{{ProductID: p.ID, Quantity: 5}}, "u")
	require.NoError(t, err)

	fresh, err := products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, fresh.Stock)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, products := newOrderFixture(t)
	ctx := context.Background()

	p := &domain.Product{Name: "Coffee", Price: 10, Stock: 100}
	require.NoError(t, products.Create(ctx, p, "u"))

	_, err := svc.CreateOrder(ctx, "", []OrderItemInput{{ProductID: p.ID, Quantity: 1}}, "u")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.CreateOrder(ctx, "c1", nil, "u")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.CreateOrder(ctx, "c1", []OrderItemInput{{ProductID: p.ID, Quantity: 0}}, "u")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.CreateOrder(ctx, "c1", []OrderItemInput{{ProductID: "ghost", Quantity: 1}}, "u")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestProperty_OrderTotalEqualsSumOfSubtotals(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total is the sum of server-derived subtotals", prop.ForAll(
		func(prices []float64, quantities []int) bool {
			n := len(prices)
			if len(quantities) < n {
				n = len(quantities)
			}
			if n == 0 {
				return true
			}

			svc, products := newOrderFixture(t)
			ctx := context.Background()

			items := make([]OrderItemInput, 0, n)
			want := 0.0
			for i := 0; i < n; i++ {
				price := math.Round(prices[i]*100) / 100
				p := &domain.Product{Name: "P", Price: price, Stock: 1}
				if err := products.Create(ctx, p, "u"); err != nil {
					return false
				}
				items = append(items, OrderItemInput{ProductID: p.ID, Quantity: quantities[i]})
				want += price * float64(quantities[i])
			}

			order, err := svc.CreateOrder(ctx, "c1", items, "u")
			if err != nil {
				return false
			}

			got := 0.0
			for _, it := range order.Items {
				got += it.Subtotal
			}
			return math.Abs(order.Total-want) < 1e-6 && math.Abs(order.Total-got) < 1e-9
		},
		gen.SliceOfN(3, gen.Float64Range(0.01, 500)),
		gen.SliceOfN(3, gen.IntRange(1, 20)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
