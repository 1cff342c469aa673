package service

import (
	"context"
	"sort"
	"time"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/repository"
	"retailgenie/internal/sample"
)

// Dashboard is the analytics read model. Nothing here is cached; every
// request aggregates fresh.
type Dashboard struct {
	Overview             map[string]interface{}   `json:"overview"`
	SalesTrend           []map[string]interface{} `json:"sales_trend"`
	TopProducts          []map[string]interface{} `json:"top_products"`
	CategoryDistribution []map[string]interface{} `json:"category_distribution"`
	CustomerSegments     []map[string]interface{} `json:"customer_segments"`
	TimeRange            string                   `json:"time_range"`
	GeneratedAt          time.Time                `json:"generated_at"`
	Mode                 string                   `json:"mode,omitempty"`
}

type AnalyticsService interface {
	Dashboard(ctx context.Context, timeRange string) (*Dashboard, error)
}

type analyticsService struct {
	products  repository.ProductRepository
	orders    repository.OrderRepository
	customers repository.CustomerRepository
}

func NewAnalyticsService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
) AnalyticsService {
	return &analyticsService{products: products, orders: orders, customers: customers}
}

// Dashboard aggregates counts and sums over products, orders, and
// customers. If any source is empty or unreachable the deterministic
// sample numbers are substituted and the payload flagged.
func (s *analyticsService) Dashboard(ctx context.Context, timeRange string) (*Dashboard, error) {
	if timeRange == "" {
		timeRange = "week"
	}

	products, perr := s.products.Active(ctx)
	orders, oerr := s.orders.All(ctx)
	customers, cerr := s.customers.List(ctx)

	for _, err := range []error{perr, oerr, cerr} {
		if err != nil && !apperr.IsKind(err, apperr.KindUnavailable) {
			return nil, err
		}
	}

	dash := &Dashboard{TimeRange: timeRange, GeneratedAt: time.Now().UTC()}

	if perr != nil || oerr != nil || cerr != nil ||
		len(products) == 0 || len(orders) == 0 || len(customers) == 0 {
		dash.Overview = sample.AnalyticsOverview()
		dash.SalesTrend = sample.SalesTrend()
		dash.TopProducts = sample.TopProducts()
		dash.CategoryDistribution = sample.CategoryDistribution()
		dash.CustomerSegments = sample.CustomerSegments()
		dash.Mode = sample.ModeFallback
		return dash, nil
	}

	var revenue float64
	for _, o := range orders {
		if o.Status != domain.OrderCancelled {
			revenue += o.Total
		}
	}

	dash.Overview = map[string]interface{}{
		"total_revenue":   revenue,
		"total_orders":    len(orders),
		"total_customers": len(customers),
		"total_products":  len(products),
	}
	dash.SalesTrend = salesTrend(orders)
	dash.TopProducts = topProducts(orders, products)
	dash.CategoryDistribution = categoryDistribution(products)
	dash.CustomerSegments = customerSegments(customers)
	return dash, nil
}

// salesTrend buckets order totals into the last seven days.
func salesTrend(orders []*domain.Order) []map[string]interface{} {
	type bucket struct {
		revenue float64
		count   int
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	buckets := map[string]*bucket{}
	days := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		days = append(days, day)
		buckets[day] = &bucket{}
	}

	for _, o := range orders {
		if o.Status == domain.OrderCancelled {
			continue
		}
		day := o.CreatedAt.UTC().Format("2006-01-02")
		if b, ok := buckets[day]; ok {
			b.revenue += o.Total
			b.count++
		}
	}

	trend := make([]map[string]interface{}, 0, 7)
	for _, day := range days {
		trend = append(trend, map[string]interface{}{
			"date":    day,
			"revenue": buckets[day].revenue,
			"orders":  buckets[day].count,
		})
	}
	return trend
}

func topProducts(orders []*domain.Order, products []*domain.Product) []map[string]interface{} {
	names := map[string]string{}
	for _, p := range products {
		names[p.ID] = p.Name
	}

	type perf struct {
		name    string
		sales   int
		revenue float64
	}
	byProduct := map[string]*perf{}
	for _, o := range orders {
		if o.Status == domain.OrderCancelled {
			continue
		}
		for _, it := range o.Items {
			p, ok := byProduct[it.ProductID]
			if !ok {
				name := names[it.ProductID]
				if name == "" {
					name = it.ProductID
				}
				p = &perf{name: name}
				byProduct[it.ProductID] = p
			}
			p.sales += it.Quantity
			p.revenue += it.Subtotal
		}
	}

	ranked := make([]*perf, 0, len(byProduct))
	for _, p := range byProduct {
		ranked = append(ranked, p)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].revenue > ranked[j].revenue
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}

	top := make([]map[string]interface{}, 0, len(ranked))
	for _, p := range ranked {
		top = append(top, map[string]interface{}{
			"name":    p.name,
			"sales":   p.sales,
			"revenue": p.revenue,
		})
	}
	return top
}

func categoryDistribution(products []*domain.Product) []map[string]interface{} {
	counts := map[string]int{}
	value := map[string]float64{}
	order := []string{}
	for _, p := range products {
		cat := p.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		if counts[cat] == 0 {
			order = append(order, cat)
		}
		counts[cat]++
		value[cat] += p.Value
	}

	dist := make([]map[string]interface{}, 0, len(order))
	for _, cat := range order {
		dist = append(dist, map[string]interface{}{
			"name":    cat,
			"value":   counts[cat],
			"revenue": value[cat],
		})
	}
	return dist
}

func customerSegments(customers []*domain.Customer) []map[string]interface{} {
	var premium, regular, fresh int
	for _, c := range customers {
		switch {
		case c.LoyaltyPoints >= 200:
			premium++
		case c.TotalOrders > 0:
			regular++
		default:
			fresh++
		}
	}
	return []map[string]interface{}{
		{"segment": "Premium", "customers": premium},
		{"segment": "Regular", "customers": regular},
		{"segment": "New", "customers": fresh},
	}
}
