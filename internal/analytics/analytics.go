// Package analytics derives dashboards from the order ledger. Every query
// is a pure function of the ledger contents at call time; nothing here
// mutates state.
package analytics

import (
	"context"
	"errors"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bhojnalaya/ordercore/internal/catalog"
	"github.com/bhojnalaya/ordercore/internal/storage"
	"github.com/bhojnalaya/ordercore/pkg/types"
)

// Filter narrows queries to orders created within [From, To], inclusive on
// both ends at calendar-day granularity. A zero bound is open on that side.
type Filter struct {
	From time.Time
	To   time.Time
}

// Summary is the top-line sales view. Cancelled orders contribute to
// neither count nor revenue.
type Summary struct {
	OrderCount   int     `json:"orderCount"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// StatusBucket reports count and revenue for one status, cancelled
// included under its own bucket.
type StatusBucket struct {
	Status       types.OrderStatus `json:"status"`
	Count        int               `json:"count"`
	TotalRevenue float64           `json:"totalRevenue"`
}

// ItemSales accumulates one menu item's sold quantity and revenue.
type ItemSales struct {
	MenuItemID    int64   `json:"menuItemId"`
	Name          string  `json:"name"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// CategorySales accumulates sales under the item's *current* catalog
// category. Items that changed category since the order report under the
// new one; items gone from the catalog report as "Unknown".
type CategorySales struct {
	Category      string  `json:"category"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// DailyPoint is one calendar day of the sales trend.
type DailyPoint struct {
	Date       string  `json:"date"`
	OrderCount int     `json:"orderCount"`
	TotalSales float64 `json:"totalSales"`
}

// Dashboard bundles every aggregate for one filter.
type Dashboard struct {
	Summary         Summary         `json:"summary"`
	StatusBreakdown []StatusBucket  `json:"statusBreakdown"`
	TopItems        []ItemSales     `json:"topItems"`
	CategorySales   []CategorySales `json:"categorySales"`
	DailyTrend      []DailyPoint    `json:"dailyTrend"`
}

// UnknownCategory labels order lines whose menu item no longer resolves.
const UnknownCategory = "Unknown"

// unknownItemName is the display name for a ranked item that has been
// deleted from the catalog.
const unknownItemName = "Unknown"

const topItemsDefault = 5

// Aggregator answers dashboard queries over the order ledger. All
// operations are operator-only.
type Aggregator struct {
	store   storage.Storage
	catalog catalog.Catalog
	loc     *time.Location
}

// New creates an aggregator. loc fixes the calendar-day convention for
// filters and trend bucketing; nil means UTC.
func New(store storage.Storage, cat catalog.Catalog, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{store: store, catalog: cat, loc: loc}
}

// ordersIn loads the ledger snapshot for a filter, widening the bounds to
// whole calendar days in the aggregator's location.
func (a *Aggregator) ordersIn(ctx context.Context, f Filter) ([]*types.Order, error) {
	var from, to time.Time
	if !f.From.IsZero() {
		y, m, d := f.From.In(a.loc).Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, a.loc)
	}
	if !f.To.IsZero() {
		y, m, d := f.To.In(a.loc).Date()
		to = time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), a.loc)
	}
	return a.store.ListOrdersBetween(ctx, from, to)
}

func (a *Aggregator) requireOperator(actor types.Actor) error {
	if !actor.IsOperator() {
		return types.ErrForbidden
	}
	return nil
}

// Summary returns order count and revenue over non-cancelled orders.
func (a *Aggregator) Summary(ctx context.Context, f Filter, actor types.Actor) (*Summary, error) {
	if err := a.requireOperator(actor); err != nil {
		return nil, err
	}
	orders, err := a.ordersIn(ctx, f)
	if err != nil {
		return nil, err
	}
	s := summarize(orders)
	return &s, nil
}

func summarize(orders []*types.Order) Summary {
	var s Summary
	for _, order := range orders {
		if order.Status == types.StatusCancelled {
			continue
		}
		s.OrderCount++
		s.TotalRevenue += order.Total
	}
	s.TotalRevenue = types.Round2(s.TotalRevenue)
	return s
}

// StatusBreakdown reports per-status counts and revenue for every status
// present, cancelled orders under their own bucket.
func (a *Aggregator) StatusBreakdown(ctx context.Context, f Filter, actor types.Actor) ([]StatusBucket, error) {
	if err := a.requireOperator(actor); err != nil {
		return nil, err
	}
	orders, err := a.ordersIn(ctx, f)
	if err != nil {
		return nil, err
	}
	return breakdown(orders), nil
}

// statusOrder fixes a deterministic bucket order for the breakdown.
var statusOrder = map[types.OrderStatus]int{
	types.StatusPending:    0,
	types.StatusProcessing: 1,
	types.StatusCompleted:  2,
	types.StatusCancelled:  3,
}

func breakdown(orders []*types.Order) []StatusBucket {
	byStatus := make(map[types.OrderStatus]*StatusBucket)
	for _, order := range orders {
		bucket, ok := byStatus[order.Status]
		if !ok {
			bucket = &StatusBucket{Status: order.Status}
			byStatus[order.Status] = bucket
		}
		bucket.Count++
		bucket.TotalRevenue += order.Total
	}

	buckets := make([]StatusBucket, 0, len(byStatus))
	for _, bucket := range byStatus {
		bucket.TotalRevenue = types.Round2(bucket.TotalRevenue)
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return statusOrder[buckets[i].Status] < statusOrder[buckets[j].Status]
	})
	return buckets
}

// TopItems ranks menu items over non-cancelled matching orders by quantity
// sold, ties broken by revenue then item ID, returning the first n.
func (a *Aggregator) TopItems(ctx context.Context, f Filter, n int, actor types.Actor) ([]ItemSales, error) {
	if err := a.requireOperator(actor); err != nil {
		return nil, err
	}
	orders, err := a.ordersIn(ctx, f)
	if err != nil {
		return nil, err
	}
	return a.topItems(ctx, orders, n)
}

func (a *Aggregator) topItems(ctx context.Context, orders []*types.Order, n int) ([]ItemSales, error) {
	if n <= 0 {
		n = topItemsDefault
	}

	byItem := make(map[int64]*ItemSales)
	for _, order := range orders {
		if order.Status == types.StatusCancelled {
			continue
		}
		for _, line := range order.Lines {
			sales, ok := byItem[line.MenuItemID]
			if !ok {
				sales = &ItemSales{MenuItemID: line.MenuItemID}
				byItem[line.MenuItemID] = sales
			}
			sales.TotalQuantity += line.Quantity
			sales.TotalRevenue += line.Amount()
		}
	}

	ranked := make([]ItemSales, 0, len(byItem))
	for id, sales := range byItem {
		item, err := a.catalog.GetMenuItem(ctx, id)
		switch {
		case errors.Is(err, types.ErrNotFound):
			sales.Name = unknownItemName
		case err != nil:
			return nil, err
		default:
			sales.Name = item.Name
		}
		sales.TotalRevenue = types.Round2(sales.TotalRevenue)
		ranked = append(ranked, *sales)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalQuantity != ranked[j].TotalQuantity {
			return ranked[i].TotalQuantity > ranked[j].TotalQuantity
		}
		if ranked[i].TotalRevenue != ranked[j].TotalRevenue {
			return ranked[i].TotalRevenue > ranked[j].TotalRevenue
		}
		return ranked[i].MenuItemID < ranked[j].MenuItemID
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// CategorySalesFor groups the same accumulation as TopItems by the item's
// current catalog category, highest revenue first.
func (a *Aggregator) CategorySalesFor(ctx context.Context, f Filter, actor types.Actor) ([]CategorySales, error) {
	if err := a.requireOperator(actor); err != nil {
		return nil, err
	}
	orders, err := a.ordersIn(ctx, f)
	if err != nil {
		return nil, err
	}
	return a.categorySales(ctx, orders)
}

func (a *Aggregator) categorySales(ctx context.Context, orders []*types.Order) ([]CategorySales, error) {
	byCategory := make(map[string]*CategorySales)
	for _, order := range orders {
		if order.Status == types.StatusCancelled {
			continue
		}
		for _, line := range order.Lines {
			category := UnknownCategory
			item, err := a.catalog.GetMenuItem(ctx, line.MenuItemID)
			if err != nil && !errors.Is(err, types.ErrNotFound) {
				return nil, err
			}
			if err == nil {
				category = item.Category
			}

			sales, ok := byCategory[category]
			if !ok {
				sales = &CategorySales{Category: category}
				byCategory[category] = sales
			}
			sales.TotalQuantity += line.Quantity
			sales.TotalRevenue += line.Amount()
		}
	}

	result := make([]CategorySales, 0, len(byCategory))
	for _, sales := range byCategory {
		sales.TotalRevenue = types.Round2(sales.TotalRevenue)
		result = append(result, *sales)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalRevenue != result[j].TotalRevenue {
			return result[i].TotalRevenue > result[j].TotalRevenue
		}
		return result[i].Category < result[j].Category
	})
	return result, nil
}

// DailyTrend buckets non-cancelled orders by calendar day, ascending.
func (a *Aggregator) DailyTrend(ctx context.Context, f Filter, actor types.Actor) ([]DailyPoint, error) {
	if err := a.requireOperator(actor); err != nil {
		return nil, err
	}
	orders, err := a.ordersIn(ctx, f)
	if err != nil {
		return nil, err
	}
	return a.dailyTrend(orders), nil
}

func (a *Aggregator) dailyTrend(orders []*types.Order) []DailyPoint {
	byDay := make(map[string]*DailyPoint)
	for _, order := range orders {
		if order.Status == types.StatusCancelled {
			continue
		}
		day := order.CreatedAt.In(a.loc).Format("2006-01-02")
		point, ok := byDay[day]
		if !ok {
			point = &DailyPoint{Date: day}
			byDay[day] = point
		}
		point.OrderCount++
		point.TotalSales += order.Total
	}

	trend := make([]DailyPoint, 0, len(byDay))
	for _, point := range byDay {
		point.TotalSales = types.Round2(point.TotalSales)
		trend = append(trend, *point)
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Date < trend[j].Date
	})
	return trend
}

// DashboardFor computes every aggregate for one filter off a single ledger
// snapshot. The sections are independent, so they run concurrently.
func (a *Aggregator) DashboardFor(ctx context.Context, f Filter, actor types.Actor) (*Dashboard, error) {
	if err := a.requireOperator(actor); err != nil {
		return nil, err
	}
	orders, err := a.ordersIn(ctx, f)
	if err != nil {
		return nil, err
	}

	var dash Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dash.Summary = summarize(orders)
		return nil
	})
	g.Go(func() error {
		dash.StatusBreakdown = breakdown(orders)
		return nil
	})
	g.Go(func() error {
		top, err := a.topItems(gctx, orders, topItemsDefault)
		if err != nil {
			return err
		}
		dash.TopItems = top
		return nil
	})
	g.Go(func() error {
		categories, err := a.categorySales(gctx, orders)
		if err != nil {
			return err
		}
		dash.CategorySales = categories
		return nil
	})
	g.Go(func() error {
		dash.DailyTrend = a.dailyTrend(orders)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dash, nil
}
