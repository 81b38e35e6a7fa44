package stats

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPercentChange(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"growth", 150, 100, 50},
		{"decline", 50, 100, -50},
		{"flat", 100, 100, 0},
		{"zero previous", 1000, 0, 100},
		{"zero previous zero current", 0, 0, 100},
		{"rounded to one decimal", 1, 3, -66.7},
		{"small growth rounded", 1003, 1000, 0.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PercentChange(tc.current, tc.previous); got != tc.want {
				t.Fatalf("PercentChange(%v, %v) = %v, want %v", tc.current, tc.previous, got, tc.want)
			}
		})
	}
}

func TestMonthWindows(t *testing.T) {
	now := time.Date(2025, time.March, 17, 15, 4, 5, 0, time.UTC)
	cur, prev := MonthWindows(now)

	if !cur.From.Equal(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("current from = %v", cur.From)
	}
	if !cur.To.Equal(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("current to = %v", cur.To)
	}
	if !prev.From.Equal(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("previous from = %v", prev.From)
	}
	if !prev.To.Equal(cur.From) {
		t.Fatalf("previous to = %v", prev.To)
	}
}

func TestMonthWindowsJanuary(t *testing.T) {
	now := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	cur, prev := MonthWindows(now)
	if prev.From.Month() != time.December || prev.From.Year() != 2024 {
		t.Fatalf("previous window should be December 2024, got %v", prev.From)
	}
	if !prev.To.Equal(cur.From) {
		t.Fatalf("windows not contiguous")
	}
}

type fakeRepo struct {
	revenue   map[Window]decimal.Decimal
	orders    map[Window]int64
	products  map[Window]int64
	customers map[Window]int64
}

func (f *fakeRepo) Revenue(_ context.Context, w Window) (decimal.Decimal, error) {
	return f.revenue[w], nil
}
func (f *fakeRepo) OrderCount(_ context.Context, w Window) (int64, error)   { return f.orders[w], nil }
func (f *fakeRepo) ProductCount(_ context.Context, w Window) (int64, error) { return f.products[w], nil }
func (f *fakeRepo) CustomerCount(_ context.Context, w Window) (int64, error) {
	return f.customers[w], nil
}

func TestDashboardZeroPreviousMonth(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	cur, prev := MonthWindows(now)

	repo := &fakeRepo{
		revenue:   map[Window]decimal.Decimal{cur: decimal.NewFromInt(1000), prev: decimal.Zero},
		orders:    map[Window]int64{cur: 12, prev: 0},
		products:  map[Window]int64{cur: 3, prev: 6},
		customers: map[Window]int64{cur: 0, prev: 0},
	}
	svc := &Service{Repo: repo, Now: func() time.Time { return now }}

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.Revenue.PercentChange != 100 {
		t.Fatalf("revenue change = %v, want 100", d.Revenue.PercentChange)
	}
	if d.Orders.PercentChange != 100 {
		t.Fatalf("orders change = %v, want 100", d.Orders.PercentChange)
	}
	if d.Products.PercentChange != -50 {
		t.Fatalf("products change = %v, want -50", d.Products.PercentChange)
	}
	// the zero-previous rule applies even when current is also zero
	if d.Customers.PercentChange != 100 {
		t.Fatalf("customers change = %v, want 100", d.Customers.PercentChange)
	}
	if d.Revenue.Current != 1000 || d.Revenue.Previous != 0 {
		t.Fatalf("revenue raw values wrong: %+v", d.Revenue)
	}
}
