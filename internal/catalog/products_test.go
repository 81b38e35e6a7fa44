package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

type fakeProductStore struct {
	products map[string]*Product
	inserts  int
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[string]*Product{}}
}

func (f *fakeProductStore) List(_ context.Context) ([]Product, error) { return nil, nil }

func (f *fakeProductStore) ListPublished(_ context.Context) ([]Product, error) { return nil, nil }

func (f *fakeProductStore) ListFeatured(_ context.Context, limit int) ([]Product, error) {
	return nil, nil
}

func (f *fakeProductStore) Get(_ context.Context, id string) (*Product, error) {
	return f.products[id], nil
}

func (f *fakeProductStore) Insert(_ context.Context, p *Product) error {
	f.inserts++
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, p *Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductStore) Delete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestProductSalePriceMustNotExceedPrice(t *testing.T) {
	store := newFakeProductStore()
	svc := &ProductService{Store: store}
	ctx := context.Background()

	over := money("120.00")
	err := svc.Create(ctx, &Product{Name: "Wool Coat", Price: money("100.00"), SalePrice: &over})
	if !errors.Is(err, ErrSalePrice) {
		t.Fatalf("sale above price: got %v, want ErrSalePrice", err)
	}
	if store.inserts != 0 {
		t.Fatal("invalid product must not reach the store")
	}

	// equal is fine; the rule is no markup disguised as a sale
	equal := money("100.00")
	if err := svc.Create(ctx, &Product{Name: "Wool Coat", Price: money("100.00"), SalePrice: &equal}); err != nil {
		t.Fatalf("sale equal to price: %v", err)
	}

	if err := svc.Update(ctx, &Product{ID: "p1", Name: "Wool Coat", Price: money("80.00"), SalePrice: &over}); !errors.Is(err, ErrSalePrice) {
		t.Fatalf("update with sale above price: got %v, want ErrSalePrice", err)
	}
}

func TestProductStockStatusDefaults(t *testing.T) {
	store := newFakeProductStore()
	svc := &ProductService{Store: store}

	p := &Product{Name: "Linen Shirt", Price: money("59.00")}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.StockStatus != StockInStock {
		t.Fatalf("stock status = %q, want %q", p.StockStatus, StockInStock)
	}
	if p.ID == "" {
		t.Fatal("id not assigned")
	}
}

func TestProductStockQuantityOnlyWhileLow(t *testing.T) {
	store := newFakeProductStore()
	svc := &ProductService{Store: store}
	ctx := context.Background()

	qty := 3
	low := &Product{Name: "Silk Scarf", Price: money("45.00"), StockStatus: StockLow, StockQuantity: &qty}
	if err := svc.Create(ctx, low); err != nil {
		t.Fatalf("create: %v", err)
	}
	if low.StockQuantity == nil || *low.StockQuantity != 3 {
		t.Fatalf("low-stock quantity = %v, want 3", low.StockQuantity)
	}

	// any other status drops the quantity so it cannot go stale
	for _, status := range []StockStatus{StockInStock, StockSoldOut} {
		q := 7
		p := &Product{Name: "Silk Scarf", Price: money("45.00"), StockStatus: status, StockQuantity: &q}
		if err := svc.Create(ctx, p); err != nil {
			t.Fatalf("create %s: %v", status, err)
		}
		if p.StockQuantity != nil {
			t.Fatalf("%s product kept quantity %d", status, *p.StockQuantity)
		}
	}
}

func TestProductNameRequired(t *testing.T) {
	svc := &ProductService{Store: newFakeProductStore()}
	if err := svc.Create(context.Background(), &Product{Price: money("10.00")}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("got %v, want ErrNameRequired", err)
	}
}
