package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/maisonnoir/storefront/internal/revalidate"
)

type ProductStore interface {
	List(ctx context.Context) ([]Product, error)
	ListPublished(ctx context.Context) ([]Product, error)
	ListFeatured(ctx context.Context, limit int) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Insert(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}

type ProductService struct {
	Store ProductStore
	Reval *revalidate.Publisher
}

func (s *ProductService) List(ctx context.Context) ([]Product, error) {
	return s.Store.List(ctx)
}

func (s *ProductService) ListPublished(ctx context.Context) ([]Product, error) {
	return s.Store.ListPublished(ctx)
}

func (s *ProductService) ListFeatured(ctx context.Context, limit int) ([]Product, error) {
	return s.Store.ListFeatured(ctx, limit)
}

func (s *ProductService) Get(ctx context.Context, id string) (*Product, error) {
	return s.Store.Get(ctx, id)
}

func validateProduct(p *Product) error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.SalePrice != nil && p.SalePrice.GreaterThan(p.Price) {
		return ErrSalePrice
	}
	if p.StockStatus == "" {
		p.StockStatus = StockInStock
	}
	if p.StockStatus != StockLow {
		p.StockQuantity = nil
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, p *Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.Store.Insert(ctx, p); err != nil {
		return err
	}
	s.revalidate(p)
	return nil
}

func (s *ProductService) Update(ctx context.Context, p *Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.Store.Update(ctx, p); err != nil {
		return err
	}
	s.revalidate(p)
	s.Reval.Paths(revalidate.PathAdminProductEdit(p.ID))
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.Reval.Paths(revalidate.PathAdminProducts, revalidate.PathProducts, revalidate.PathProduct(id))
	return nil
}

func (s *ProductService) revalidate(p *Product) {
	paths := []string{revalidate.PathAdminProducts, revalidate.PathProducts, revalidate.PathProduct(p.ID)}
	if p.Featured {
		paths = append(paths, revalidate.PathHome)
	}
	s.Reval.Paths(paths...)
}
