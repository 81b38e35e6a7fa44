package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/maisonnoir/storefront/internal/revalidate"
)

type CategoryStore interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id string) (*Category, error)
	Insert(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
	HasProducts(ctx context.Context, categoryID string) (bool, error)
}

type CategoryService struct {
	Store CategoryStore
	Reval *revalidate.Publisher
}

func (s *CategoryService) List(ctx context.Context) ([]Category, error) {
	return s.Store.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*Category, error) {
	return s.Store.Get(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, c *Category) error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	if err := s.Store.Insert(ctx, c); err != nil {
		return err
	}
	s.Reval.Paths(revalidate.PathAdminCategories)
	return nil
}

func (s *CategoryService) Update(ctx context.Context, c *Category) error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	if err := s.Store.Update(ctx, c); err != nil {
		return err
	}
	s.Reval.Paths(revalidate.PathAdminCategories, revalidate.PathAdminCategoryEdit(c.ID))
	return nil
}

// Delete refuses to remove a category that any product still references.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	inUse, err := s.Store.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCategoryInUse
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.Reval.Paths(revalidate.PathAdminCategories)
	return nil
}
