package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/maisonnoir/storefront/internal/revalidate"
)

// FeaturedCollections is how many active collections the home page surfaces.
const FeaturedCollections = 3

type CollectionStore interface {
	List(ctx context.Context) ([]Collection, error)
	ListActive(ctx context.Context) ([]Collection, error)
	ListFeatured(ctx context.Context, limit int) ([]Collection, error)
	GetBySlug(ctx context.Context, slug string) (*Collection, error)
	Insert(ctx context.Context, c *Collection) error
	Update(ctx context.Context, c *Collection) error
	Delete(ctx context.Context, id string) error

	ProductIDs(ctx context.Context, collectionID string) ([]string, error)
	PublishedProducts(ctx context.Context, collectionID string) ([]Product, error)
	HasProduct(ctx context.Context, collectionID, productID string) (bool, error)
	AddProduct(ctx context.Context, collectionID, productID string) error
	RemoveProduct(ctx context.Context, collectionID, productID string) error
	SetDisplayOrder(ctx context.Context, collectionID, productID string, order int) error
}

type CollectionService struct {
	Store CollectionStore
	Reval *revalidate.Publisher
}

func (s *CollectionService) List(ctx context.Context) ([]Collection, error) {
	return s.Store.List(ctx)
}

func (s *CollectionService) ListPublished(ctx context.Context) ([]Collection, error) {
	return s.Store.ListActive(ctx)
}

func (s *CollectionService) ListFeatured(ctx context.Context) ([]Collection, error) {
	return s.Store.ListFeatured(ctx, FeaturedCollections)
}

func (s *CollectionService) GetBySlug(ctx context.Context, slug string) (*Collection, error) {
	return s.Store.GetBySlug(ctx, slug)
}

// GetWithProducts returns the collection plus its published products. A
// collection with no join rows is returned with an empty product list.
func (s *CollectionService) GetWithProducts(ctx context.Context, slug string) (*CollectionWithProducts, error) {
	c, err := s.Store.GetBySlug(ctx, slug)
	if err != nil || c == nil {
		return nil, err
	}
	products, err := s.Store.PublishedProducts(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return &CollectionWithProducts{Collection: *c, Products: products}, nil
}

func (s *CollectionService) Create(ctx context.Context, c *Collection) error {
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
	s.revalidate(c.Slug)
	return nil
}

func (s *CollectionService) Update(ctx context.Context, c *Collection) error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	if err := s.Store.Update(ctx, c); err != nil {
		return err
	}
	s.revalidate(c.Slug)
	return nil
}

func (s *CollectionService) Delete(ctx context.Context, id, slug string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.revalidate(slug)
	return nil
}

// AddProduct is idempotent: a second call with the same pair succeeds
// without duplicating the join row.
func (s *CollectionService) AddProduct(ctx context.Context, collectionID, productID, slug string) error {
	exists, err := s.Store.HasProduct(ctx, collectionID, productID)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.Store.AddProduct(ctx, collectionID, productID); err != nil {
			return err
		}
	}
	s.revalidate(slug)
	return nil
}

func (s *CollectionService) RemoveProduct(ctx context.Context, collectionID, productID, slug string) error {
	if err := s.Store.RemoveProduct(ctx, collectionID, productID); err != nil {
		return err
	}
	s.revalidate(slug)
	return nil
}

// Reorder persists the submitted product order as ascending display_order
// values on the join rows.
func (s *CollectionService) Reorder(ctx context.Context, collectionID, slug string, productIDs []string) error {
	for i, pid := range productIDs {
		if err := s.Store.SetDisplayOrder(ctx, collectionID, pid, i); err != nil {
			return err
		}
	}
	s.revalidate(slug)
	return nil
}

// Collections may surface on the home page, so it is always marked stale.
func (s *CollectionService) revalidate(slug string) {
	paths := []string{revalidate.PathAdminCollections, revalidate.PathCollections, revalidate.PathHome}
	if slug != "" {
		paths = append(paths, revalidate.PathCollection(slug))
	}
	s.Reval.Paths(paths...)
}
