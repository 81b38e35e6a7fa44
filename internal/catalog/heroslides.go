package catalog

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/maisonnoir/storefront/internal/revalidate"
)

type HeroSlideStore interface {
	List(ctx context.Context) ([]HeroSlide, error)
	ListActive(ctx context.Context) ([]HeroSlide, error)
	Get(ctx context.Context, id string) (*HeroSlide, error)
	Insert(ctx context.Context, h *HeroSlide) error
	Update(ctx context.Context, h *HeroSlide) error
	Delete(ctx context.Context, id string) error
}

type HeroSlideService struct {
	Store HeroSlideStore
	Reval *revalidate.Publisher
}

func (s *HeroSlideService) List(ctx context.Context) ([]HeroSlide, error) {
	return s.Store.List(ctx)
}

func (s *HeroSlideService) ListActive(ctx context.Context) ([]HeroSlide, error) {
	return s.Store.ListActive(ctx)
}

func (s *HeroSlideService) Get(ctx context.Context, id string) (*HeroSlide, error) {
	return s.Store.Get(ctx, id)
}

// slideFromForm maps the admin form fields onto a slide. display_order
// defaults to 0 when absent or malformed; active is the literal "true".
func slideFromForm(form url.Values) (*HeroSlide, error) {
	title := form.Get("title")
	image := form.Get("image")
	if title == "" || image == "" {
		return nil, ErrSlideFields
	}
	order := 0
	if v := form.Get("display_order"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			order = n
		}
	}
	h := &HeroSlide{
		Title:        title,
		Image:        image,
		DisplayOrder: order,
		Active:       form.Get("active") == "true",
	}
	if v := form.Get("subtitle"); v != "" {
		h.Subtitle = &v
	}
	return h, nil
}

func (s *HeroSlideService) CreateFromForm(ctx context.Context, form url.Values) (*HeroSlide, error) {
	h, err := slideFromForm(form)
	if err != nil {
		return nil, err
	}
	h.ID = uuid.NewString()
	if err := s.Store.Insert(ctx, h); err != nil {
		return nil, err
	}
	s.Reval.Paths(revalidate.PathAdminHeroSlides, revalidate.PathHome)
	return h, nil
}

func (s *HeroSlideService) UpdateFromForm(ctx context.Context, id string, form url.Values) (*HeroSlide, error) {
	h, err := slideFromForm(form)
	if err != nil {
		return nil, err
	}
	h.ID = id
	if err := s.Store.Update(ctx, h); err != nil {
		return nil, err
	}
	s.Reval.Paths(revalidate.PathAdminHeroSlides, revalidate.PathHome)
	return h, nil
}

func (s *HeroSlideService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.Reval.Paths(revalidate.PathAdminHeroSlides, revalidate.PathHome)
	return nil
}
