package catalog

import (
	"context"
	"errors"
	"net/url"
	"testing"
)

type fakeSlideStore struct {
	slides  map[string]*HeroSlide
	inserts int
}

func newFakeSlideStore() *fakeSlideStore {
	return &fakeSlideStore{slides: map[string]*HeroSlide{}}
}

func (f *fakeSlideStore) List(_ context.Context) ([]HeroSlide, error)       { return nil, nil }
func (f *fakeSlideStore) ListActive(_ context.Context) ([]HeroSlide, error) { return nil, nil }

func (f *fakeSlideStore) Get(_ context.Context, id string) (*HeroSlide, error) {
	return f.slides[id], nil
}

func (f *fakeSlideStore) Insert(_ context.Context, h *HeroSlide) error {
	f.inserts++
	cp := *h
	f.slides[h.ID] = &cp
	return nil
}

func (f *fakeSlideStore) Update(_ context.Context, h *HeroSlide) error {
	cp := *h
	f.slides[h.ID] = &cp
	return nil
}

func (f *fakeSlideStore) Delete(_ context.Context, id string) error {
	delete(f.slides, id)
	return nil
}

func TestHeroSlideTitleAndImageRequired(t *testing.T) {
	store := newFakeSlideStore()
	svc := &HeroSlideService{Store: store}
	ctx := context.Background()

	cases := []url.Values{
		{},
		{"title": {"Spring Drop"}},
		{"image": {"/media/hero.jpg"}},
	}
	for _, form := range cases {
		if _, err := svc.CreateFromForm(ctx, form); !errors.Is(err, ErrSlideFields) {
			t.Fatalf("form %v: got %v, want ErrSlideFields", form, err)
		}
	}
	if store.inserts != 0 {
		t.Fatal("invalid forms must not reach the store")
	}

	if _, err := svc.UpdateFromForm(ctx, "h1", url.Values{"title": {"x"}}); !errors.Is(err, ErrSlideFields) {
		t.Fatalf("update: got %v, want ErrSlideFields", err)
	}
}

func TestHeroSlideFormDefaults(t *testing.T) {
	svc := &HeroSlideService{Store: newFakeSlideStore()}

	h, err := svc.CreateFromForm(context.Background(), url.Values{
		"title": {"Spring Drop"},
		"image": {"/media/hero.jpg"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if h.ID == "" {
		t.Fatal("id not assigned")
	}
	if h.DisplayOrder != 0 {
		t.Fatalf("display_order = %d, want 0", h.DisplayOrder)
	}
	if h.Active {
		t.Fatal("active must default to false")
	}
	if h.Subtitle != nil {
		t.Fatal("absent subtitle must stay nil")
	}
}

func TestHeroSlideFormParsing(t *testing.T) {
	svc := &HeroSlideService{Store: newFakeSlideStore()}

	h, err := svc.CreateFromForm(context.Background(), url.Values{
		"title":         {"Spring Drop"},
		"subtitle":      {"new arrivals"},
		"image":         {"/media/hero.jpg"},
		"display_order": {"7"},
		"active":        {"true"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if h.DisplayOrder != 7 || !h.Active {
		t.Fatalf("slide = %+v", h)
	}
	if h.Subtitle == nil || *h.Subtitle != "new arrivals" {
		t.Fatalf("subtitle = %v", h.Subtitle)
	}

	// malformed display_order falls back to 0 rather than failing the save
	h, err = svc.CreateFromForm(context.Background(), url.Values{
		"title":         {"x"},
		"image":         {"y"},
		"display_order": {"first"},
		"active":        {"yes"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if h.DisplayOrder != 0 {
		t.Fatalf("display_order = %d, want 0", h.DisplayOrder)
	}
	if h.Active {
		t.Fatal(`only the literal "true" enables a slide`)
	}
}
