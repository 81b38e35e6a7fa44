package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/maisonnoir/storefront/internal/catalog"
	"github.com/maisonnoir/storefront/internal/media"
	"github.com/maisonnoir/storefront/internal/orders"
	"github.com/maisonnoir/storefront/internal/stats"
)

// AdminHandler is the back-office: catalog CRUD, order management, media
// uploads and the dashboard. Everything sits behind the admin guard.
type AdminHandler struct {
	Guard       *Guard
	Products    *catalog.ProductService
	Categories  *catalog.CategoryService
	Collections *catalog.CollectionService
	Slides      *catalog.HeroSlideService
	Orders      *orders.Service
	Stats       *stats.Service
	Media       media.Store
}

func (h *AdminHandler) Register(r *chi.Mux) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(h.Guard.RequireAdmin)

		r.Get("/stats", h.dashboard)

		r.Get("/products", h.listProducts)
		r.Post("/products", h.createProduct)
		r.Get("/products/{id}", h.getProduct)
		r.Put("/products/{id}", h.updateProduct)
		r.Delete("/products/{id}", h.deleteProduct)

		r.Get("/categories", h.listCategories)
		r.Post("/categories", h.createCategory)
		r.Get("/categories/{id}", h.getCategory)
		r.Put("/categories/{id}", h.updateCategory)
		r.Delete("/categories/{id}", h.deleteCategory)

		r.Get("/collections", h.listCollections)
		r.Post("/collections", h.createCollection)
		r.Put("/collections/{id}", h.updateCollection)
		r.Delete("/collections/{id}", h.deleteCollection)
		r.Post("/collections/{id}/products", h.addCollectionProduct)
		r.Delete("/collections/{id}/products/{productID}", h.removeCollectionProduct)
		r.Put("/collections/{id}/reorder", h.reorderCollection)

		r.Get("/hero-slides", h.listSlides)
		r.Post("/hero-slides", h.createSlide)
		r.Get("/hero-slides/{id}", h.getSlide)
		r.Put("/hero-slides/{id}", h.updateSlide)
		r.Delete("/hero-slides/{id}", h.deleteSlide)

		r.Get("/orders", h.listOrders)
		r.Put("/orders/{id}/status", h.updateOrderStatus)

		r.Post("/media", h.uploadMedia)
		r.Delete("/media", h.deleteMedia)
	})
}

func writeCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 5*time.Second)
}

func (h *AdminHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := writeCtx(r)
	defer cancel()

	d, err := h.Stats.Dashboard(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// --- products ---

func (h *AdminHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := readCtx(r)
	defer cancel()

	ps, err := h.Products.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *AdminHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := readCtx(r)
	defer cancel()

	p, err := h.Products.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if p == nil {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *AdminHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Products.Create(ctx, &p); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, map[string]any{"product": p})
}

func (h *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	p.ID = chi.URLParam(r, "id")

	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Products.Update(ctx, &p); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, nil)
}

func (h *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Products.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, nil)
}

// --- categories ---

func (h *AdminHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := readCtx(r)
	defer cancel()

	cs, err := h.Categories.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *AdminHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := readCtx(r)
	defer cancel()

	c, err := h.Categories.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if c == nil {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *AdminHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var c catalog.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Categories.Create(ctx, &c); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, map[string]any{"category": c})
}

func (h *AdminHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var c catalog.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	c.ID = chi.URLParam(r, "id")

	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Categories.Update(ctx, &c); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, nil)
}

func (h *AdminHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Categories.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, nil)
}

// --- collections ---

func (h *AdminHandler) listCollections(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := readCtx(r)
	defer cancel()

	cs, err := h.Collections.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *AdminHandler) createCollection(w http.ResponseWriter, r *http.Request) {
	var c catalog.Collection
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Collections.Create(ctx, &c); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, map[string]any{"collection": c})
}

func (h *AdminHandler) updateCollection(w http.ResponseWriter, r *http.Request) {
	var c catalog.Collection
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	c.ID = chi.URLParam(r, "id")

	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Collections.Update(ctx, &c); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, nil)
}

type deleteCollectionReq struct {
	Slug string `json:"slug"`
}

func (h *AdminHandler) deleteCollection(w http.ResponseWriter, r *http.Request) {
	var req deleteCollectionReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Collections.Delete(ctx, chi.URLParam(r, "id"), req.Slug); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, nil)
}

type collectionProductReq struct {
	ProductID string `json:"product_id"`
	Slug      string `json:"slug"`
}

func (h *AdminHandler) addCollectionProduct(w http.ResponseWriter, r *http.Request) {
	var req collectionProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product_id is required"})
		return
	}
	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Collections.AddProduct(ctx, chi.URLParam(r, "id"), req.ProductID, req.Slug); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, nil)
}

func (h *AdminHandler) removeCollectionProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := writeCtx(r)
	defer cancel()

	err := h.Collections.RemoveProduct(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "productID"), r.URL.Query().Get("slug"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, nil)
}

type reorderReq struct {
	ProductIDs []string `json:"product_ids"`
	Slug       string   `json:"slug"`
}

func (h *AdminHandler) reorderCollection(w http.ResponseWriter, r *http.Request) {
	var req reorderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Collections.Reorder(ctx, chi.URLParam(r, "id"), req.Slug, req.ProductIDs); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, nil)
}

// --- hero slides (admin form posts, not JSON) ---

func (h *AdminHandler) listSlides(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := readCtx(r)
	defer cancel()

	slides, err := h.Slides.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, slides)
}

func (h *AdminHandler) getSlide(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := readCtx(r)
	defer cancel()

	s, err := h.Slides.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if s == nil {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *AdminHandler) createSlide(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form"})
		return
	}
	ctx, cancel := writeCtx(r)
	defer cancel()

	s, err := h.Slides.CreateFromForm(ctx, r.PostForm)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, map[string]any{"slide": s})
}

func (h *AdminHandler) updateSlide(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form"})
		return
	}
	ctx, cancel := writeCtx(r)
	defer cancel()

	s, err := h.Slides.UpdateFromForm(ctx, chi.URLParam(r, "id"), r.PostForm)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, map[string]any{"slide": s})
}

func (h *AdminHandler) deleteSlide(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Slides.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, nil)
}

// --- orders ---

func (h *AdminHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := readCtx(r)
	defer cancel()

	os, err := h.Orders.ListAll(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, os)
}

type statusReq struct {
	Status orders.Status `json:"status"`
}

func (h *AdminHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Orders.UpdateStatus(ctx, chi.URLParam(r, "id"), req.Status); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, nil)
}

// --- media ---

const maxUploadBytes = 10 << 20

func (h *AdminHandler) uploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file is required"})
		return
	}
	defer file.Close()

	ctx, cancel := writeCtx(r)
	defer cancel()

	url, err := h.Media.Upload(ctx, header.Filename, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeSuccess(w, map[string]any{"url": url})
}

func (h *AdminHandler) deleteMedia(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "url is required"})
		return
	}
	ctx, cancel := writeCtx(r)
	defer cancel()

	if err := h.Media.Delete(ctx, url); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeSuccess(w, nil)
}
