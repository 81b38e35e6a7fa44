package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/maisonnoir/storefront/internal/auth"
	"github.com/maisonnoir/storefront/internal/catalog"
	"github.com/maisonnoir/storefront/internal/orders"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Mutations answer the uniform {success, error?} shape; the presentation
// layer decides what to do with a failure.
func writeSuccess(w http.ResponseWriter, extra map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]any{"success": false, "error": err.Error()})
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "not found"})
}

// statusFor translates domain guard failures into client errors; anything
// unrecognized is a server error, its store message passed through.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrCategoryInUse):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrNameRequired),
		errors.Is(err, catalog.ErrSalePrice),
		errors.Is(err, catalog.ErrSlideFields),
		errors.Is(err, orders.ErrNoItems),
		errors.Is(err, orders.ErrInvalidItem),
		errors.Is(err, orders.ErrBadTransition):
		return http.StatusBadRequest
	case errors.Is(err, orders.ErrPaymentIntent):
		return http.StatusBadGateway
	case errors.Is(err, orders.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
