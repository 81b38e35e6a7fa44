package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/maisonnoir/storefront/internal/auth"
	"github.com/maisonnoir/storefront/internal/users"
)

type ctxKeyUser struct{}

// UserFrom returns the authenticated user a guard stored on the context.
func UserFrom(ctx context.Context) *users.User {
	u, _ := ctx.Value(ctxKeyUser{}).(*users.User)
	return u
}

type Guard struct{ Auth *auth.Service }

func (g *Guard) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := g.Auth.Resolve(r.Context(), r)
		if err != nil || u == nil {
			writeError(w, http.StatusUnauthorized, auth.ErrNoSession)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyUser{}, u)))
	})
}

var errAdminOnly = errors.New("admin access required")

// RequireAdmin fails closed: any resolution or lookup error reads as
// non-admin.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := g.Auth.Resolve(r.Context(), r)
		if err != nil || u == nil {
			writeError(w, http.StatusUnauthorized, auth.ErrNoSession)
			return
		}
		if !g.Auth.IsAdmin(r.Context(), u.ID) {
			writeError(w, http.StatusForbidden, errAdminOnly)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyUser{}, u)))
	})
}
