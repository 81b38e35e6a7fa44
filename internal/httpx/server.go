package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// ServeMedia mounts the uploaded-image directory below baseURL.
func ServeMedia(r *chi.Mux, baseURL, dir string) {
	fileServer := http.StripPrefix(baseURL+"/", http.FileServer(http.Dir(dir)))
	r.Get(baseURL+"/*", fileServer.ServeHTTP)
}
