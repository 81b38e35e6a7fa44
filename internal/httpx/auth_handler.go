package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/maisonnoir/storefront/internal/auth"
)

type AuthHandler struct {
	Auth *auth.Service
}

func (h *AuthHandler) Register(r *chi.Mux) {
	r.Post("/auth/signup", h.signUp)
	r.Post("/auth/signin", h.signIn)
	r.Post("/auth/signout", h.signOut)
	r.Post("/auth/password-reset", h.requestReset)
	r.Post("/auth/password-reset/confirm", h.confirmReset)
	r.Get("/auth/me", h.me)
}

type credentialsReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.Auth.SessionTTL / time.Second),
	})
}

func (h *AuthHandler) signUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, token, err := h.Auth.SignUp(ctx, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	h.setSessionCookie(w, token)
	writeSuccess(w, map[string]any{"user": u, "token": token})
}

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, token, err := h.Auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	h.setSessionCookie(w, token)
	writeSuccess(w, map[string]any{"user": u, "token": token})
}

func (h *AuthHandler) signOut(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	_ = h.Auth.SignOut(ctx, auth.TokenFromRequest(r))
	http.SetCookie(w, &http.Cookie{Name: auth.SessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeSuccess(w, nil)
}

type resetReq struct {
	Email    string `json:"email,omitempty"`
	Token    string `json:"token,omitempty"`
	Password string `json:"password,omitempty"`
}

func (h *AuthHandler) requestReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// The token goes to the mailer hook; an unknown address still reports
	// success so the endpoint cannot be used to probe registrations.
	token, err := h.Auth.IssueResetToken(ctx, req.Email)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	extra := map[string]any{}
	if token != "" {
		extra["token"] = token
	}
	writeSuccess(w, extra)
}

func (h *AuthHandler) confirmReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "token and password are required"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.ResetPassword(ctx, req.Token, req.Password); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, nil)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	u, err := h.Auth.Resolve(ctx, r)
	if err != nil || u == nil {
		writeError(w, http.StatusUnauthorized, auth.ErrNoSession)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
