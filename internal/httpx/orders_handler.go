package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/webhook"

	"github.com/maisonnoir/storefront/internal/orders"
)

type OrdersHandler struct {
	Orders *orders.Service
	Guard  *Guard

	// WebhookSecret verifies payment processor callbacks.
	WebhookSecret string
}

var errNotOwner = errors.New("not the owner of this order")

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(h.Guard.RequireUser)
		r.Post("/checkout", h.checkout)
		r.Get("/account/orders", h.myOrders)
		r.Get("/orders/{id}", h.getOrder)
	})
	r.Post("/webhooks/payment", h.paymentWebhook)
}

type checkoutReq struct {
	Items           []orders.CartLine `json:"items"`
	ShippingAddress orders.Address    `json:"shipping_address"`
	PaymentMethod   string            `json:"payment_method"`
}

func (h *OrdersHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	u := UserFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := h.Orders.Checkout(ctx, orders.CheckoutInput{
		UserID:          u.ID,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeSuccess(w, map[string]any{
		"order_id":      res.OrderID,
		"total":         res.Total,
		"client_secret": res.ClientSecret,
	})
}

func (h *OrdersHandler) myOrders(w http.ResponseWriter, r *http.Request) {
	u := UserFrom(r.Context())

	ctx, cancel := readCtx(r)
	defer cancel()

	os, err := h.Orders.ListByUser(ctx, u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, os)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	u := UserFrom(r.Context())

	ctx, cancel := readCtx(r)
	defer cancel()

	o, err := h.Orders.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if o == nil {
		writeNotFound(w)
		return
	}
	if o.UserID != u.ID && !u.IsAdmin {
		writeError(w, http.StatusForbidden, errNotOwner)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// paymentWebhook marks orders paid once the processor confirms the intent.
// The signature check is the only authentication on this route.
func (h *OrdersHandler) paymentWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.WebhookSecret)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if event.Type != "payment_intent.succeeded" {
		w.WriteHeader(http.StatusOK)
		return
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Orders.MarkPaid(ctx, pi.ID); err != nil {
		// unknown intent is not the processor's problem; log and accept
		log.Printf("mark paid %s: %v", pi.ID, err)
	}
	w.WriteHeader(http.StatusOK)
}
