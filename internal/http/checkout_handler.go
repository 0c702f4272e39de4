package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Pageblan/Carepulse/internal/cart"
	"github.com/Pageblan/Carepulse/internal/checkout"
	"github.com/Pageblan/Carepulse/internal/events"
	"github.com/Pageblan/Carepulse/internal/money"
)

type CheckoutHandler struct {
	publisher events.Publisher
	currency  string
}

func NewCheckoutHandler(publisher events.Publisher, currency string) *CheckoutHandler {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &CheckoutHandler{publisher: publisher, currency: currency}
}

// CheckoutItemDTO is the wire shape the storefront posts: unit prices
// arrive as display decimals and are converted to minor units here, at
// the boundary.
type CheckoutItemDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type CheckoutRequestDTO struct {
	CartItems []CheckoutItemDTO `json:"cartItems"`
}

// Checkout creates a payment session for the posted cart items and
// returns the session id plus the hosted payment page to redirect to.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session missing")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	snap := snapshotFromDTO(req.CartItems)
	if len(snap.Items) == 0 {
		// No posted items: fall back to the server-side session cart.
		snap = sess.Cart.Snapshot()
	}

	paySession, err := sess.Checkout.Start(r.Context(), snap, requestOrigin(r))
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrCheckoutInFlight):
			respondError(w, http.StatusConflict, "checkout_in_flight", err.Error())
		case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrBadLineItem):
			respondError(w, http.StatusBadRequest, "invalid_cart", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "session_creation_failed", err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, paySession)
}

// Success is the navigational endpoint the provider redirects back to
// after payment. The destination is trusted; no outcome verification
// happens here. A checkout-completed event goes out best-effort.
func (h *CheckoutHandler) Success(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session missing")
		return
	}

	if err := sess.Checkout.Succeed(); err != nil {
		// A stale or direct hit on the success URL; the page still renders.
		log.Printf("checkout success outside redirect (request %s): %v", getRequestID(r.Context()), err)
	} else {
		// Publish the snapshot this attempt was started with; the
		// server-side cart is empty when the storefront posted its
		// own cartItems.
		snap := sess.Checkout.Attempt()
		evt := events.CheckoutCompleted{
			SessionID:   r.URL.Query().Get("session_id"),
			Items:       snap.Items,
			TotalAmount: snap.TotalPrice,
			Currency:    h.currency,
			CompletedAt: time.Now(),
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.publisher.PublishCheckoutCompleted(ctx, evt); err != nil {
			log.Printf("failed to publish checkout event: %v", err)
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Payment received. Thank you for your order!",
	})
}

// Cancel is the navigational endpoint for an abandoned payment. The
// cart is left exactly as it was.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session missing")
		return
	}

	if err := sess.Checkout.Cancel(); err != nil {
		log.Printf("checkout cancel outside redirect (request %s): %v", getRequestID(r.Context()), err)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Checkout cancelled.",
		"cart":    cartView(sess.Cart),
	})
}

func snapshotFromDTO(items []CheckoutItemDTO) cart.Snapshot {
	snap := cart.Snapshot{Items: make([]cart.LineItem, 0, len(items))}
	for _, it := range items {
		li := cart.LineItem{
			ID:        it.ID,
			Name:      it.Name,
			UnitPrice: money.FromFloat(it.UnitPrice),
			Quantity:  it.Quantity,
		}
		snap.Items = append(snap.Items, li)
		snap.TotalPrice += li.UnitPrice * int64(li.Quantity)
		snap.TotalQuantity += li.Quantity
	}
	return snap
}

// requestOrigin rebuilds the external origin for the success/cancel
// destinations, honouring the proxy's forwarded protocol.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + r.Host
}
