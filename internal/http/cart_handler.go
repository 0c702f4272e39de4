package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Pageblan/Carepulse/internal/cart"
	"github.com/Pageblan/Carepulse/internal/catalog/domain"
	"github.com/Pageblan/Carepulse/internal/catalog/repository"
	"github.com/Pageblan/Carepulse/internal/money"
)

// MedicineCatalog is what the cart and medicine handlers need from the
// catalog service.
type MedicineCatalog interface {
	ListMedicines(ctx context.Context) ([]domain.Medicine, error)
	GetMedicine(ctx context.Context, id string) (*domain.Medicine, error)
	CreateMedicine(ctx context.Context, m *domain.Medicine) error
}

type CartHandler struct {
	catalog MedicineCatalog
	timeout time.Duration
}

func NewCartHandler(catalog MedicineCatalog, timeout time.Duration) *CartHandler {
	return &CartHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type AdjustRequestDTO struct {
	Action string `json:"action"`
}

type CartItemDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartViewDTO struct {
	Items            []CartItemDTO `json:"items"`
	TotalPrice       string        `json:"total_price"`
	TotalQuantity    int           `json:"total_quantity"`
	PendingSelection int           `json:"pending_selection"`
}

func cartView(s *cart.Store) CartViewDTO {
	snap := s.Snapshot()
	items := make([]CartItemDTO, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, CartItemDTO{
			ID:        item.ID,
			Name:      item.Name,
			UnitPrice: money.Format(item.UnitPrice),
			Quantity:  item.Quantity,
			LineTotal: money.Format(item.UnitPrice * int64(item.Quantity)),
		})
	}
	return CartViewDTO{
		Items:            items,
		TotalPrice:       money.Format(snap.TotalPrice),
		TotalQuantity:    snap.TotalQuantity,
		PendingSelection: s.Selector(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session missing")
		return
	}
	respondJSON(w, http.StatusOK, cartView(sess.Cart))
}

// AddItem resolves the product in the catalog so the cart captures the
// add-time name and price, then adds the requested quantity.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess := getSessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session missing")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity == 0 {
		// Default to the session's pending selection quantity.
		req.Quantity = sess.Cart.Selector()
	}

	med, err := h.catalog.GetMedicine(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrMedicineNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "medicine not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to look up medicine")
		return
	}

	p := cart.Product{
		ID:        med.ID,
		Name:      med.Name,
		UnitPrice: money.FromFloat(med.PriceQty),
	}
	if err := sess.Cart.Add(p, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add item")
		return
	}

	respondJSON(w, http.StatusCreated, cartView(sess.Cart))
}

func (h *CartHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session missing")
		return
	}

	productID := chi.URLParam(r, "product_id")

	var req AdjustRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	switch req.Action {
	case "inc":
		sess.Cart.AdjustQuantity(productID, cart.Increment)
	case "dec":
		sess.Cart.AdjustQuantity(productID, cart.Decrement)
	default:
		respondError(w, http.StatusBadRequest, "invalid_action", `action must be "inc" or "dec"`)
		return
	}

	respondJSON(w, http.StatusOK, cartView(sess.Cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session missing")
		return
	}

	sess.Cart.Remove(chi.URLParam(r, "product_id"))
	respondJSON(w, http.StatusOK, cartView(sess.Cart))
}

func (h *CartHandler) AdjustSelector(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r.Context())
	if sess == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session missing")
		return
	}

	var req AdjustRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	switch req.Action {
	case "inc":
		sess.Cart.IncrementSelector()
	case "dec":
		sess.Cart.DecrementSelector()
	default:
		respondError(w, http.StatusBadRequest, "invalid_action", `action must be "inc" or "dec"`)
		return
	}

	respondJSON(w, http.StatusOK, cartView(sess.Cart))
}
