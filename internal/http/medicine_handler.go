package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Pageblan/Carepulse/internal/catalog/domain"
	"github.com/Pageblan/Carepulse/internal/catalog/repository"
	"github.com/Pageblan/Carepulse/internal/images"
)

// ImageFetcher resolves a catalog image reference into displayable bytes.
type ImageFetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, string, error)
}

type MedicineHandler struct {
	catalog MedicineCatalog
	images  ImageFetcher
	timeout time.Duration
}

func NewMedicineHandler(catalog MedicineCatalog, fetcher ImageFetcher, timeout time.Duration) *MedicineHandler {
	return &MedicineHandler{
		catalog: catalog,
		images:  fetcher,
		timeout: timeout,
	}
}

func (h *MedicineHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	medicines, err := h.catalog.ListMedicines(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list medicines")
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *MedicineHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	med, err := h.catalog.GetMedicine(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrMedicineNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "medicine not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get medicine")
		return
	}
	respondJSON(w, http.StatusOK, med)
}

type CreateMedicineDTO struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	PriceQty    float64 `json:"priceqty"`
	Description string  `json:"description"`
	ImageRef    string  `json:"imageRef"`
}

func (h *MedicineHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateMedicineDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_name", "name is required")
		return
	}
	if req.PriceQty < 0 || req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return
	}

	med := &domain.Medicine{
		Name:        req.Name,
		Price:       req.Price,
		PriceQty:    req.PriceQty,
		Description: req.Description,
		ImageRef:    req.ImageRef,
	}
	if err := h.catalog.CreateMedicine(ctx, med); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create medicine")
		return
	}
	respondJSON(w, http.StatusCreated, med)
}

// Image proxies the medicine's image out of the document store.
func (h *MedicineHandler) Image(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	med, err := h.catalog.GetMedicine(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrMedicineNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "medicine not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get medicine")
		return
	}

	data, contentType, err := h.images.Fetch(ctx, med.ImageRef)
	if err != nil {
		if errors.Is(err, images.ErrNotImage) {
			respondError(w, http.StatusBadGateway, "bad_upstream", err.Error())
			return
		}
		respondError(w, http.StatusBadGateway, "bad_upstream", "failed to fetch image")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
