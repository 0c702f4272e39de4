package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Pageblan/Carepulse/internal/appointment/domain"
	"github.com/Pageblan/Carepulse/internal/appointment/repository"
	"github.com/Pageblan/Carepulse/internal/appointment/service"
)

// AppointmentBook is what the admin dashboard needs from the
// appointment service.
type AppointmentBook interface {
	Dashboard(ctx context.Context, status domain.Status) (*service.Summary, error)
	Book(ctx context.Context, a *domain.Appointment) error
	Schedule(ctx context.Context, id string) error
	Cancel(ctx context.Context, id, reason string) error
}

type AppointmentHandler struct {
	appointments AppointmentBook
	timeout      time.Duration
}

func NewAppointmentHandler(appointments AppointmentBook, timeout time.Duration) *AppointmentHandler {
	return &AppointmentHandler{
		appointments: appointments,
		timeout:      timeout,
	}
}

func (h *AppointmentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	statusFilter := domain.Status(r.URL.Query().Get("status"))
	if statusFilter != "" && !statusFilter.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown appointment status")
		return
	}

	summary, err := h.appointments.Dashboard(ctx, statusFilter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load appointments")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

type BookAppointmentDTO struct {
	PatientName string    `json:"patientName"`
	Physician   string    `json:"physician"`
	Schedule    time.Time `json:"schedule"`
	Reason      string    `json:"reason"`
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req BookAppointmentDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PatientName == "" {
		respondError(w, http.StatusBadRequest, "invalid_patient", "patientName is required")
		return
	}

	a := &domain.Appointment{
		PatientName: req.PatientName,
		Physician:   req.Physician,
		Schedule:    req.Schedule,
		Reason:      req.Reason,
	}
	if err := h.appointments.Book(ctx, a); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to book appointment")
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

type UpdateAppointmentDTO struct {
	Status             domain.Status `json:"status"`
	CancellationReason string        `json:"cancellationReason,omitempty"`
}

// UpdateStatus handles the dashboard's schedule/cancel actions.
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")

	var req UpdateAppointmentDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	var err error
	switch req.Status {
	case domain.StatusScheduled:
		err = h.appointments.Schedule(ctx, id)
	case domain.StatusCancelled:
		err = h.appointments.Cancel(ctx, id, req.CancellationReason)
	default:
		respondError(w, http.StatusBadRequest, "invalid_status", `status must be "scheduled" or "cancelled"`)
		return
	}

	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "appointment not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update appointment")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": req.Status.String()})
}
