package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Pageblan/Carepulse/internal/appointment/domain"
	"github.com/Pageblan/Carepulse/internal/appointment/repository"
)

const recentLimit = 100

// Summary is the admin dashboard payload: per-status counts over the
// recent window plus the documents themselves.
type Summary struct {
	ScheduledCount int                  `json:"scheduledCount"`
	PendingCount   int                  `json:"pendingCount"`
	CancelledCount int                  `json:"cancelledCount"`
	Documents      []domain.Appointment `json:"documents"`
}

type AppointmentService struct {
	repo repository.AppointmentRepository
}

func NewAppointmentService(repo repository.AppointmentRepository) *AppointmentService {
	return &AppointmentService{repo: repo}
}

// Dashboard returns recent appointments with counts. An optional status
// narrows the documents; the counts always cover the whole window so the
// stat cards stay stable while filtering.
func (s *AppointmentService) Dashboard(ctx context.Context, statusFilter domain.Status) (*Summary, error) {
	if statusFilter != "" && !statusFilter.IsValid() {
		return nil, fmt.Errorf("unknown appointment status %q", statusFilter)
	}

	appointments, err := s.repo.Recent(ctx, recentLimit)
	if err != nil {
		log.Printf("repo recent appointments error: %v", err)
		return nil, err
	}

	summary := &Summary{Documents: make([]domain.Appointment, 0, len(appointments))}
	for _, a := range appointments {
		switch a.Status {
		case domain.StatusScheduled:
			summary.ScheduledCount++
		case domain.StatusPending:
			summary.PendingCount++
		case domain.StatusCancelled:
			summary.CancelledCount++
		}
		if statusFilter == "" || a.Status == statusFilter {
			summary.Documents = append(summary.Documents, a)
		}
	}
	return summary, nil
}

// Book creates a new appointment in pending state.
func (s *AppointmentService) Book(ctx context.Context, a *domain.Appointment) error {
	a.Status = domain.StatusPending
	if err := s.repo.Create(ctx, a); err != nil {
		log.Printf("repo create appointment error: %v", err)
		return err
	}
	return nil
}

// Schedule confirms a pending appointment.
func (s *AppointmentService) Schedule(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, domain.StatusScheduled, "")
}

// Cancel cancels an appointment, recording the reason.
func (s *AppointmentService) Cancel(ctx context.Context, id, reason string) error {
	return s.repo.UpdateStatus(ctx, id, domain.StatusCancelled, reason)
}
