package repository

import (
	"context"
	"errors"

	"github.com/Pageblan/Carepulse/internal/appointment/domain"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	Recent(ctx context.Context, limit int64) ([]domain.Appointment, error)
	Create(ctx context.Context, a *domain.Appointment) error
	UpdateStatus(ctx context.Context, id string, status domain.Status, cancellationReason string) error
	CreateIndexes(ctx context.Context) error
}
