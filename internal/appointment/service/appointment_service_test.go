package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pageblan/Carepulse/internal/appointment/domain"
	"github.com/Pageblan/Carepulse/internal/appointment/repository"
)

type mockRepository struct {
	m            sync.Mutex
	appointments []domain.Appointment
	err          error
}

func (m *mockRepository) Recent(context.Context, int64) ([]domain.Appointment, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.appointments, nil
}

func (m *mockRepository) Create(_ context.Context, a *domain.Appointment) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.appointments = append(m.appointments, *a)
	return nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id string, status domain.Status, reason string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.appointments {
		if m.appointments[i].ID == id {
			m.appointments[i].Status = status
			m.appointments[i].CancellationReason = reason
			return nil
		}
	}
	return repository.ErrAppointmentNotFound
}

func (m *mockRepository) CreateIndexes(context.Context) error { return nil }

func seededRepo() *mockRepository {
	return &mockRepository{appointments: []domain.Appointment{
		{ID: "a1", PatientName: "Alice", Status: domain.StatusScheduled},
		{ID: "a2", PatientName: "Bob", Status: domain.StatusPending},
		{ID: "a3", PatientName: "Cara", Status: domain.StatusPending},
		{ID: "a4", PatientName: "Dan", Status: domain.StatusCancelled},
	}}
}

func TestDashboard_Counts(t *testing.T) {
	svc := NewAppointmentService(seededRepo())

	summary, err := svc.Dashboard(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ScheduledCount)
	assert.Equal(t, 2, summary.PendingCount)
	assert.Equal(t, 1, summary.CancelledCount)
	assert.Len(t, summary.Documents, 4)
}

func TestDashboard_FilterKeepsCounts(t *testing.T) {
	svc := NewAppointmentService(seededRepo())

	summary, err := svc.Dashboard(context.Background(), domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, summary.Documents, 2)
	assert.Equal(t, "Bob", summary.Documents[0].PatientName)
	// Counts stay over the whole window while filtering.
	assert.Equal(t, 1, summary.ScheduledCount)
	assert.Equal(t, 1, summary.CancelledCount)
}

func TestDashboard_UnknownStatus(t *testing.T) {
	svc := NewAppointmentService(seededRepo())

	_, err := svc.Dashboard(context.Background(), domain.Status("confirmed"))
	assert.Error(t, err)
}

func TestDashboard_RepoError(t *testing.T) {
	svc := NewAppointmentService(&mockRepository{err: errors.New("mongo down")})

	_, err := svc.Dashboard(context.Background(), "")
	assert.Error(t, err)
}

func TestScheduleAndCancel(t *testing.T) {
	repo := seededRepo()
	svc := NewAppointmentService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Schedule(ctx, "a2"))
	assert.Equal(t, domain.StatusScheduled, repo.appointments[1].Status)

	require.NoError(t, svc.Cancel(ctx, "a3", "patient request"))
	assert.Equal(t, domain.StatusCancelled, repo.appointments[2].Status)
	assert.Equal(t, "patient request", repo.appointments[2].CancellationReason)

	assert.ErrorIs(t, svc.Schedule(ctx, "missing"), repository.ErrAppointmentNotFound)
}

func TestBook_ForcesPending(t *testing.T) {
	repo := &mockRepository{}
	svc := NewAppointmentService(repo)

	a := &domain.Appointment{ID: "a9", PatientName: "Eve", Status: domain.StatusScheduled}
	require.NoError(t, svc.Book(context.Background(), a))
	assert.Equal(t, domain.StatusPending, repo.appointments[0].Status)
}
