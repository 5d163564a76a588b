package appointment

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func TestChangeStatus_ConfirmThenComplete(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.seed(1, at(monday, "10:00"), 30, "agendado")
	cache := newMemCache()
	dispatcher, sink := newDispatcher(t)

	uc := NewChangeAppointmentStatus(repo, cache, fixedClock(at(monday, "09:00")), dispatcher, nil, nil)
	ctx := context.Background()

	got, err := uc.Execute(ctx, ChangeStatusInput{BarbershopID: 1, BarberID: 1, AppointmentID: ap.ID, Status: "confirmado"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)
	require.NotNil(t, got.ConfirmedAt)

	got, err = uc.Execute(ctx, ChangeStatusInput{BarbershopID: 1, BarberID: 1, AppointmentID: ap.ID, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, "completed", repo.appointments[0].Status)

	assert.Equal(t, []string{"1|2026-10-19", "1|2026-10-19"}, cache.invalidated)

	drain(t, dispatcher)
	assert.Equal(t, []string{"appointment_confirmed", "appointment_completed"}, sink.actions())
}

func TestChangeStatus_Rejections(t *testing.T) {
	repo := newFakeRepo()
	done := repo.seed(1, at(monday, "10:00"), 30, "canceled")
	other := repo.seed(2, at(monday, "11:00"), 30, "scheduled")

	uc := NewChangeAppointmentStatus(repo, nil, fixedClock(monday), nil, nil, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, ChangeStatusInput{BarbershopID: 1, BarberID: 1, AppointmentID: done.ID, Status: "completed"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "canceled", repo.appointments[0].Status)

	_, err = uc.Execute(ctx, ChangeStatusInput{BarbershopID: 1, BarberID: 1, AppointmentID: done.ID, Status: "postponed"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	// agendamento de outro barbeiro
	_, err = uc.Execute(ctx, ChangeStatusInput{BarbershopID: 1, BarberID: 1, AppointmentID: other.ID, Status: "confirmed"})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	_, err = uc.Execute(ctx, ChangeStatusInput{BarbershopID: 2, BarberID: 2, AppointmentID: other.ID, Status: "confirmed"})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestListAppointments(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(1, at(monday, "15:00"), 30, "scheduled")
	repo.seed(1, at(monday, "09:00"), 30, "concluido")
	repo.seed(1, at(monday.AddDate(0, 0, 1), "09:00"), 30, "scheduled")
	repo.seed(1, at(monday.AddDate(0, 1, 0), "09:00"), 30, "scheduled")
	ctx := context.Background()

	byDate := NewListAppointmentsByDate(repo, fixedClock(monday))
	all, err := byDate.Execute(ctx, 1, "2026-10-19", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "09:00", all[0].Time)
	assert.Equal(t, "completed", all[0].Status)
	assert.Empty(t, all[0].Actions)
	assert.Equal(t, []string{"confirm", "cancel"}, all[1].Actions)
	assert.Equal(t, "Corte", all[1].Services[0].Name)

	filtered, err := byDate.Execute(ctx, 1, "2026-10-19", "agendado")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "15:00", filtered[0].Time)

	_, err = byDate.Execute(ctx, 1, "2026-10-19", "whatever")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	byMonth := NewListAppointmentsByMonth(repo, fixedClock(monday))
	month, err := byMonth.Execute(ctx, 1, 2026, 10, "")
	require.NoError(t, err)
	assert.Len(t, month, 3)

	_, err = byMonth.Execute(ctx, 1, 2026, 13, "")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestChangeStatus_InvalidationFailureIsLogged(t *testing.T) {
	repo := newFakeRepo()
	ap := repo.seed(1, at(monday, "10:00"), 30, "scheduled")
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	uc := NewChangeAppointmentStatus(repo, &failingCache{}, fixedClock(at(monday, "09:00")), nil, nil, log)
	got, err := uc.Execute(context.Background(), ChangeStatusInput{
		BarbershopID:  1,
		BarberID:      1,
		AppointmentID: ap.ID,
		Status:        "canceled",
	})
	require.NoError(t, err)
	assert.Equal(t, "canceled", got.Status)
	assert.Contains(t, logs.String(), "availability cache invalidation failed")
}
