package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func availability(repo *fakeRepo, cache AvailabilityCache, now time.Time) *GetAvailability {
	return NewGetAvailability(repo, calculator(), cache, fixedClock(now), metrics.New("test"), nil)
}

func TestGetAvailability_CombinedServices(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(1, at(monday, "10:00"), 60, "scheduled")

	uc := availability(repo, nil, monday.AddDate(0, 0, -1))
	out, err := uc.Execute(context.Background(), GetAvailabilityInput{
		BarbershopID: 1,
		ProductIDs:   []uint{10, 11},
		Date:         "2026-10-19",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), out.BarberID)
	assert.Equal(t, 50, out.DurationMinutes)
	assert.InDelta(t, 65.0, out.TotalPrice, 0.001)
	assert.Equal(t, 30, out.StepMinutes)
	assert.True(t, out.Available)

	starts := domain.StartTimes(out.Slots)
	assert.Equal(t, "09:00", starts[0])
	assert.Equal(t, "18:00", starts[len(starts)-1])
	assert.NotContains(t, starts, "09:30")
	assert.NotContains(t, starts, "10:00")
	assert.NotContains(t, starts, "10:30")
	assert.Contains(t, starts, "11:00")
	assert.Len(t, starts, 16)
}

func TestGetAvailability_MinimumAdvanceSameDay(t *testing.T) {
	repo := newFakeRepo()
	uc := availability(repo, nil, at(monday, "08:30"))

	out, err := uc.Execute(context.Background(), GetAvailabilityInput{
		BarbershopID: 1,
		ProductIDs:   []uint{10},
		Date:         "2026-10-19",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Slots)
	assert.Equal(t, "10:30", out.Slots[0].Start.String())
}

func TestGetAvailability_EmptyIsNotAnError(t *testing.T) {
	repo := newFakeRepo()

	// data passada
	out, err := availability(repo, nil, monday.AddDate(0, 0, 2)).Execute(context.Background(), GetAvailabilityInput{
		BarbershopID: 1, ProductIDs: []uint{10}, Date: "2026-10-19",
	})
	require.NoError(t, err)
	assert.False(t, out.Available)
	assert.NotNil(t, out.Slots)
	assert.Empty(t, out.Slots)

	// domingo
	out, err = availability(repo, nil, monday.AddDate(0, 0, -7)).Execute(context.Background(), GetAvailabilityInput{
		BarbershopID: 1, ProductIDs: []uint{10}, Date: "2026-10-18",
	})
	require.NoError(t, err)
	assert.False(t, out.Available)
	assert.Empty(t, out.Slots)
}

func TestGetAvailability_UsesShopStepAndBarber(t *testing.T) {
	repo := newFakeRepo()
	repo.shops[0].SlotStepMinutes = 15
	repo.hours[2] = hoursModel("14:00", "16:00", 1)

	out, err := availability(repo, nil, monday.AddDate(0, 0, -1)).Execute(context.Background(), GetAvailabilityInput{
		BarbershopID: 1, BarberID: 2, ProductIDs: []uint{10}, Date: "2026-10-19",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, out.StepMinutes)
	assert.Equal(t,
		[]string{"14:00", "14:15", "14:30", "14:45", "15:00", "15:15", "15:30"},
		domain.StartTimes(out.Slots),
	)
}

func TestGetAvailability_Cache(t *testing.T) {
	repo := newFakeRepo()
	cache := newMemCache()
	uc := availability(repo, cache, monday.AddDate(0, 0, -1))
	in := GetAvailabilityInput{BarbershopID: 1, ProductIDs: []uint{10}, Date: "2026-10-19"}

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, 2, cache.gets)
}

// bookingDuringRead runs onList once, after the bookings were read and before
// the caller gets them.
type bookingDuringRead struct {
	*fakeRepo
	onList func()
}

func (r *bookingDuringRead) ListAppointmentsForPeriod(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	out, err := r.fakeRepo.ListAppointmentsForPeriod(ctx, barberID, start, end)
	if hook := r.onList; hook != nil {
		r.onList = nil
		hook()
	}
	return out, err
}

func TestGetAvailability_BookingDuringFillIsNotCached(t *testing.T) {
	repo := newFakeRepo()
	cache := newMemCache()
	now := monday.AddDate(0, 0, -1)
	ctx := context.Background()

	dispatcher, _ := newDispatcher(t)
	create := NewCreateAppointment(repo, calculator(), cache, fixedClock(now), dispatcher, nil)

	racing := &bookingDuringRead{fakeRepo: repo}
	racing.onList = func() {
		booking := bookingInput("09:00")
		booking.ProductIDs = []uint{10}
		_, err := create.Execute(ctx, booking)
		require.NoError(t, err)
	}

	uc := NewGetAvailability(racing, calculator(), cache, fixedClock(now), metrics.New("test"), nil)
	in := GetAvailabilityInput{BarbershopID: 1, ProductIDs: []uint{10}, Date: "2026-10-19"}

	// calculado antes da reserva existir
	first, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Contains(t, domain.StartTimes(first.Slots), "09:00")

	second, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	starts := domain.StartTimes(second.Slots)
	assert.NotContains(t, starts, "09:00")
	assert.Contains(t, starts, "09:30")
	// a lista antiga não foi gravada, então a segunda consulta recalcula
	assert.Equal(t, 3, repo.listCalls)

	drain(t, dispatcher)
}

func TestGetAvailability_CacheDownStillAnswers(t *testing.T) {
	repo := newFakeRepo()
	cache := &failingCache{}
	uc := NewGetAvailability(repo, calculator(), cache, fixedClock(monday.AddDate(0, 0, -1)), metrics.New("test"), nil)

	out, err := uc.Execute(context.Background(), GetAvailabilityInput{BarbershopID: 1, ProductIDs: []uint{10}, Date: "2026-10-19"})
	require.NoError(t, err)
	assert.True(t, out.Available)
	assert.Zero(t, cache.sets)
}

func TestGetAvailability_Errors(t *testing.T) {
	repo := newFakeRepo()
	uc := availability(repo, nil, monday.AddDate(0, 0, -1))
	ctx := context.Background()

	_, err := uc.Execute(ctx, GetAvailabilityInput{BarbershopID: 9, ProductIDs: []uint{10}, Date: "2026-10-19"})
	assert.True(t, httperr.IsBusiness(err, "barbershop_not_found"))

	_, err = uc.Execute(ctx, GetAvailabilityInput{BarbershopID: 1, BarberID: 9, ProductIDs: []uint{10}, Date: "2026-10-19"})
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	_, err = uc.Execute(ctx, GetAvailabilityInput{BarbershopID: 1, ProductIDs: []uint{10}, Date: "19/10/2026"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = uc.Execute(ctx, GetAvailabilityInput{BarbershopID: 1, Date: "2026-10-19"})
	assert.ErrorIs(t, err, domain.ErrNoServicesSelected)

	_, err = uc.Execute(ctx, GetAvailabilityInput{BarbershopID: 1, ProductIDs: []uint{12}, Date: "2026-10-19"})
	assert.True(t, httperr.IsBusiness(err, "product_not_found"))

	repo.hours[1] = hoursModel("18:00", "09:00", 1)
	_, err = uc.Execute(ctx, GetAvailabilityInput{BarbershopID: 1, ProductIDs: []uint{10}, Date: "2026-10-19"})
	assert.ErrorIs(t, err, domain.ErrInvalidWorkingHours)
}
