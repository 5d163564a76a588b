package appointment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	dateLayout        = "2006-01-02"
	defaultMinAdvance = 120
)

// ======================================================
// CLOCK
// ======================================================

// Clock carries the shop timezone and the time source.
type Clock struct {
	Loc *time.Location
	Now func() time.Time
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{
		Loc: loc,
		Now: timezone.Clock(loc),
	}
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now().In(c.location())
	}
	return c.Now().In(c.location())
}

func (c Clock) location() *time.Location {
	if c.Loc == nil {
		return time.UTC
	}
	return c.Loc
}

func (c Clock) parseDate(value string) (time.Time, error) {
	d, err := timezone.ParseDate(value, c.location())
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return d, nil
}

// ======================================================
// CACHE
// ======================================================

// AvailabilityCache stores computed slot lists per barber and day.
//
// Every Invalidate bumps the barber's generation. Get reports the generation
// it saw and Set writes only while it is unchanged, so a list computed before
// a booking never lands after that booking's Invalidate.
type AvailabilityCache interface {
	Get(ctx context.Context, barberID uint, date string, durationMinutes, stepMinutes int) (CachedSlots, error)
	Set(ctx context.Context, barberID uint, date string, durationMinutes, stepMinutes int, generation int64, slots []domain.Slot) error
	Invalidate(ctx context.Context, barberID uint, date string) error
}

type CachedSlots struct {
	Slots      []domain.Slot
	Hit        bool
	Generation int64
}

type NopCache struct{}

func (NopCache) Get(context.Context, uint, string, int, int) (CachedSlots, error) {
	return CachedSlots{}, nil
}

func (NopCache) Set(context.Context, uint, string, int, int, int64, []domain.Slot) error { return nil }

func (NopCache) Invalidate(context.Context, uint, string) error { return nil }

// invalidateDay never fails the caller: the booking is already stored, and a
// lost invalidation only costs stale slots until the TTL.
func invalidateDay(ctx context.Context, cache AvailabilityCache, log *slog.Logger, barberID uint, day string) {
	if err := cache.Invalidate(ctx, barberID, day); err != nil {
		log.WarnContext(ctx, "availability cache invalidation failed",
			"barber_id", barberID, "date", day, "error", err)
	}
}

// ======================================================
// HELPERS
// ======================================================

func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

func minAdvance(shop *models.Barbershop) time.Duration {
	m := shop.MinAdvanceMinutes
	if m <= 0 {
		m = defaultMinAdvance
	}
	return time.Duration(m) * time.Minute
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// loadSelection resolves the requested products into a validated selection.
func loadSelection(
	ctx context.Context,
	repo domain.Repository,
	barbershopID uint,
	productIDs []uint,
) ([]models.BarberProduct, domain.ServiceSelection, error) {

	ids := uniqueIDs(productIDs)
	if len(ids) == 0 {
		return nil, nil, domain.ErrNoServicesSelected
	}

	products, err := repo.ListProducts(ctx, barbershopID, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(products) != len(ids) {
		return nil, nil, httperr.ErrBusiness("product_not_found")
	}

	sel := domain.SelectionFromProducts(products)
	if err := sel.Validate(); err != nil {
		return nil, nil, err
	}
	return products, sel, nil
}

func workingHoursOf(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
) (domain.WorkingHours, error) {

	m, err := repo.GetWorkingHours(ctx, barberID)
	if err != nil {
		return domain.WorkingHours{}, err
	}
	return domain.WorkingHoursFromModel(m)
}

// dayBookings returns the bookings of barberID on the calendar day of date.
func dayBookings(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
	date time.Time,
	loc *time.Location,
) ([]domain.Booking, error) {

	start := domain.DateOf(date.In(loc))
	aps, err := repo.ListAppointmentsForPeriod(ctx, barberID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return domain.BookingsFromModels(aps, loc), nil
}

func ceilMinute(t time.Time) time.Time {
	r := t.Truncate(time.Minute)
	if r.Before(t) {
		r = r.Add(time.Minute)
	}
	return r
}
