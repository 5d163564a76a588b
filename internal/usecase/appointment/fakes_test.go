package appointment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// REPOSITORY
// ======================================================

type fakeRepo struct {
	shops        []models.Barbershop
	users        []models.User
	products     []models.BarberProduct
	clients      []models.Client
	hours        map[uint]*models.WorkingHours
	appointments []models.Appointment
	reviews      []models.Review

	listCalls int
	nextID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops: []models.Barbershop{
			{ID: 1, Name: "Navalha", Slug: "navalha", MinAdvanceMinutes: 120},
		},
		users: []models.User{
			{ID: 1, BarbershopID: 1, Name: "Dono", Role: models.RoleOwner},
			{ID: 2, BarbershopID: 1, Name: "Rafa", Role: models.RoleBarber},
		},
		products: []models.BarberProduct{
			{ID: 10, BarbershopID: 1, Name: "Corte", DurationMin: 30, Price: 40, Active: true},
			{ID: 11, BarbershopID: 1, Name: "Barba", DurationMin: 20, Price: 25, Active: true},
			{ID: 12, BarbershopID: 1, Name: "Pigmentação", DurationMin: 60, Price: 80, Active: false},
		},
		hours:  map[uint]*models.WorkingHours{},
		nextID: 100,
	}
}

func (r *fakeRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	for _, s := range r.shops {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetBarbershopBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	for _, s := range r.shops {
		if s.Slug == slug {
			s := s
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetBarber(_ context.Context, shopID, barberID uint) (*models.User, error) {
	for _, u := range r.users {
		if u.BarbershopID != shopID {
			continue
		}
		if (barberID == 0 && u.Role == models.RoleOwner) || u.ID == barberID {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListProducts(_ context.Context, shopID uint, ids []uint) ([]models.BarberProduct, error) {
	out := []models.BarberProduct{}
	for _, id := range ids {
		for _, p := range r.products {
			if p.ID == id && p.BarbershopID == shopID && p.Active {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, shopID uint, name, phone, email string) (*models.Client, error) {
	for _, c := range r.clients {
		if c.BarbershopID == shopID && c.Phone == phone {
			c := c
			return &c, nil
		}
	}
	r.nextID++
	c := models.Client{ID: r.nextID, BarbershopID: shopID, Name: name, Phone: phone, Email: email}
	r.clients = append(r.clients, c)
	return &c, nil
}

func (r *fakeRepo) GetWorkingHours(_ context.Context, barberID uint) (*models.WorkingHours, error) {
	return r.hours[barberID], nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	r.listCalls++
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	for _, other := range r.appointments {
		st, _ := domain.ParseStatus(other.Status)
		if other.BarberID == ap.BarberID && st.Blocks() &&
			other.StartTime.Before(ap.EndTime) && other.EndTime.After(ap.StartTime) {
			return domain.ErrTimeConflict
		}
	}
	r.nextID++
	ap.ID = r.nextID
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *fakeRepo) find(match func(models.Appointment) bool) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if match(ap) {
			ap := ap
			for _, rv := range r.reviews {
				if rv.AppointmentID == ap.ID {
					rv := rv
					ap.Review = &rv
				}
			}
			return &ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetAppointmentForBarber(_ context.Context, id, barberID uint) (*models.Appointment, error) {
	return r.find(func(ap models.Appointment) bool { return ap.ID == id && ap.BarberID == barberID })
}

func (r *fakeRepo) GetAppointmentByCode(_ context.Context, shopID uint, code string) (*models.Appointment, error) {
	return r.find(func(ap models.Appointment) bool { return ap.BarbershopID == shopID && ap.PublicCode == code })
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) CreateReview(_ context.Context, review *models.Review) error {
	for _, rv := range r.reviews {
		if rv.AppointmentID == review.AppointmentID {
			return domain.ErrAlreadyReviewed
		}
	}
	r.nextID++
	review.ID = r.nextID
	r.reviews = append(r.reviews, *review)
	return nil
}

// seed stores an appointment of the barber starting at start.
func (r *fakeRepo) seed(barberID uint, start time.Time, minutes int, status string) models.Appointment {
	r.nextID++
	ap := models.Appointment{
		ID:           r.nextID,
		PublicCode:   fmt.Sprintf("code-%d", r.nextID),
		BarbershopID: 1,
		BarberID:     barberID,
		Client:       models.Client{Name: "Cliente", Phone: "11988887777"},
		Services:     []models.BarberProduct{r.products[0]},
		StartTime:    start,
		EndTime:      start.Add(time.Duration(minutes) * time.Minute),
		DurationMin:  minutes,
		TotalPrice:   40,
		Status:       status,
	}
	r.appointments = append(r.appointments, ap)
	return ap
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// CACHE
// ======================================================

type memCache struct {
	data        map[string][]domain.Slot
	generations map[uint]int64
	gets        int
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]domain.Slot{}, generations: map[uint]int64{}}
}

func cacheKey(barberID uint, date string, duration, step int) string {
	return fmt.Sprintf("%d|%s|%d|%d", barberID, date, duration, step)
}

func (c *memCache) Get(_ context.Context, barberID uint, date string, duration, step int) (CachedSlots, error) {
	c.gets++
	s, ok := c.data[cacheKey(barberID, date, duration, step)]
	return CachedSlots{Slots: s, Hit: ok, Generation: c.generations[barberID]}, nil
}

func (c *memCache) Set(_ context.Context, barberID uint, date string, duration, step int, generation int64, slots []domain.Slot) error {
	if c.generations[barberID] != generation {
		return nil
	}
	c.data[cacheKey(barberID, date, duration, step)] = slots
	return nil
}

func (c *memCache) Invalidate(_ context.Context, barberID uint, date string) error {
	c.generations[barberID]++
	prefix := fmt.Sprintf("%d|%s|", barberID, date)
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	c.invalidated = append(c.invalidated, fmt.Sprintf("%d|%s", barberID, date))
	return nil
}

// failingCache fails every call, like an unreachable Redis.
type failingCache struct{ sets int }

func (c *failingCache) Get(context.Context, uint, string, int, int) (CachedSlots, error) {
	return CachedSlots{}, errors.New("redis down")
}

func (c *failingCache) Set(context.Context, uint, string, int, int, int64, []domain.Slot) error {
	c.sets++
	return errors.New("redis down")
}

func (c *failingCache) Invalidate(context.Context, uint, string) error {
	return errors.New("redis down")
}

// ======================================================
// AUDIT
// ======================================================

type recordSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordSink) Handle(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

func newDispatcher(t *testing.T) (*audit.Dispatcher, *recordSink) {
	t.Helper()
	sink := &recordSink{}
	return audit.NewDispatcher(slog.New(slog.NewTextHandler(io.Discard, nil)), sink), sink
}

func drain(t *testing.T, d *audit.Dispatcher) {
	t.Helper()
	require.NoError(t, d.Close(context.Background()))
}

// ======================================================
// CLOCK
// ======================================================

// monday is 2026-10-19, a Monday.
var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hm string) time.Time {
	return domain.MustTimeOfDay(hm).On(day)
}

func fixedClock(now time.Time) Clock {
	return Clock{Loc: time.UTC, Now: func() time.Time { return now }}
}

func calculator() *domain.Calculator {
	return domain.NewCalculator(domain.CalculatorConfig{StepMinutes: 30})
}
