package appointment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/requestid"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	BarberID     uint // 0 = dono da barbearia

	ClientName  string
	ClientPhone string
	ClientEmail string

	ProductIDs []uint

	Date  string
	Time  string
	Notes string

	// ActorID is the authenticated barber, nil for public bookings.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	calc  *domain.Calculator
	cache AvailabilityCache
	clock Clock
	audit *audit.Dispatcher
	log   *slog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	calc *domain.Calculator,
	cache AvailabilityCache,
	clock Clock,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *CreateAppointment {
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &CreateAppointment{
		repo:  repo,
		calc:  calc,
		cache: cache,
		clock: clock,
		audit: audit,
		log:   log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Barbearia e barbeiro
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, notFound(err, "barbershop_not_found")
	}

	barber, err := uc.repo.GetBarber(ctx, shop.ID, in.BarberID)
	if err != nil {
		return nil, notFound(err, "barber_not_found")
	}

	// --------------------------------------------------
	// 2️⃣ Cliente: dados mínimos
	// --------------------------------------------------
	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		return nil, httperr.ErrBusiness("invalid_request")
	}
	phone, ok := validators.NormalizePhone(in.ClientPhone)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_phone")
	}
	email := strings.TrimSpace(in.ClientEmail)
	if email != "" && !validators.IsEmailFormat(email) {
		return nil, httperr.ErrBusiness("invalid_email")
	}

	// --------------------------------------------------
	// 3️⃣ Data / hora no timezone da barbearia
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(in.Date, in.Time, uc.clock.location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 4️⃣ Antecedência mínima
	// --------------------------------------------------
	if start.Before(uc.clock.now().Add(minAdvance(shop))) {
		return nil, domain.ErrTooSoon
	}

	// --------------------------------------------------
	// 5️⃣ Serviços
	// --------------------------------------------------
	products, sel, err := loadSelection(ctx, uc.repo, shop.ID, in.ProductIDs)
	if err != nil {
		return nil, err
	}
	duration := sel.TotalDuration()

	// --------------------------------------------------
	// 6️⃣ Working hours + almoço + conflitos
	// --------------------------------------------------
	wh, err := workingHoursOf(ctx, uc.repo, barber.ID)
	if err != nil {
		return nil, err
	}

	existing, err := dayBookings(ctx, uc.repo, barber.ID, start, uc.clock.location())
	if err != nil {
		return nil, err
	}

	date := domain.DateOf(start)
	if err := uc.calc.CheckBooking(
		wh,
		date,
		existing,
		domain.TimeOfDayOf(start),
		duration,
	); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7️⃣ Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(ctx, shop.ID, name, phone, email)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8️⃣ Criação (o repositório revalida o conflito sob lock)
	// --------------------------------------------------
	ap := &models.Appointment{
		PublicCode:   uuid.NewString(),
		BarbershopID: shop.ID,
		BarberID:     barber.ID,
		ClientID:     client.ID,
		Client:       *client,
		Services:     products,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(duration) * time.Minute),
		DurationMin:  duration,
		TotalPrice:   sel.TotalPrice(),
		Status:       string(domain.InitialStatus()),
		Notes:        strings.TrimSpace(in.Notes),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, domain.ErrTimeConflict
		}
		return nil, err
	}

	// --------------------------------------------------
	// 9️⃣ Cache + auditoria
	// --------------------------------------------------
	invalidateDay(ctx, uc.cache, uc.log, barber.ID, date.Format(dateLayout))

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       in.ActorID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		RequestID:    requestid.From(ctx),
		Metadata: map[string]any{
			"barber_id":    barber.ID,
			"start_time":   ap.StartTime,
			"duration_min": ap.DurationMin,
			"total_price":  ap.TotalPrice,
			"public":       in.ActorID == nil,
		},
	})

	return ap, nil
}
