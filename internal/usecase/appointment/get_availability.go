package appointment

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/telemetry"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type GetAvailabilityInput struct {
	BarbershopID uint
	BarberID     uint // 0 = dono da barbearia
	ProductIDs   []uint
	Date         string
}

type GetAvailabilityOutput struct {
	Date            string        `json:"date"`
	BarberID        uint          `json:"barber_id"`
	DurationMinutes int           `json:"duration_minutes"`
	TotalPrice      float64       `json:"total_price"`
	StepMinutes     int           `json:"step_minutes"`
	Slots           []domain.Slot `json:"slots"`
	Available       bool          `json:"available"`
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	repo    domain.Repository
	calc    *domain.Calculator
	cache   AvailabilityCache
	clock   Clock
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewGetAvailability(
	repo domain.Repository,
	calc *domain.Calculator,
	cache AvailabilityCache,
	clock Clock,
	m *metrics.Metrics,
	log *slog.Logger,
) *GetAvailability {
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &GetAvailability{
		repo:    repo,
		calc:    calc,
		cache:   cache,
		clock:   clock,
		metrics: m,
		log:     log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) (*GetAvailabilityOutput, error) {

	ctx, span := telemetry.StartSpan(ctx, "availability.get",
		attribute.Int64("barbershop.id", int64(in.BarbershopID)),
		attribute.String("date", in.Date),
	)
	defer span.End()

	out, err := uc.execute(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "availability failed")
		uc.metrics.ObserveAvailability(metrics.OutcomeError, 0)
		return nil, err
	}
	span.SetAttributes(attribute.Int("slots", len(out.Slots)))

	outcome := metrics.OutcomeSlots
	if !out.Available {
		outcome = metrics.OutcomeEmpty
	}
	uc.metrics.ObserveAvailability(outcome, len(out.Slots))
	return out, nil
}

func (uc *GetAvailability) execute(
	ctx context.Context,
	in GetAvailabilityInput,
) (*GetAvailabilityOutput, error) {

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

	date, err := uc.clock.parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Serviços selecionados
	// --------------------------------------------------
	_, sel, err := loadSelection(ctx, uc.repo, shop.ID, in.ProductIDs)
	if err != nil {
		return nil, err
	}
	duration := sel.TotalDuration()

	calc := uc.calc.WithStep(shop.SlotStepMinutes)

	out := &GetAvailabilityOutput{
		Date:            date.Format(dateLayout),
		BarberID:        barber.ID,
		DurationMinutes: duration,
		TotalPrice:      sel.TotalPrice(),
		StepMinutes:     calc.Step(),
		Slots:           []domain.Slot{},
	}

	// --------------------------------------------------
	// 3️⃣ Datas passadas não têm horários
	// --------------------------------------------------
	now := uc.clock.now()
	earliest := ceilMinute(now.Add(minAdvance(shop)))
	if date.Before(domain.DateOf(now)) || domain.DateOf(earliest).After(date) {
		return out, nil
	}

	// --------------------------------------------------
	// 4️⃣ Cache ou cálculo
	// --------------------------------------------------
	slots, err := uc.slots(ctx, calc, barber.ID, out.Date, date, duration)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Antecedência mínima
	// --------------------------------------------------
	if domain.SameDay(earliest, date) {
		slots = domain.DropBefore(slots, domain.TimeOfDayOf(earliest))
	}

	if slots != nil {
		out.Slots = slots
	}
	out.Available = len(slots) > 0
	return out, nil
}

func (uc *GetAvailability) slots(
	ctx context.Context,
	calc *domain.Calculator,
	barberID uint,
	dateKey string,
	date time.Time,
	duration int,
) ([]domain.Slot, error) {

	cached, cacheErr := uc.cache.Get(ctx, barberID, dateKey, duration, calc.Step())
	if cacheErr != nil {
		uc.log.WarnContext(ctx, "availability cache read failed",
			"barber_id", barberID, "date", dateKey, "error", cacheErr)
	}
	uc.metrics.ObserveCache(cached.Hit)
	if cached.Hit {
		return cached.Slots, nil
	}

	wh, err := workingHoursOf(ctx, uc.repo, barberID)
	if err != nil {
		return nil, err
	}

	existing, err := dayBookings(ctx, uc.repo, barberID, date, uc.clock.location())
	if err != nil {
		return nil, err
	}

	slots, err := calc.AvailableSlots(wh, date, existing, duration)
	if err != nil {
		return nil, err
	}

	// sem geração conhecida não há como detectar invalidação concorrente
	if cacheErr != nil {
		return slots, nil
	}
	if err := uc.cache.Set(ctx, barberID, dateKey, duration, calc.Step(), cached.Generation, slots); err != nil {
		uc.log.WarnContext(ctx, "availability cache write failed",
			"barber_id", barberID, "date", dateKey, "error", err)
	}
	return slots, nil
}
