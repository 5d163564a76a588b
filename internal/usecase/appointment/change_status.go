package appointment

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/requestid"
)

type ChangeStatusInput struct {
	BarbershopID  uint
	BarberID      uint
	AppointmentID uint
	Status        string
}

// ChangeAppointmentStatus drives confirm, complete and cancel for the
// authenticated barber.
type ChangeAppointmentStatus struct {
	repo    domain.Repository
	cache   AvailabilityCache
	clock   Clock
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewChangeAppointmentStatus(
	repo domain.Repository,
	cache AvailabilityCache,
	clock Clock,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	log *slog.Logger,
) *ChangeAppointmentStatus {
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &ChangeAppointmentStatus{
		repo:    repo,
		cache:   cache,
		clock:   clock,
		audit:   audit,
		metrics: m,
		log:     log,
	}
}

func (uc *ChangeAppointmentStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*models.Appointment, error) {

	next, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, in.AppointmentID, in.BarberID)
	if err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	if ap.BarbershopID != in.BarbershopID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.Apply(ap, next, uc.clock.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	afterTransition(ctx, uc.cache, uc.log, uc.audit, uc.metrics, uc.clock, ap, &in.BarberID)
	return ap, nil
}

// afterTransition frees the cached day and records the lifecycle change.
func afterTransition(
	ctx context.Context,
	cache AvailabilityCache,
	log *slog.Logger,
	dispatcher *audit.Dispatcher,
	m *metrics.Metrics,
	clock Clock,
	ap *models.Appointment,
	actor *uint,
) {
	day := ap.StartTime.In(clock.location()).Format(dateLayout)
	invalidateDay(ctx, cache, log, ap.BarberID, day)

	m.ObserveTransition(ap.Status)

	dispatcher.Dispatch(audit.Event{
		BarbershopID: ap.BarbershopID,
		UserID:       actor,
		Action:       "appointment_" + ap.Status,
		Entity:       "appointment",
		EntityID:     &ap.ID,
		RequestID:    requestid.From(ctx),
		Metadata: map[string]any{
			"barber_id":  ap.BarberID,
			"status":     ap.Status,
			"start_time": ap.StartTime,
		},
	})
}
