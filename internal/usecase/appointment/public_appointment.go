package appointment

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// GET BY CODE
// ======================================================

type GetPublicAppointment struct {
	repo  domain.Repository
	clock Clock
}

func NewGetPublicAppointment(
	repo domain.Repository,
	clock Clock,
) *GetPublicAppointment {
	return &GetPublicAppointment{
		repo:  repo,
		clock: clock,
	}
}

func (uc *GetPublicAppointment) Execute(
	ctx context.Context,
	slug string,
	code string,
) (*dto.PublicAppointmentDTO, error) {

	shop, ap, err := findByCode(ctx, uc.repo, slug, code)
	if err != nil {
		return nil, err
	}

	out := dto.NewPublicAppointmentDTO(shop, *ap, uc.clock.location())
	if !ap.StartTime.After(uc.clock.now()) {
		out.CanCancel = false
	}
	return &out, nil
}

// ======================================================
// CANCEL BY CODE
// ======================================================

type CancelPublicAppointment struct {
	repo    domain.Repository
	cache   AvailabilityCache
	clock   Clock
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewCancelPublicAppointment(
	repo domain.Repository,
	cache AvailabilityCache,
	clock Clock,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	log *slog.Logger,
) *CancelPublicAppointment {
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &CancelPublicAppointment{
		repo:    repo,
		cache:   cache,
		clock:   clock,
		audit:   audit,
		metrics: m,
		log:     log,
	}
}

func (uc *CancelPublicAppointment) Execute(
	ctx context.Context,
	slug string,
	code string,
) (*dto.PublicAppointmentDTO, error) {

	shop, ap, err := findByCode(ctx, uc.repo, slug, code)
	if err != nil {
		return nil, err
	}

	now := uc.clock.now()
	if !ap.StartTime.After(now) {
		return nil, httperr.ErrBusiness("appointment_in_past")
	}

	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	afterTransition(ctx, uc.cache, uc.log, uc.audit, uc.metrics, uc.clock, ap, nil)

	out := dto.NewPublicAppointmentDTO(shop, *ap, uc.clock.location())
	return &out, nil
}

func findByCode(
	ctx context.Context,
	repo domain.Repository,
	slug string,
	code string,
) (*models.Barbershop, *models.Appointment, error) {

	shop, err := repo.GetBarbershopBySlug(ctx, slug)
	if err != nil {
		return nil, nil, notFound(err, "barbershop_not_found")
	}

	ap, err := repo.GetAppointmentByCode(ctx, shop.ID, code)
	if err != nil {
		return nil, nil, notFound(err, "appointment_not_found")
	}
	return shop, ap, nil
}
