package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type ListAppointmentsByMonth struct {
	repo  domain.Repository
	clock Clock
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	clock Clock,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
	status string,
) ([]dto.AppointmentListDTO, error) {

	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.clock.location())
	end := start.AddDate(0, 1, 0)

	return listPeriod(ctx, uc.repo, uc.clock, barberID, start, end, status)
}
