package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ListAppointmentsByDate struct {
	repo  domain.Repository
	clock Clock
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	clock Clock,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:  repo,
		clock: clock,
	}
}

// Execute lists the barber's appointments on date ("" = hoje), optionally
// filtered by status ("" = todos).
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date string,
	status string,
) ([]dto.AppointmentListDTO, error) {

	day := domain.DateOf(uc.clock.now())
	if date != "" {
		d, err := uc.clock.parseDate(date)
		if err != nil {
			return nil, err
		}
		day = d
	}

	return listPeriod(ctx, uc.repo, uc.clock, barberID, day, day.AddDate(0, 0, 1), status)
}

// listPeriod loads [start, end) and maps it to list DTOs.
func listPeriod(
	ctx context.Context,
	repo domain.Repository,
	clock Clock,
	barberID uint,
	start time.Time,
	end time.Time,
	status string,
) ([]dto.AppointmentListDTO, error) {

	filter, err := statusFilter(status)
	if err != nil {
		return nil, err
	}

	appointments, err := repo.ListAppointmentsForPeriod(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		if !filter(ap) {
			continue
		}
		out = append(out, dto.NewAppointmentListDTO(ap, clock.location()))
	}
	return out, nil
}

func statusFilter(status string) (func(models.Appointment) bool, error) {
	if status == "" {
		return func(models.Appointment) bool { return true }, nil
	}

	want, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	return func(ap models.Appointment) bool {
		got, err := domain.ParseStatus(ap.Status)
		return err == nil && got == want
	}, nil
}
