package dto

import (
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// PublicAppointmentDTO is what a client sees through the booking code.
type PublicAppointmentDTO struct {
	Code        string       `json:"code"`
	Barbershop  string       `json:"barbershop"`
	BarberID    uint         `json:"barber_id"`
	Date        string       `json:"date"`
	Time        string       `json:"time"`
	DurationMin int          `json:"duration_min"`
	TotalPrice  float64      `json:"total_price"`
	Status      string       `json:"status"`
	ClientName  string       `json:"client_name"`
	Services    []ServiceDTO `json:"services"`
	CanCancel   bool         `json:"can_cancel"`
	CanReview   bool         `json:"can_review"`
}

func NewPublicAppointmentDTO(
	shop *models.Barbershop,
	ap models.Appointment,
	loc *time.Location,
) PublicAppointmentDTO {
	b := domain.BookingFromModel(ap, loc)
	start := ap.StartTime.In(loc)

	return PublicAppointmentDTO{
		Code:        ap.PublicCode,
		Barbershop:  shop.Name,
		BarberID:    ap.BarberID,
		Date:        start.Format("2006-01-02"),
		Time:        start.Format("15:04"),
		DurationMin: b.DurationMinutes,
		TotalPrice:  ap.TotalPrice,
		Status:      string(b.Status),
		ClientName:  ap.Client.Name,
		Services:    Services(ap.Services),
		CanCancel:   domain.CanCancel(b.Status) == nil,
		CanReview:   b.Status == domain.StatusCompleted && ap.Review == nil,
	}
}
