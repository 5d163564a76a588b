package dto

import (
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
}

type ReviewDTO struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type AppointmentListDTO struct {
	ID          uint         `json:"id"`
	PublicCode  string       `json:"public_code"`
	StartTime   time.Time    `json:"start_time"`
	EndTime     time.Time    `json:"end_time"`
	Date        string       `json:"date"`
	Time        string       `json:"time"`
	DurationMin int          `json:"duration_min"`
	TotalPrice  float64      `json:"total_price"`
	Status      string       `json:"status"`
	ClientName  string       `json:"client_name"`
	ClientPhone string       `json:"client_phone"`
	Services    []ServiceDTO `json:"services"`
	Notes       string       `json:"notes"`
	Actions     []string     `json:"actions"`
	Review      *ReviewDTO   `json:"review,omitempty"`
}

// NewAppointmentListDTO renders ap in loc with its status normalised.
func NewAppointmentListDTO(ap models.Appointment, loc *time.Location) AppointmentListDTO {
	start := ap.StartTime.In(loc)
	b := domain.BookingFromModel(ap, loc)

	out := AppointmentListDTO{
		ID:          ap.ID,
		PublicCode:  ap.PublicCode,
		StartTime:   start,
		EndTime:     ap.EndTime.In(loc),
		Date:        start.Format("2006-01-02"),
		Time:        start.Format("15:04"),
		DurationMin: b.DurationMinutes,
		TotalPrice:  ap.TotalPrice,
		Status:      string(b.Status),
		ClientName:  ap.Client.Name,
		ClientPhone: ap.Client.Phone,
		Services:    Services(ap.Services),
		Notes:       ap.Notes,
		Actions:     Actions(b.Status.Actions()),
	}
	if ap.Review != nil {
		out.Review = &ReviewDTO{Rating: ap.Review.Rating, Comment: ap.Review.Comment}
	}
	return out
}

func Services(products []models.BarberProduct) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(products))
	for _, p := range products {
		out = append(out, ServiceDTO{
			ID:          p.ID,
			Name:        p.Name,
			DurationMin: p.DurationMin,
			Price:       p.Price,
		})
	}
	return out
}

func Actions(actions []domain.Action) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, string(a))
	}
	return out
}
