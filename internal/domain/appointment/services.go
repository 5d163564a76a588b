package appointment

import "github.com/BruksfildServices01/barber-booking/internal/models"

type Service struct {
	ID              uint
	Name            string
	DurationMinutes int
	Price           float64
}

// ServiceSelection is the ordered list of services chosen for one booking.
type ServiceSelection []Service

func SelectionFromProducts(products []models.BarberProduct) ServiceSelection {
	sel := make(ServiceSelection, 0, len(products))
	for _, p := range products {
		sel = append(sel, Service{
			ID:              p.ID,
			Name:            p.Name,
			DurationMinutes: p.DurationMin,
			Price:           p.Price,
		})
	}
	return sel
}

func (s ServiceSelection) Validate() error {
	if len(s) == 0 {
		return ErrNoServicesSelected
	}
	for _, svc := range s {
		if svc.DurationMinutes <= 0 {
			return ErrInvalidDuration
		}
		if svc.Price < 0 {
			return ErrInvalidPrice
		}
	}
	return nil
}

func (s ServiceSelection) TotalDuration() int {
	total := 0
	for _, svc := range s {
		total += svc.DurationMinutes
	}
	return total
}

func (s ServiceSelection) TotalPrice() float64 {
	total := 0.0
	for _, svc := range s {
		total += svc.Price
	}
	return total
}
