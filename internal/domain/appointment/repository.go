package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// -------- Barbershop / barber --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	// GetBarber returns barberID, or the shop owner when barberID is 0.
	GetBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.User, error)

	// -------- Services --------
	ListProducts(
		ctx context.Context,
		barbershopID uint,
		ids []uint,
	) ([]models.BarberProduct, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Availability --------
	// GetWorkingHours returns (nil, nil) when the barber has not saved one.
	GetWorkingHours(
		ctx context.Context,
		barberID uint,
	) (*models.WorkingHours, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (create / conflict) --------
	// CreateAppointment fails with ErrTimeConflict when a blocking
	// appointment of the same barber overlaps ap.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	GetAppointmentByCode(
		ctx context.Context,
		barbershopID uint,
		code string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Reviews --------
	CreateReview(
		ctx context.Context,
		review *models.Review,
	) error
}

// ===============================
// Stats
// ===============================

type StatusCount struct {
	Status Status `json:"status"`
	Total  int64  `json:"total"`
}

type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

type StatsRepository interface {
	CountByStatus(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]StatusCount, error)

	// ListCompleted returns start time and total price of completed
	// appointments in the period.
	ListCompleted(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	AverageRating(
		ctx context.Context,
		barberID uint,
	) (float64, int64, error)
}
