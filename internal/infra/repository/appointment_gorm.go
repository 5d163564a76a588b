package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// canceledLabels are every stored spelling of a non-blocking appointment.
var canceledLabels = []string{"canceled", "cancelled", "cancelado"}

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop / barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.User, error) {

	q := r.db.WithContext(ctx).Where("barbershop_id = ?", barbershopID)
	if barberID == 0 {
		q = q.Where("role = ?", models.RoleOwner).Order("id ASC")
	} else {
		q = q.Where("id = ?", barberID)
	}

	var barber models.User
	if err := q.First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

// ListProducts returns the active products among ids, in the order of ids.
func (r *AppointmentGormRepository) ListProducts(
	ctx context.Context,
	barbershopID uint,
	ids []uint,
) ([]models.BarberProduct, error) {

	if len(ids) == 0 {
		return []models.BarberProduct{}, nil
	}

	var found []models.BarberProduct
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND active = ? AND id IN ?", barbershopID, true, ids).
		Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.BarberProduct, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	out := make([]models.BarberProduct, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID uint,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		First(&wh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if ap.PublicCode == "" {
		ap.PublicCode = uuid.NewString()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// serializa agendamentos do mesmo barbeiro
		var barber models.User
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&barber, ap.BarberID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"barber_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
				ap.BarberID,
				canceledLabels,
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return domain.ErrTimeConflict
		}

		return tx.Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return domain.ErrTimeConflict
	}
	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Preload("Review").
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByCode(
	ctx context.Context,
	barbershopID uint,
	code string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Preload("Review").
		Where("barbershop_id = ? AND public_code = ?", barbershopID, code).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error
}

// --------------------------------------------------
// Reviews
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateReview(
	ctx context.Context,
	review *models.Review,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.Review{}).
			Where("appointment_id = ?", review.AppointmentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrAlreadyReviewed
		}
		return tx.Create(review).Error
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
