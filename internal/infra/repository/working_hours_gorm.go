package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type WorkingHoursGormRepository struct {
	db *gorm.DB
}

func NewWorkingHoursGormRepository(db *gorm.DB) *WorkingHoursGormRepository {
	return &WorkingHoursGormRepository{db: db}
}

// Get returns (nil, nil) when the barber never saved working hours.
func (r *WorkingHoursGormRepository) Get(ctx context.Context, barberID uint) (*models.WorkingHours, error) {
	var wh models.WorkingHours
	err := r.db.WithContext(ctx).Where("barber_id = ?", barberID).First(&wh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

// Save upserts the single working-hours row of wh.BarberID.
func (r *WorkingHoursGormRepository) Save(ctx context.Context, wh *models.WorkingHours) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "barber_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"start_time", "end_time", "available_weekdays",
				"lunch_start", "lunch_end", "updated_at",
			}),
		}).
		Create(wh).Error
}
