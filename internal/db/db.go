package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func NewDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	// a exclusão por sobreposição precisa da extensão btree_gist
	if err := db.Exec(noOverlapConstraint).Error; err != nil {
		log.Warn("no-overlap constraint not installed", "err", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.BarberProduct{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Appointment{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Blocking statuses of one barber may not share any instant.
const noOverlapConstraint = `
DO $$
BEGIN
	CREATE EXTENSION IF NOT EXISTS btree_gist;
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
	) THEN
		ALTER TABLE appointments
		ADD CONSTRAINT appointments_no_overlap
		EXCLUDE USING gist (
			barber_id WITH =,
			tstzrange(start_time, end_time, '[)') WITH &&
		) WHERE (status <> 'canceled');
	END IF;
END $$;
`
