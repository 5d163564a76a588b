package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Logger persists events into audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Handle(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		BarbershopID: ev.BarbershopID,
		UserID:       ev.UserID,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     metaJSON,
		RequestID:    ev.RequestID,
		CreatedAt:    ev.OccurredAt,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// Filter narrows List. Zero values mean "no filter".
type Filter struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time // exclusivo
	Page   int
	Limit  int
}

func (f Filter) normalized() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > maxListLimit {
		f.Limit = defaultListLimit
	}
	return f
}

// List returns one page of the shop's audit trail, newest first, and the
// total number of matching rows.
func (l *Logger) List(ctx context.Context, barbershopID uint, f Filter) ([]models.AuditLog, int64, error) {
	f = f.normalized()

	q := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("barbershop_id = ?", barbershopID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
