package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var completedLabels = []string{"completed", "concluido", "concluído"}

// StatsGormRepository runs the dashboard aggregates. Queries are built with
// squirrel and executed through gorm, so they stay portable between drivers.
type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

func (r *StatsGormRepository) CountByStatus(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]domain.StatusCount, error) {

	query, args, err := sq.Select("status", "COUNT(*) AS total").
		From("appointments").
		Where(sq.Eq{"barber_id": barberID}).
		Where(sq.GtOrEq{"start_time": start}).
		Where(sq.Lt{"start_time": end}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("CountByStatus - build query: %w", err)
	}

	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("CountByStatus - execute: %w", err)
	}

	// rótulos antigos somam no status normalizado
	merged := map[domain.Status]int64{}
	for _, row := range rows {
		st, err := domain.ParseStatus(row.Status)
		if err != nil {
			continue
		}
		merged[st] += row.Total
	}

	out := make([]domain.StatusCount, 0, len(merged))
	for st, total := range merged {
		out = append(out, domain.StatusCount{Status: st, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })

	return out, nil
}

func (r *StatsGormRepository) ListCompleted(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	query, args, err := sq.Select("id", "start_time", "total_price").
		From("appointments").
		Where(sq.Eq{"barber_id": barberID, "status": completedLabels}).
		Where(sq.GtOrEq{"start_time": start}).
		Where(sq.Lt{"start_time": end}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ListCompleted - build query: %w", err)
	}

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&apps).Error; err != nil {
		return nil, fmt.Errorf("ListCompleted - execute: %w", err)
	}
	return apps, nil
}

func (r *StatsGormRepository) AverageRating(
	ctx context.Context,
	barberID uint,
) (float64, int64, error) {

	query, args, err := sq.Select("COALESCE(AVG(rating), 0)", "COUNT(*)").
		From("reviews").
		Where(sq.Eq{"barber_id": barberID}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("AverageRating - build query: %w", err)
	}

	var (
		avg   float64
		count int64
	)
	if err := r.db.WithContext(ctx).Raw(query, args...).Row().Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("AverageRating - execute: %w", err)
	}
	return avg, count, nil
}

var _ domain.StatsRepository = (*StatsGormRepository)(nil)
