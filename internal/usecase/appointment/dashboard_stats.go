package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

type GetDashboardStats struct {
	stats domain.StatsRepository
	clock Clock
}

func NewGetDashboardStats(
	stats domain.StatsRepository,
	clock Clock,
) *GetDashboardStats {
	return &GetDashboardStats{
		stats: stats,
		clock: clock,
	}
}

// Execute aggregates the barber's current week, month or year.
// Revenue is bucketed per day, or per month for "year".
func (uc *GetDashboardStats) Execute(
	ctx context.Context,
	barberID uint,
	period string,
) (*dto.DashboardStatsDTO, error) {

	if period == "" {
		period = PeriodMonth
	}

	start, end, bucket, err := periodBounds(uc.clock.now(), period)
	if err != nil {
		return nil, err
	}

	counts, err := uc.stats.CountByStatus(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	completed, err := uc.stats.ListCompleted(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	avg, reviews, err := uc.stats.AverageRating(ctx, barberID)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardStatsDTO{
		Period:        period,
		From:          start.Format(dateLayout),
		To:            end.AddDate(0, 0, -1).Format(dateLayout),
		ByStatus:      counts,
		Revenue:       []domain.DailyRevenue{},
		AverageRating: avg,
		ReviewCount:   reviews,
	}
	for _, c := range counts {
		out.Total += c.Total
	}

	index := map[string]int{}
	for _, ap := range completed {
		key := ap.StartTime.In(uc.clock.location()).Format(bucket)
		i, ok := index[key]
		if !ok {
			i = len(out.Revenue)
			index[key] = i
			out.Revenue = append(out.Revenue, domain.DailyRevenue{Date: key})
		}
		out.Revenue[i].Revenue += ap.TotalPrice
		out.Revenue[i].Count++
		out.CompletedRevenue += ap.TotalPrice
	}

	return out, nil
}

// periodBounds returns [start, end) of the period containing now and the
// layout used to bucket revenue.
func periodBounds(now time.Time, period string) (time.Time, time.Time, string, error) {
	today := domain.DateOf(now)

	switch period {
	case PeriodWeek:
		// semana começa na segunda
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), dateLayout, nil
	case PeriodMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return start, start.AddDate(0, 1, 0), dateLayout, nil
	case PeriodYear:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		return start, start.AddDate(1, 0, 0), "2006-01", nil
	default:
		return time.Time{}, time.Time{}, "", httperr.ErrBusiness("invalid_period")
	}
}
