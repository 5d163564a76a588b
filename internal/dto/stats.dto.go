package dto

import domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"

type DashboardStatsDTO struct {
	Period           string                `json:"period"`
	From             string                `json:"from"`
	To               string                `json:"to"`
	Total            int64                 `json:"total"`
	ByStatus         []domain.StatusCount  `json:"by_status"`
	CompletedRevenue float64               `json:"completed_revenue"`
	Revenue          []domain.DailyRevenue `json:"revenue"`
	AverageRating    float64               `json:"average_rating"`
	ReviewCount      int64                 `json:"review_count"`
}
