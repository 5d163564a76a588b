package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// BarberCacheInvalidator drops every cached availability of a barber.
type BarberCacheInvalidator interface {
	InvalidateBarber(ctx context.Context, barberID uint) error
}

type WorkingHoursHandler struct {
	repo  *repository.WorkingHoursGormRepository
	cache BarberCacheInvalidator
	log   *slog.Logger
}

func NewWorkingHoursHandler(
	repo *repository.WorkingHoursGormRepository,
	cache BarberCacheInvalidator,
	log *slog.Logger,
) *WorkingHoursHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WorkingHoursHandler{repo: repo, cache: cache, log: log}
}

type WorkingHoursRequest struct {
	StartTime         string `json:"start_time" binding:"required"`
	EndTime           string `json:"end_time" binding:"required"`
	AvailableWeekdays []int  `json:"available_weekdays" binding:"required"`
	LunchStart        string `json:"lunch_start"`
	LunchEnd          string `json:"lunch_end"`
}

type WorkingHoursResponse struct {
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	AvailableWeekdays []int  `json:"available_weekdays"`
	LunchStart        string `json:"lunch_start,omitempty"`
	LunchEnd          string `json:"lunch_end,omitempty"`
	IsDefault         bool   `json:"is_default"`
}

func workingHoursResponse(wh domain.WorkingHours, isDefault bool) WorkingHoursResponse {
	var m models.WorkingHours
	wh.ToModel(&m)
	return WorkingHoursResponse{
		StartTime:         m.StartTime,
		EndTime:           m.EndTime,
		AvailableWeekdays: m.AvailableWeekdays,
		LunchStart:        m.LunchStart,
		LunchEnd:          m.LunchEnd,
		IsDefault:         isDefault,
	}
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	m, err := h.repo.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	wh, err := domain.WorkingHoursFromModel(m)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, workingHoursResponse(wh, m == nil))
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	// a validação é a mesma usada pelo cálculo de horários
	m := &models.WorkingHours{
		BarberID:          middleware.UserID(c),
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		AvailableWeekdays: req.AvailableWeekdays,
		LunchStart:        req.LunchStart,
		LunchEnd:          req.LunchEnd,
	}
	if (req.LunchStart == "") != (req.LunchEnd == "") {
		writeError(c, domain.ErrInvalidWorkingHours)
		return
	}

	wh, err := domain.WorkingHoursFromModel(m)
	if err != nil {
		writeError(c, domain.ErrInvalidWorkingHours)
		return
	}

	// normaliza "9:00:00" e afins
	wh.ToModel(m)
	if err := h.repo.Save(c.Request.Context(), m); err != nil {
		writeError(c, err)
		return
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.cache.InvalidateBarber(ctx, m.BarberID); err != nil {
			h.log.WarnContext(ctx, "availability cache invalidation failed",
				"barber_id", m.BarberID, "error", err)
		}
	}

	c.JSON(http.StatusOK, workingHoursResponse(wh, false))
}
