package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const maxSlotStepMinutes = 240

type BarbershopHandler struct {
	db *gorm.DB
}

func NewBarbershopHandler(db *gorm.DB) *BarbershopHandler {
	return &BarbershopHandler{db: db}
}

type UpdateBarbershopRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	SlotStepMinutes   *int    `json:"slot_step_minutes"`
}

func (h *BarbershopHandler) load(c *gin.Context) (*models.Barbershop, bool) {
	var shop models.Barbershop
	if err := h.db.WithContext(c.Request.Context()).
		First(&shop, middleware.BarbershopID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return nil, false
		}
		writeError(c, err)
		return nil, false
	}
	return &shop, true
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			invalidRequest(c)
			return
		}
		shop.Name = name
	}
	if req.Phone != nil {
		shop.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		shop.Address = strings.TrimSpace(*req.Address)
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	// 0 volta ao passo padrão da configuração
	if req.SlotStepMinutes != nil {
		step := *req.SlotStepMinutes
		if step < 0 || step > maxSlotStepMinutes || (step > 0 && step < 5) {
			httperr.BadRequest(c, "invalid_slot_step", "Intervalo entre horários deve ser entre 5 e 240 minutos.")
			return
		}
		shop.SlotStepMinutes = step
	}

	if err := h.db.WithContext(c.Request.Context()).Save(shop).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, shop)
}
