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

type BarberProductHandler struct {
	db *gorm.DB
}

func NewBarberProductHandler(db *gorm.DB) *BarberProductHandler {
	return &BarberProductHandler{db: db}
}

// --------- Requests ---------

type CreateBarberProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"min=0"`
	Category    string  `json:"category"`
	Featured    bool    `json:"featured"`
	SortOrder   int     `json:"sort_order"`
}

type UpdateBarberProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
	SortOrder   *int     `json:"sort_order,omitempty"`
}

// --------- Queries ---------

// productQuery applies the list filters shared by the private and public
// catalogues.
func productQuery(db *gorm.DB, c *gin.Context, barbershopID uint) *gorm.DB {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := db.WithContext(c.Request.Context()).Where("barbershop_id = ?", barbershopID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	return q.Order("featured DESC").Order("sort_order ASC").Order("id ASC")
}

// --------- Handlers ---------

func (h *BarberProductHandler) List(c *gin.Context) {
	q := productQuery(h.db, c, middleware.BarbershopID(c))

	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	var products []models.BarberProduct
	if err := q.Find(&products).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *BarberProductHandler) Create(c *gin.Context) {
	var req CreateBarberProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	product := models.BarberProduct{
		BarbershopID: middleware.BarbershopID(c),
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		DurationMin:  req.DurationMin,
		Price:        req.Price,
		Active:       true,
		Featured:     req.Featured,
		SortOrder:    req.SortOrder,
		Category:     strings.ToLower(req.Category),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *BarberProductHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		invalidRequest(c)
		return
	}

	var product models.BarberProduct
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND barbershop_id = ?", id, middleware.BarbershopID(c)).
		First(&product).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "product_not_found", "Serviço não encontrado.")
			return
		}
		writeError(c, err)
		return
	}

	var req UpdateBarberProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
			return
		}
		product.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "Preço inválido.")
			return
		}
		product.Price = *req.Price
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.Category != nil {
		product.Category = strings.ToLower(*req.Category)
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.SortOrder != nil {
		product.SortOrder = *req.SortOrder
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&product).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}
