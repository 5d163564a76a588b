package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// LIST CLIENTS (BARBEIRO)
// ======================================================

// List: GET /api/me/clients?query=&page=&limit=
// Telefones são buscados só pelos dígitos, como são gravados.
func (h *ClientHandler) List(c *gin.Context) {
	page := httpresp.ParsePage(c)
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.Client{}).
		Where("barbershop_id = ?", middleware.BarbershopID(c))

	if query != "" {
		like := "%" + query + "%"
		phoneLike := like
		if digits, ok := validators.PhoneDigits(query); ok {
			phoneLike = "%" + digits + "%"
		}
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, phoneLike, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		writeError(c, err)
		return
	}

	var clients []models.Client
	if err := q.
		Order("name ASC").
		Order("id ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&clients).Error; err != nil {

		writeError(c, err)
		return
	}

	httpresp.Page(c, clients, total, page)
}
