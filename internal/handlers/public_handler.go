package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicUseCases groups what the client-facing booking page needs.
type PublicUseCases struct {
	Availability *appointment.GetAvailability
	Create       *appointment.CreateAppointment
	Get          *appointment.GetPublicAppointment
	Cancel       *appointment.CancelPublicAppointment
	Review       *appointment.AddReview
}

type PublicHandler struct {
	db    *gorm.DB
	repo  domain.Repository
	users *repository.UserGormRepository
	uc    PublicUseCases
	loc   *time.Location
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	uc PublicUseCases,
	loc *time.Location,
) *PublicHandler {
	return &PublicHandler{
		db:    db,
		repo:  repo,
		users: repository.NewUserGormRepository(db),
		uc:    uc,
		loc:   loc,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id"` // 0 = dono da barbearia
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ProductIDs  []uint `json:"product_ids" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

type PublicReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type publicBarber struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

////////////////////////////////////////////////////////
// BARBERSHOP
////////////////////////////////////////////////////////

func (h *PublicHandler) shop(c *gin.Context) (*models.Barbershop, bool) {
	shop, err := h.repo.GetBarbershopBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, err)
			return nil, false
		}
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return nil, false
	}
	return shop, true
}

// GetBarbershop: GET /api/public/:slug
func (h *PublicHandler) GetBarbershop(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	users, err := h.users.ListBarbers(c.Request.Context(), shop.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	barbers := make([]publicBarber, 0, len(users))
	for _, u := range users {
		barbers = append(barbers, publicBarber{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL})
	}

	var products []models.BarberProduct
	if err := productQuery(h.db, c, shop.ID).Where("active = ?", true).Find(&products).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": gin.H{
			"name":                shop.Name,
			"slug":                shop.Slug,
			"phone":               shop.Phone,
			"address":             shop.Address,
			"min_advance_minutes": shop.MinAdvanceMinutes,
		},
		"barbers":  barbers,
		"products": products,
	})
}

// ListProducts: GET /api/public/:slug/products?category=&query=
func (h *PublicHandler) ListProducts(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var products []models.BarberProduct
	if err := productQuery(h.db, c, shop.ID).Where("active = ?", true).Find(&products).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// Availability: GET /api/public/:slug/availability?date=&product_ids=1,2&barber_id=
func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	ids, okIDs := idList(c, "product_ids")
	barberID, okBarber := uintQuery(c, "barber_id")
	if !okIDs || !okBarber || c.Query("date") == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviços obrigatórios.")
		return
	}

	out, err := h.uc.Availability.Execute(c.Request.Context(), appointment.GetAvailabilityInput{
		BarbershopID: shop.ID,
		BarberID:     barberID,
		ProductIDs:   ids,
		Date:         c.Query("date"),
	})
	if err != nil {
		availabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

////////////////////////////////////////////////////////
// APPOINTMENT
////////////////////////////////////////////////////////

// CreateAppointment: POST /api/public/:slug/appointments
func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BarbershopID: shop.ID,
		BarberID:     req.BarberID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ProductIDs:   req.ProductIDs,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPublicAppointmentDTO(shop, *ap, h.loc))
}

// GetAppointment: GET /api/public/:slug/appointments/:code
func (h *PublicHandler) GetAppointment(c *gin.Context) {
	out, err := h.uc.Get.Execute(c.Request.Context(), c.Param("slug"), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CancelAppointment: POST /api/public/:slug/appointments/:code/cancel
func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	out, err := h.uc.Cancel.Execute(c.Request.Context(), c.Param("slug"), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Review: POST /api/public/:slug/appointments/:code/review
func (h *PublicHandler) Review(c *gin.Context) {
	var req PublicReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	review, err := h.uc.Review.Execute(c.Request.Context(), appointment.AddReviewInput{
		Slug:    c.Param("slug"),
		Code:    c.Param("code"),
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}
