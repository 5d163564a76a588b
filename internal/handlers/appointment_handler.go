package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentUseCases groups what the barber area needs.
type AppointmentUseCases struct {
	Create       *appointment.CreateAppointment
	ChangeStatus *appointment.ChangeAppointmentStatus
	ListByDate   *appointment.ListAppointmentsByDate
	ListByMonth  *appointment.ListAppointmentsByMonth
	Schedule     *appointment.GetWeekSchedule
	Stats        *appointment.GetDashboardStats
	Availability *appointment.GetAvailability
}

type AppointmentHandler struct {
	uc  AppointmentUseCases
	loc *time.Location
}

func NewAppointmentHandler(uc AppointmentUseCases, loc *time.Location) *AppointmentHandler {
	return &AppointmentHandler{uc: uc, loc: loc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ProductIDs  []uint `json:"product_ids" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	barberID := middleware.UserID(c)
	ap, err := h.uc.Create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BarbershopID: middleware.BarbershopID(c),
		BarberID:     barberID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ProductIDs:   req.ProductIDs,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
		ActorID:      &barberID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAppointmentListDTO(*ap, h.loc))
}

// ======================================================
// LIST
// ======================================================

// ListByDate: GET /api/me/appointments?date=YYYY-MM-DD&status= (sem data = hoje)
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	out, err := h.uc.ListByDate.Execute(c.Request.Context(), middleware.UserID(c), c.Query("date"), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ListByMonth: GET /api/me/appointments/month?year=2026&month=10&status=
func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_date", "Ano e mês obrigatórios.")
		return
	}

	out, err := h.uc.ListByMonth.Execute(c.Request.Context(), middleware.UserID(c), year, month, c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// STATUS
// ======================================================

// ChangeStatus: PATCH /api/me/appointments/:id/status {"status": "..."}
func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}
	h.changeStatus(c, req.Status)
}

func (h *AppointmentHandler) Confirm(c *gin.Context)  { h.changeStatus(c, "confirmed") }
func (h *AppointmentHandler) Complete(c *gin.Context) { h.changeStatus(c, "completed") }
func (h *AppointmentHandler) Cancel(c *gin.Context)   { h.changeStatus(c, "canceled") }

func (h *AppointmentHandler) changeStatus(c *gin.Context, status string) {
	id, ok := uintParam(c, "id")
	if !ok {
		invalidRequest(c)
		return
	}

	ap, err := h.uc.ChangeStatus.Execute(c.Request.Context(), appointment.ChangeStatusInput{
		BarbershopID:  middleware.BarbershopID(c),
		BarberID:      middleware.UserID(c),
		AppointmentID: id,
		Status:        status,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointmentListDTO(*ap, h.loc))
}

// ======================================================
// SCHEDULE / STATS / AVAILABILITY
// ======================================================

// Schedule: GET /api/me/schedule?from=YYYY-MM-DD&days=7&ppm=2
func (h *AppointmentHandler) Schedule(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	ppm, _ := strconv.ParseFloat(c.Query("ppm"), 64)

	out, err := h.uc.Schedule.Execute(c.Request.Context(), appointment.WeekScheduleInput{
		BarberID:        middleware.UserID(c),
		From:            c.Query("from"),
		Days:            days,
		PixelsPerMinute: ppm,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// Stats: GET /api/me/stats?period=week|month|year
func (h *AppointmentHandler) Stats(c *gin.Context) {
	out, err := h.uc.Stats.Execute(c.Request.Context(), middleware.UserID(c), c.Query("period"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Availability: GET /api/me/availability?date=&product_ids=1,2
func (h *AppointmentHandler) Availability(c *gin.Context) {
	ids, ok := idList(c, "product_ids")
	if !ok {
		invalidRequest(c)
		return
	}

	out, err := h.uc.Availability.Execute(c.Request.Context(), appointment.GetAvailabilityInput{
		BarbershopID: middleware.BarbershopID(c),
		BarberID:     middleware.UserID(c),
		ProductIDs:   ids,
		Date:         c.Query("date"),
	})
	if err != nil {
		availabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// availabilityError keeps "no slots" (200) apart from "could not compute".
func availabilityError(c *gin.Context, err error) {
	if httperr.CodeOf(err) != "" {
		writeError(c, err)
		return
	}
	_ = c.Error(err)
	httperr.Write(c, http.StatusServiceUnavailable, "availability_failed", "Não foi possível calcular a disponibilidade.")
}
