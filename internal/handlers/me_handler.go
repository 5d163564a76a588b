package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/profile"
)

const maxAvatarBytes = 5 << 20

type MeHandler struct {
	users  *repository.UserGormRepository
	avatar *profile.UploadAvatar
}

func NewMeHandler(users *repository.UserGormRepository, avatar *profile.UploadAvatar) *MeHandler {
	return &MeHandler{users: users, avatar: avatar}
}

type CreateBarberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       userView(user),
		"barbershop": user.Barbershop,
	})
}

// ======================================================
// BARBEIROS DA BARBEARIA
// ======================================================

func (h *MeHandler) ListBarbers(c *gin.Context) {
	users, err := h.users.ListBarbers(c.Request.Context(), middleware.BarbershopID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userView(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *MeHandler) CreateBarber(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.users.GetByEmail(c.Request.Context(), email); err == nil {
		httperr.Conflict(c, "email_already_used", "E-mail já cadastrado.")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(c, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(c, err)
		return
	}

	user := models.User{
		BarbershopID: middleware.BarbershopID(c),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
	}
	if err := h.users.CreateBarber(c.Request.Context(), &user); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userView(&user))
}

// ======================================================
// AVATAR
// ======================================================

func (h *MeHandler) UploadAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Envie a imagem no campo \"file\".")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return
	}
	defer f.Close()

	url, err := h.avatar.Execute(c.Request.Context(), profile.UploadAvatarInput{
		BarbershopID: middleware.BarbershopID(c),
		BarberID:     middleware.UserID(c),
		Image:        f,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
