package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const tokenTTL = 24 * time.Hour

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type AuthHandler struct {
	db     *gorm.DB
	users  *repository.UserGormRepository
	secret string

	// CheckEmailDomain defaults to a DNS lookup.
	CheckEmailDomain func(email string) bool
}

func NewAuthHandler(db *gorm.DB, secret string) *AuthHandler {
	return &AuthHandler{
		db:               db,
		users:            repository.NewUserGormRepository(db),
		secret:           secret,
		CheckEmailDomain: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	BarbershopName    string `json:"barbershop_name" binding:"required"`
	BarbershopSlug    string `json:"barbershop_slug" binding:"required"`
	BarbershopPhone   string `json:"barbershop_phone"`
	BarbershopAddress string `json:"barbershop_address"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.BarbershopSlug))
	if !slugPattern.MatchString(slug) {
		httperr.BadRequest(c, "invalid_slug", "Use apenas letras minúsculas, números e hífens.")
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Barbershop{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		writeError(c, err)
		return
	}
	if count > 0 {
		httperr.Conflict(c, "slug_already_exists", "Endereço da barbearia já está em uso.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !h.CheckEmailDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

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

	shop := models.Barbershop{
		Name:    strings.TrimSpace(req.BarbershopName),
		Slug:    slug,
		Phone:   req.BarbershopPhone,
		Address: req.BarbershopAddress,
	}
	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
	}

	if err := h.users.CreateOwner(c.Request.Context(), &shop, &user); err != nil {
		writeError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, &user, &shop)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Credenciais inválidas.")
			return
		}
		writeError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciais inválidas.")
		return
	}

	var shop models.Barbershop
	if err := h.db.WithContext(c.Request.Context()).First(&shop, user.BarbershopID).Error; err != nil {
		writeError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, user, &shop)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User, shop *models.Barbershop) {
	token, err := middleware.IssueToken(h.secret, user, tokenTTL)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(status, gin.H{
		"user":       userView(user),
		"barbershop": shop,
		"token":      token,
	})
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":            u.ID,
		"name":          u.Name,
		"email":         u.Email,
		"phone":         u.Phone,
		"role":          u.Role,
		"avatar_url":    u.AvatarURL,
		"barbershop_id": u.BarbershopID,
	}
}
