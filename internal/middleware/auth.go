package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	ContextUserID       = "userID"
	ContextBarbershopID = "barbershopID"
	ContextUserRole     = "userRole"
)

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Autenticação obrigatória.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Sessão inválida ou expirada.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Sessão inválida ou expirada.")
			c.Abort()
			return
		}

		userID, ok1 := claims["sub"].(float64)
		barbershopID, ok2 := claims["barbershopId"].(float64)
		role, _ := claims["role"].(string)
		if !ok1 || !ok2 {
			httperr.Unauthorized(c, "invalid_token_payload", "Sessão inválida ou expirada.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextBarbershopID, uint(barbershopID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireOwner só deixa passar o dono da barbearia.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != models.RoleOwner {
			httperr.Write(c, http.StatusForbidden, "forbidden", "Acesso restrito ao dono da barbearia.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func UserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}

func BarbershopID(c *gin.Context) uint {
	return c.GetUint(ContextBarbershopID)
}

// IssueToken assina o JWT aceito por AuthMiddleware.
func IssueToken(secret string, user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":          user.ID,
		"barbershopId": user.BarbershopID,
		"role":         user.Role,
		"exp":          now.Add(ttl).Unix(),
		"iat":          now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
