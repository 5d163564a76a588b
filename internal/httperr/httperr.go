package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

var notFoundCodes = map[string]bool{
	"barbershop_not_found":  true,
	"barber_not_found":      true,
	"appointment_not_found": true,
	"product_not_found":     true,
}

var conflictCodes = map[string]bool{
	"time_conflict":    true,
	"invalid_state":    true,
	"already_reviewed": true,
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusFor maps an error returned by a use case onto an HTTP status.
func StatusFor(err error) int {
	if IsExclusionConflict(err) {
		return http.StatusConflict
	}

	code := CodeOf(err)
	switch {
	case code == "":
		return http.StatusInternalServerError
	case notFoundCodes[code]:
		return http.StatusNotFound
	case conflictCodes[code]:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// FromError writes err using its business code, or fallbackCode when err is
// not a business error.
func FromError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	status := StatusFor(err)

	code := CodeOf(err)
	if IsExclusionConflict(err) {
		code = "time_conflict"
	}
	if code == "" {
		Write(c, status, fallbackCode, fallbackMessage)
		return
	}

	Write(c, status, code, messageFor(code))
}
