package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// --------------------------------------------------
// Params
// --------------------------------------------------

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// uintQuery reads an optional id; "" yields 0.
func uintQuery(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// idList accepts "1,2,3" and repeated keys (?product_ids=1&product_ids=2).
func idList(c *gin.Context, name string) ([]uint, bool) {
	var out []uint
	for _, raw := range c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return nil, false
			}
			out = append(out, uint(v))
		}
	}
	return out, true
}

// --------------------------------------------------
// Errors
// --------------------------------------------------

func invalidRequest(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	httperr.FromError(c, err, "internal_error", "Erro interno.")
}
