package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
	loc  *time.Location
}

func NewAuditLogsHandler(logs *audit.Logger, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, loc: loc}
}

// List: GET /api/me/audit-logs?action=&entity=&from=YYYY-MM-DD&to=YYYY-MM-DD&page=1&limit=50
func (h *AuditLogsHandler) List(c *gin.Context) {
	page := httpresp.ParsePage(c)

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page.Page,
		Limit:  page.Limit,
	}

	// --------------------------------------------------
	// Período (o dia de "to" entra inteiro)
	// --------------------------------------------------

	if raw := c.Query("from"); raw != "" {
		from, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
			return
		}
		f.From = from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data final inválida.")
			return
		}
		f.To = to.AddDate(0, 0, 1)
	}

	logs, total, err := h.logs.List(c.Request.Context(), middleware.BarbershopID(c), f)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Page(c, logs, total, page)
}
