package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditTrail interface {
	List(ctx context.Context, barbershopID uint, f audit.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	trail AuditTrail
	log   *zap.Logger
}

func NewAuditLogsHandler(trail AuditTrail, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{trail: trail, log: log}
}

// List serves GET /api/me/audit-logs. from/to are calendar days, both
// inclusive, read in UTC.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultPageSize)))
	entityID, _ := strconv.ParseUint(c.Query("entity_id"), 10, 64)

	f := audit.Filter{
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: uint(entityID),
		Page:     page,
		Limit:    limit,
	}

	if v := c.Query("from"); v != "" {
		from, err := time.Parse(timezone.DateLayout, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
			return
		}
		f.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(timezone.DateLayout, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data final inválida.")
			return
		}
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}

	logs, total, err := h.trail.List(c.Request.Context(), barbershopID(c), f)
	if err != nil {
		h.log.Error("audit list failed", zap.Error(err))
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > audit.MaxPageSize {
		limit = audit.DefaultPageSize
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
