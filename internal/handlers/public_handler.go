package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// Catalog lists what a client can pick from on the booking page.
type Catalog interface {
	ListActiveBarbers(ctx context.Context, barbershopID uint) ([]models.Barber, error)
	ListActiveServices(ctx context.Context, barbershopID uint) ([]models.Service, error)
}

type PublicHandler struct {
	catalog Catalog
	book    *ucAppointment.BookAppointment
	log     *zap.Logger
}

func NewPublicHandler(catalog Catalog, book *ucAppointment.BookAppointment, log *zap.Logger) *PublicHandler {
	return &PublicHandler{
		catalog: catalog,
		book:    book,
		log:     log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.catalog.ListActiveBarbers(c.Request.Context(), barbershopID(c))
	if err != nil {
		h.log.Error("list barbers failed", zap.Error(err))
		httperr.Internal(c, "barbers_list_failed", "Erro ao listar barbeiros.")
		return
	}
	httpresp.List(c, barbers)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	services, err := h.catalog.ListActiveServices(c.Request.Context(), barbershopID(c))
	if err != nil {
		h.log.Error("list services failed", zap.Error(err))
		httperr.Internal(c, "services_list_failed", "Erro ao listar serviços.")
		return
	}
	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		BarbershopID: barbershopID(c),
		BarberID:     req.BarberID,
		ServiceID:    req.ServiceID,
		ClientName:   strings.TrimSpace(req.ClientName),
		ClientPhone:  strings.TrimSpace(req.ClientPhone),
		ClientEmail:  strings.TrimSpace(req.ClientEmail),
		Date:         req.Date,
		Slot:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	httpresp.Created(c, gin.H{
		"id":       ap.ID,
		"status":   ap.Status,
		"start_at": ap.StartAt,
		"end_at":   ap.EndAt,
	})
}
