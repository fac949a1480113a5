package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book            *ucAppointment.BookAppointment
	reschedule      *ucAppointment.RescheduleAppointment
	rescheduleSlots *ucAppointment.GetRescheduleSlots
	cancel          *ucAppointment.CancelAppointment
	eligibility     *ucAppointment.GetEligibility
	listByDate      *ucAppointment.ListAppointmentsByDate
	listByMonth     *ucAppointment.ListAppointmentsByMonth
	log             *zap.Logger
}

func NewAppointmentHandler(
	book *ucAppointment.BookAppointment,
	reschedule *ucAppointment.RescheduleAppointment,
	rescheduleSlots *ucAppointment.GetRescheduleSlots,
	cancel *ucAppointment.CancelAppointment,
	eligibility *ucAppointment.GetEligibility,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:            book,
		reschedule:      reschedule,
		rescheduleSlots: rescheduleSlots,
		cancel:          cancel,
		eligibility:     eligibility,
		listByDate:      listByDate,
		listByMonth:     listByMonth,
		log:             log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID  uint `json:"barber_id" binding:"required"`
	ServiceID uint `json:"service_id" binding:"required"`

	// Existing client, or contact data to find/create one.
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

func actorID(c *gin.Context) *uint {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		BarbershopID: barbershopID(c),
		BarberID:     req.BarberID,
		ServiceID:    req.ServiceID,
		ClientID:     req.ClientID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		Date:         req.Date,
		Slot:         req.Time,
		Notes:        req.Notes,
		ActorID:      actorID(c),
	})
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}
	barberID, _ := strconv.ParseUint(c.Query("barber_id"), 10, 64)

	appointments, err := h.listByDate.Execute(c.Request.Context(), barbershopID(c), uint(barberID), date)
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errYear := strconv.Atoi(c.Query("year"))
	month, errMonth := strconv.Atoi(c.Query("month"))
	if errYear != nil || errMonth != nil {
		httperr.BadRequest(c, "invalid_period", "Ano e mês são obrigatórios.")
		return
	}
	barberID, _ := strconv.ParseUint(c.Query("barber_id"), 10, 64)

	appointments, err := h.listByMonth.Execute(c.Request.Context(), barbershopID(c), uint(barberID), year, month)
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	httpresp.List(c, appointments)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) RescheduleSlots(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	slots, err := h.rescheduleSlots.Execute(c.Request.Context(), barbershopID(c), id, date)
	writeSlots(c, h.log, date, slots, err)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucAppointment.RescheduleInput{
		BarbershopID:  barbershopID(c),
		AppointmentID: id,
		Date:          req.Date,
		Slot:          req.Time,
		ActorID:       actorID(c),
	})
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CANCEL / ELIGIBILITY
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), barbershopID(c), id, actorID(c))
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Eligibility(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	el, err := h.eligibility.Execute(c.Request.Context(), barbershopID(c), id)
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	httpresp.OK(c, el)
}
