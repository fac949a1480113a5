package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AvailabilityHandler serves both flows. The barbershop id comes from the
// JWT on /api/me and from the slug on /api/public.
type AvailabilityHandler struct {
	slots     *ucAppointment.GetAvailableSlots
	anyBarber *ucAppointment.GetAnyBarberSlots
	barbers   *ucAppointment.GetAvailableBarbers
	services  *ucAppointment.GetAvailableServices
	occupied  *ucAppointment.GetOccupiedSlots
	log       *zap.Logger
}

func NewAvailabilityHandler(
	slots *ucAppointment.GetAvailableSlots,
	anyBarber *ucAppointment.GetAnyBarberSlots,
	barbers *ucAppointment.GetAvailableBarbers,
	services *ucAppointment.GetAvailableServices,
	occupied *ucAppointment.GetOccupiedSlots,
	log *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		slots:     slots,
		anyBarber: anyBarber,
		barbers:   barbers,
		services:  services,
		occupied:  occupied,
		log:       log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type slotsQuery struct {
	BarberID  uint   `form:"barber_id" binding:"required"`
	ServiceID uint   `form:"service_id" binding:"required"`
	Date      string `form:"date" binding:"required"`
}

type anyBarberQuery struct {
	ServiceID uint   `form:"service_id" binding:"required"`
	Date      string `form:"date" binding:"required"`
}

type barbersQuery struct {
	ServiceID uint   `form:"service_id" binding:"required"`
	Date      string `form:"date" binding:"required"`
	Slot      string `form:"slot" binding:"required"`
}

type servicesQuery struct {
	BarberID uint   `form:"barber_id" binding:"required"`
	Date     string `form:"date" binding:"required"`
	Slot     string `form:"slot" binding:"required"`
}

func barbershopID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextBarbershopID).(uint)
}

// ======================================================
// SLOTS
// ======================================================

func (h *AvailabilityHandler) Slots(c *gin.Context) {
	var q slotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "missing_params", "Barbeiro, serviço e data são obrigatórios.")
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		BarbershopID: barbershopID(c),
		BarberID:     q.BarberID,
		ServiceID:    q.ServiceID,
		Date:         q.Date,
	})
	writeSlots(c, h.log, q.Date, slots, err)
}

func (h *AvailabilityHandler) AnyBarber(c *gin.Context) {
	var q anyBarberQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "missing_params", "Serviço e data são obrigatórios.")
		return
	}

	slots, err := h.anyBarber.Execute(c.Request.Context(), ucAppointment.AnyBarberInput{
		BarbershopID: barbershopID(c),
		ServiceID:    q.ServiceID,
		Date:         q.Date,
	})
	writeSlots(c, h.log, q.Date, slots, err)
}

// ======================================================
// BARBERS / SERVICES FOR A SLOT
// ======================================================

func (h *AvailabilityHandler) Barbers(c *gin.Context) {
	var q barbersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "missing_params", "Serviço, data e horário são obrigatórios.")
		return
	}

	barbers, err := h.barbers.Execute(c.Request.Context(), ucAppointment.BarbersForSlotInput{
		BarbershopID: barbershopID(c),
		ServiceID:    q.ServiceID,
		Date:         q.Date,
		Slot:         q.Slot,
	})
	if err != nil {
		if _, ok := businessMessages[httperr.Code(err)]; ok {
			writeBookingError(c, h.log, err)
			return
		}
		h.log.Error("available barbers degraded", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"barbers": []models.Barber{}, "degraded": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": q.Date, "slot": q.Slot, "barbers": barbers})
}

func (h *AvailabilityHandler) Services(c *gin.Context) {
	var q servicesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "missing_params", "Barbeiro, data e horário são obrigatórios.")
		return
	}

	services, err := h.services.Execute(c.Request.Context(), ucAppointment.ServicesForSlotInput{
		BarbershopID: barbershopID(c),
		BarberID:     q.BarberID,
		Date:         q.Date,
		Slot:         q.Slot,
	})
	if err != nil {
		if _, ok := businessMessages[httperr.Code(err)]; ok {
			writeBookingError(c, h.log, err)
			return
		}
		h.log.Error("available services degraded", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"services": []models.Service{}, "degraded": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": q.Date, "slot": q.Slot, "services": services})
}

// ======================================================
// OCCUPANCY (OWNER)
// ======================================================

func (h *AvailabilityHandler) Occupancy(c *gin.Context) {
	barberID, ok := parseID(c, "id")
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	buckets, err := h.occupied.Execute(c.Request.Context(), barbershopID(c), barberID, date)
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "barber_id": barberID, "occupied": buckets})
}
