package appointment

import (
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// Business errors surfaced to callers by code.
var (
	ErrConfigurationMissing = httperr.ErrBusiness("configuration_missing")
	ErrClosedDay            = httperr.ErrBusiness("closed_day")

	ErrBarbershopNotFound  = httperr.ErrBusiness("barbershop_not_found")
	ErrBarberNotFound      = httperr.ErrBusiness("barber_not_found")
	ErrServiceNotFound     = httperr.ErrBusiness("service_not_found")
	ErrClientNotFound      = httperr.ErrBusiness("client_not_found")
	ErrAppointmentNotFound = httperr.ErrBusiness("appointment_not_found")

	ErrConflict          = httperr.ErrBusiness("time_conflict")
	ErrLeadTimeViolation = httperr.ErrBusiness("lead_time_violation")
	ErrSlotUnavailable   = httperr.ErrBusiness("slot_unavailable")
	ErrInvalidState      = httperr.ErrBusiness("invalid_state")
	ErrInvalidDateOrTime = httperr.ErrBusiness("invalid_date_or_time")
	ErrInvalidClient     = httperr.ErrBusiness("invalid_client")
)

// ErrRecordNotFound is returned by repositories when a lookup matches no row.
var ErrRecordNotFound = errors.New("record not found")
