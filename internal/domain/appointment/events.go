package appointment

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	EventBooked      = "appointment.booked.v1"
	EventRescheduled = "appointment.rescheduled.v1"
	EventCancelled   = "appointment.cancelled.v1"
)

type EventPayload struct {
	AppointmentID uint       `json:"appointment_id"`
	BarbershopID  uint       `json:"barbershop_id"`
	BarberID      uint       `json:"barber_id"`
	ClientID      uint       `json:"client_id"`
	ServiceID     uint       `json:"service_id"`
	Status        string     `json:"status"`
	StartAt       time.Time  `json:"start_at"`
	EndAt         time.Time  `json:"end_at"`
	PreviousStart *time.Time `json:"previous_start_at,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

// NewEvent builds the outbox row for an appointment change.
func NewEvent(eventType string, ap *models.Appointment, previousStart *time.Time, now time.Time) (*models.OutboxEvent, error) {
	body, err := json.Marshal(EventPayload{
		AppointmentID: ap.ID,
		BarbershopID:  ap.BarbershopID,
		BarberID:      ap.BarberID,
		ClientID:      ap.ClientID,
		ServiceID:     ap.ServiceID,
		Status:        ap.Status,
		StartAt:       ap.StartAt.UTC(),
		EndAt:         ap.EndAt.UTC(),
		PreviousStart: previousStart,
		OccurredAt:    now.UTC(),
	})
	if err != nil {
		return nil, err
	}

	return &models.OutboxEvent{
		EventID:       uuid.New(),
		AggregateType: "appointment",
		AggregateID:   strconv.FormatUint(uint64(ap.ID), 10),
		EventType:     eventType,
		Payload:       datatypes.JSON(body),
	}, nil
}
