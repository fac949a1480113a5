package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Booking carries what a new appointment needs once its slot was guarded.
type Booking struct {
	BarbershopID uint
	BarberID     uint
	ClientID     uint
	Service      *models.Service
	StartAt      time.Time
	Notes        string
}

// NewAppointment snapshots the service duration; later edits to the
// service never resize existing appointments.
func NewAppointment(b Booking) *models.Appointment {
	start := b.StartAt.UTC()
	return &models.Appointment{
		BarbershopID:    b.BarbershopID,
		BarberID:        b.BarberID,
		ClientID:        b.ClientID,
		ServiceID:       b.Service.ID,
		StartAt:         start,
		EndAt:           start.Add(time.Duration(b.Service.DurationMinutes) * time.Minute),
		DurationMinutes: b.Service.DurationMinutes,
		Status:          string(InitialStatus()),
		Notes:           b.Notes,
	}
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	cancelledAt := now.UTC()
	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &cancelledAt
	return nil
}

// Reschedule moves the appointment keeping its duration snapshot.
func Reschedule(ap *models.Appointment, start time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.StartAt = start.UTC()
	ap.EndAt = ap.StartAt.Add(time.Duration(ap.DurationMinutes) * time.Minute)
	return nil
}
