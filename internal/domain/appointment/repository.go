package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// WithinTx runs fn against a repository bound to one serializable
	// transaction. Storage conflicts surface as ErrConflict.
	WithinTx(ctx context.Context, fn func(tx Repository) error) error

	// -------- Barbershop --------
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)

	// -------- Schedule policy --------
	// Missing rows return (nil, nil).
	GetBusinessHours(ctx context.Context, barbershopID uint, weekday int) (*models.BusinessHours, error)
	GetBarberSchedule(ctx context.Context, barberID uint, weekday int) (*models.BarberSchedule, error)

	// -------- Catalog --------
	GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.Barber, error)
	ListActiveBarbers(ctx context.Context, barbershopID uint) ([]models.Barber, error)
	GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error)
	ListActiveServices(ctx context.Context, barbershopID uint) ([]models.Service, error)

	// -------- Client --------
	GetClient(ctx context.Context, barbershopID, clientID uint) (*models.Client, error)
	GetOrCreateClient(ctx context.Context, barbershopID uint, name, phone, email string) (*models.Client, error)

	// -------- Ledger --------
	// ListActiveAppointments returns pending/confirmed appointments of the
	// barber intersecting [from, to).
	ListActiveAppointments(ctx context.Context, barberID uint, from, to time.Time) ([]models.Appointment, error)
	// ListAppointmentsForPeriod returns every appointment of the shop starting
	// in [from, to); barberID 0 means all barbers.
	ListAppointmentsForPeriod(ctx context.Context, barbershopID, barberID uint, from, to time.Time) ([]models.Appointment, error)
	GetAppointment(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error)

	// -------- Conflict guard (inside WithinTx) --------
	LockBarber(ctx context.Context, barberID uint) error
	GetAppointmentForUpdate(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error)
	HasTimeConflict(ctx context.Context, barberID uint, start, end time.Time, excludeID uint) (bool, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Outbox --------
	InsertOutboxEvent(ctx context.Context, ev *models.OutboxEvent) error
}

// OccupancyCache stores booked intervals per barber and local date.
//
// Every Invalidate bumps a generation for the barber/date. Get returns the
// generation observed on a miss, and Set only stores when it is still
// current, so a read that raced a committed write is never cached.
type OccupancyCache interface {
	Get(ctx context.Context, barberID uint, date string) (booked []BookedInterval, gen int64, ok bool)
	Set(ctx context.Context, barberID uint, date string, gen int64, booked []BookedInterval)
	Invalidate(ctx context.Context, barberID uint, dates ...string)
}
