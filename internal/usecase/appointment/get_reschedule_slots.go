package appointment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

// GetRescheduleSlots lists the slots an appointment can move to on date.
// The appointment itself does not block, and its duration snapshot is used.
type GetRescheduleSlots struct {
	r *Resolver
}

func NewGetRescheduleSlots(r *Resolver) *GetRescheduleSlots {
	return &GetRescheduleSlots{r: r}
}

func (uc *GetRescheduleSlots) Execute(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
	date string,
) (slots []string, err error) {

	ctx, span := startSpan(ctx, "GetRescheduleSlots",
		attribute.Int64("appointment.id", int64(appointmentID)),
		attribute.String("date", date),
	)
	defer func() { endSpan(span, err) }()

	d, err := uc.r.day(ctx, barbershopID, date)
	if err != nil {
		return nil, err
	}

	ap, err := uc.r.repo.GetAppointment(ctx, barbershopID, appointmentID)
	if err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}
	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	barber, err := uc.r.repo.GetBarber(ctx, barbershopID, ap.BarberID)
	if err != nil {
		return nil, notFound(err, domain.ErrBarberNotFound)
	}

	return uc.r.slots(ctx, d, barber, snapshotMinutes(ap), ap.ID)
}
