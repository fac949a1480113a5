package appointment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type CancelAppointment struct {
	r     *Resolver
	audit Auditor
}

func NewCancelAppointment(r *Resolver, auditor Auditor) *CancelAppointment {
	if auditor == nil {
		auditor = noopAuditor{}
	}
	return &CancelAppointment{r: r, audit: auditor}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
	actorID *uint,
) (ap *models.Appointment, err error) {

	ctx, span := startSpan(ctx, "CancelAppointment",
		attribute.Int64("appointment.id", int64(appointmentID)),
	)
	defer func() { endSpan(span, err) }()

	shop, err := uc.r.barbershop(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	policy := domain.PolicyFor(shop)

	err = uc.r.repo.WithinTx(ctx, func(tx domain.Repository) error {
		ap, err = tx.GetAppointmentForUpdate(ctx, barbershopID, appointmentID)
		if err != nil {
			return notFound(err, domain.ErrAppointmentNotFound)
		}

		now := uc.r.now()
		if err := policy.CheckCancel(ap, now); err != nil {
			return err
		}
		if err := domain.Cancel(ap, now); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		ev, err := domain.NewEvent(domain.EventCancelled, ap, nil, now)
		if err != nil {
			return err
		}
		return tx.InsertOutboxEvent(ctx, ev)
	})
	if err != nil {
		return nil, err
	}

	uc.r.invalidate(ctx, ap.BarberID, localDate(ap.StartAt, timezone.Location(shop.Timezone)))

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		ActorID:      actorID,
		Action:       audit.ActionAppointmentCancelled,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
