package appointment

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type RescheduleInput struct {
	BarbershopID  uint
	AppointmentID uint
	Date          string
	Slot          string
	ActorID       *uint
}

type RescheduleAppointment struct {
	r     *Resolver
	audit Auditor
}

func NewRescheduleAppointment(r *Resolver, auditor Auditor) *RescheduleAppointment {
	if auditor == nil {
		auditor = noopAuditor{}
	}
	return &RescheduleAppointment{r: r, audit: auditor}
}

// snapshotMinutes is the booked duration; rows written before the snapshot
// column existed fall back to their stored interval.
func snapshotMinutes(ap *models.Appointment) int {
	if ap.DurationMinutes > 0 {
		return ap.DurationMinutes
	}
	return int(ap.EndAt.Sub(ap.StartAt).Minutes())
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (ap *models.Appointment, err error) {

	ctx, span := startSpan(ctx, "RescheduleAppointment",
		attribute.Int64("appointment.id", int64(in.AppointmentID)),
		attribute.String("date", in.Date),
		attribute.String("slot", in.Slot),
	)
	defer func() { endSpan(span, err) }()

	slot, err := parseSlot(in.Slot)
	if err != nil {
		return nil, err
	}

	d, err := uc.r.day(ctx, in.BarbershopID, in.Date)
	if err != nil {
		return nil, err
	}

	current, err := uc.r.repo.GetAppointment(ctx, in.BarbershopID, in.AppointmentID)
	if err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}

	barber, err := uc.r.repo.GetBarber(ctx, in.BarbershopID, current.BarberID)
	if err != nil {
		return nil, notFound(err, domain.ErrBarberNotFound)
	}

	policy := domain.PolicyFor(d.shop)
	var previous time.Time

	err = uc.r.repo.WithinTx(ctx, func(tx domain.Repository) error {
		if err := tx.LockBarber(ctx, barber.ID); err != nil {
			return notFound(err, domain.ErrBarberNotFound)
		}

		ap, err = tx.GetAppointmentForUpdate(ctx, in.BarbershopID, in.AppointmentID)
		if err != nil {
			return notFound(err, domain.ErrAppointmentNotFound)
		}
		if err := policy.CheckReschedule(ap, uc.r.now()); err != nil {
			return err
		}

		duration := snapshotMinutes(ap)
		start, _, err := uc.r.guard(ctx, tx, d, barber, slot, duration, ap.ID)
		if err != nil {
			return err
		}

		previous = ap.StartAt
		ap.DurationMinutes = duration
		if err := domain.Reschedule(ap, start); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		ev, err := domain.NewEvent(domain.EventRescheduled, ap, &previous, uc.r.now())
		if err != nil {
			return err
		}
		return tx.InsertOutboxEvent(ctx, ev)
	})

	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.audit.Dispatch(audit.Event{
				BarbershopID: in.BarbershopID,
				ActorID:      in.ActorID,
				Action:       audit.ActionAppointmentConflict,
				Entity:       "appointment",
				EntityID:     &in.AppointmentID,
				Metadata:     map[string]any{"date": d.key, "slot": in.Slot},
			})
		}
		return nil, err
	}

	uc.r.invalidate(ctx, barber.ID, localDate(previous, d.loc), d.key)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		ActorID:      in.ActorID,
		Action:       audit.ActionAppointmentRescheduled,
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata:     map[string]any{"from": previous, "to": ap.StartAt},
	})

	return ap, nil
}
