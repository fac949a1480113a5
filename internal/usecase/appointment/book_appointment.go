package appointment

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint

	// Either an existing client or contact data to find/create one by phone.
	ClientID    uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	Date  string
	Slot  string
	Notes string

	// ActorID is the authenticated owner, nil for public bookings.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	r     *Resolver
	audit Auditor
}

func NewBookAppointment(r *Resolver, auditor Auditor) *BookAppointment {
	if auditor == nil {
		auditor = noopAuditor{}
	}
	return &BookAppointment{r: r, audit: auditor}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (ap *models.Appointment, err error) {

	ctx, span := startSpan(ctx, "BookAppointment",
		attribute.Int64("barber.id", int64(in.BarberID)),
		attribute.String("date", in.Date),
		attribute.String("slot", in.Slot),
	)
	defer func() { endSpan(span, err) }()

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	slot, err := parseSlot(in.Slot)
	if err != nil {
		return nil, err
	}
	if in.ClientID == 0 && (strings.TrimSpace(in.ClientName) == "" || strings.TrimSpace(in.ClientPhone) == "") {
		return nil, domain.ErrInvalidClient
	}

	d, err := uc.r.day(ctx, in.BarbershopID, in.Date)
	if err != nil {
		return nil, err
	}

	service, err := uc.r.activeService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	barber, err := uc.r.activeBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Conflict guard + write, one transaction
	// --------------------------------------------------
	err = uc.r.repo.WithinTx(ctx, func(tx domain.Repository) error {
		start, _, err := uc.r.guard(ctx, tx, d, barber, slot, service.DurationMinutes, 0)
		if err != nil {
			return err
		}

		client, err := resolveClient(ctx, tx, in)
		if err != nil {
			return err
		}

		ap = domain.NewAppointment(domain.Booking{
			BarbershopID: in.BarbershopID,
			BarberID:     barber.ID,
			ClientID:     client.ID,
			Service:      service,
			StartAt:      start,
			Notes:        in.Notes,
		})
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		ev, err := domain.NewEvent(domain.EventBooked, ap, nil, uc.r.now())
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
				Metadata:     map[string]any{"barber_id": barber.ID, "date": d.key, "slot": in.Slot},
			})
		}
		return nil, err
	}

	uc.r.invalidate(ctx, barber.ID, d.key)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		ActorID:      in.ActorID,
		Action:       audit.ActionAppointmentCreated,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

func resolveClient(ctx context.Context, tx domain.Repository, in BookAppointmentInput) (*models.Client, error) {
	if in.ClientID != 0 {
		client, err := tx.GetClient(ctx, in.BarbershopID, in.ClientID)
		if err != nil {
			return nil, notFound(err, domain.ErrClientNotFound)
		}
		return client, nil
	}
	return tx.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		strings.TrimSpace(in.ClientName),
		strings.TrimSpace(in.ClientPhone),
		strings.TrimSpace(in.ClientEmail),
	)
}
