package appointment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarbersForSlotInput struct {
	BarbershopID uint
	ServiceID    uint
	Date         string
	Slot         string // HH:MM
}

// GetAvailableBarbers lists the active barbers for whom the slot fits.
type GetAvailableBarbers struct {
	r *Resolver
}

func NewGetAvailableBarbers(r *Resolver) *GetAvailableBarbers {
	return &GetAvailableBarbers{r: r}
}

func (uc *GetAvailableBarbers) Execute(
	ctx context.Context,
	in BarbersForSlotInput,
) (out []models.Barber, err error) {

	ctx, span := startSpan(ctx, "GetAvailableBarbers",
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

	service, err := uc.r.activeService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	barbers, err := uc.r.repo.ListActiveBarbers(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	out = []models.Barber{}
	for i := range barbers {
		q, err := uc.r.query(ctx, d, &barbers[i], service.DurationMinutes, 0)
		if domain.IsUnavailableDay(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if q.Fits(slot) {
			out = append(out, barbers[i])
		}
	}
	return out, nil
}
