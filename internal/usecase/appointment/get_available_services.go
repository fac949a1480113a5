package appointment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServicesForSlotInput struct {
	BarbershopID uint
	BarberID     uint
	Date         string
	Slot         string
}

// GetAvailableServices lists the active services whose duration fits the
// barber's day at the given slot.
type GetAvailableServices struct {
	r *Resolver
}

func NewGetAvailableServices(r *Resolver) *GetAvailableServices {
	return &GetAvailableServices{r: r}
}

func (uc *GetAvailableServices) Execute(
	ctx context.Context,
	in ServicesForSlotInput,
) (out []models.Service, err error) {

	ctx, span := startSpan(ctx, "GetAvailableServices",
		attribute.Int64("barber.id", int64(in.BarberID)),
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

	barber, err := uc.r.activeBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, err
	}

	out = []models.Service{}

	q, err := uc.r.query(ctx, d, barber, domain.SlotGranularity, 0)
	if domain.IsUnavailableDay(err) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	if q.TooSoon(slot) {
		return out, nil
	}

	services, err := uc.r.repo.ListActiveServices(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	for _, s := range services {
		q.Duration = s.DurationMinutes
		if q.Fits(slot) {
			out = append(out, s)
		}
	}
	return out, nil
}
