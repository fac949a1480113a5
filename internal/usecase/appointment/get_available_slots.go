package appointment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint
	Date         string // YYYY-MM-DD, barbershop local
}

type GetAvailableSlots struct {
	r *Resolver
}

func NewGetAvailableSlots(r *Resolver) *GetAvailableSlots {
	return &GetAvailableSlots{r: r}
}

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (slots []string, err error) {

	ctx, span := startSpan(ctx, "GetAvailableSlots",
		attribute.Int64("barber.id", int64(in.BarberID)),
		attribute.String("date", in.Date),
	)
	defer func() { endSpan(span, err) }()

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

	return uc.r.slots(ctx, d, barber, service.DurationMinutes, 0)
}
