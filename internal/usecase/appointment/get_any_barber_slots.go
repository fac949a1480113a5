package appointment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

type AnyBarberInput struct {
	BarbershopID uint
	ServiceID    uint
	Date         string
}

// GetAnyBarberSlots backs the "book by time" flow: every slot that at least
// one active barber can take.
type GetAnyBarberSlots struct {
	r *Resolver
}

func NewGetAnyBarberSlots(r *Resolver) *GetAnyBarberSlots {
	return &GetAnyBarberSlots{r: r}
}

func (uc *GetAnyBarberSlots) Execute(
	ctx context.Context,
	in AnyBarberInput,
) (slots []string, err error) {

	ctx, span := startSpan(ctx, "GetAnyBarberSlots", attribute.String("date", in.Date))
	defer func() { endSpan(span, err) }()

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

	lists := make([][]string, 0, len(barbers))
	for i := range barbers {
		s, err := uc.r.slots(ctx, d, &barbers[i], service.DurationMinutes, 0)
		if err != nil {
			return nil, err
		}
		lists = append(lists, s)
	}
	return domain.MergeSlots(lists...), nil
}
