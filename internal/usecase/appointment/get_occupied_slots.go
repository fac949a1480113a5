package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

// GetOccupiedSlots returns the 30-minute buckets a barber has booked on a
// date, for the owner's day view. A bucket is listed when its boundary falls
// inside a booking, so 10:15-10:45 yields only 10:30. Availability never
// reads these buckets; it uses the exact intervals.
type GetOccupiedSlots struct {
	r *Resolver
}

func NewGetOccupiedSlots(r *Resolver) *GetOccupiedSlots {
	return &GetOccupiedSlots{r: r}
}

func (uc *GetOccupiedSlots) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date string,
) (buckets []string, err error) {

	ctx, span := startSpan(ctx, "GetOccupiedSlots")
	defer func() { endSpan(span, err) }()

	d, err := uc.r.day(ctx, barbershopID, date)
	if err != nil {
		return nil, err
	}

	if _, err := uc.r.repo.GetBarber(ctx, barbershopID, barberID); err != nil {
		return nil, notFound(err, domain.ErrBarberNotFound)
	}

	occ, err := uc.r.occupancy(ctx, d, barberID, 0)
	if err != nil {
		return nil, err
	}
	return occ.Buckets(domain.SlotGranularity), nil
}
