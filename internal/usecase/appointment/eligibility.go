package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

type GetEligibility struct {
	r *Resolver
}

func NewGetEligibility(r *Resolver) *GetEligibility {
	return &GetEligibility{r: r}
}

func (uc *GetEligibility) Execute(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (domain.Eligibility, error) {

	shop, err := uc.r.barbershop(ctx, barbershopID)
	if err != nil {
		return domain.Eligibility{}, err
	}

	ap, err := uc.r.repo.GetAppointment(ctx, barbershopID, appointmentID)
	if err != nil {
		return domain.Eligibility{}, notFound(err, domain.ErrAppointmentNotFound)
	}

	return domain.PolicyFor(shop).Eligibility(ap, uc.r.now()), nil
}
