package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists every appointment of the day, cancelled included.
// barberID 0 lists the whole barbershop.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, notFound(err, domain.ErrBarbershopNotFound)
	}

	loc := timezone.Location(shop.Timezone)
	day, err := timezone.ParseDate(date, loc)
	if err != nil {
		return nil, domain.ErrInvalidDateOrTime
	}
	start, end := timezone.DayBounds(day, loc)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		barbershopID,
		barberID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments, loc), nil
}

func toListDTO(appointments []models.Appointment, loc *time.Location) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		local := ap.StartAt.In(loc)
		out = append(out, dto.AppointmentListDTO{
			ID:              ap.ID,
			StartAt:         ap.StartAt,
			EndAt:           ap.EndAt,
			Date:            local.Format(timezone.DateLayout),
			Time:            local.Format(timezone.ClockLayout),
			DurationMinutes: snapshotMinutes(&ap),
			Status:          ap.Status,
			BarberID:        ap.BarberID,
			BarberName:      ap.Barber.Name,
			ClientName:      ap.Client.Name,
			ClientPhone:     ap.Client.Phone,
			ServiceName:     ap.Service.Name,
			Notes:           ap.Notes,
		})
	}
	return out
}
