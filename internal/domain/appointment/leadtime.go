package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const DefaultMinHoursBefore = 2

type LeadTimePolicy struct {
	MinHoursBeforeCancel     int
	MinHoursBeforeReschedule int
}

func PolicyFor(shop *models.Barbershop) LeadTimePolicy {
	p := LeadTimePolicy{
		MinHoursBeforeCancel:     DefaultMinHoursBefore,
		MinHoursBeforeReschedule: DefaultMinHoursBefore,
	}
	if shop == nil {
		return p
	}
	if shop.MinHoursBeforeCancel >= 0 {
		p.MinHoursBeforeCancel = shop.MinHoursBeforeCancel
	}
	if shop.MinHoursBeforeReschedule >= 0 {
		p.MinHoursBeforeReschedule = shop.MinHoursBeforeReschedule
	}
	return p
}

func (p LeadTimePolicy) CancelDeadline(ap *models.Appointment) time.Time {
	return ap.StartAt.Add(-time.Duration(p.MinHoursBeforeCancel) * time.Hour)
}

func (p LeadTimePolicy) RescheduleDeadline(ap *models.Appointment) time.Time {
	return ap.StartAt.Add(-time.Duration(p.MinHoursBeforeReschedule) * time.Hour)
}

// CheckCancel enforces state and lead time. At exactly the deadline the
// change is still allowed.
func (p LeadTimePolicy) CheckCancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}
	if now.After(p.CancelDeadline(ap)) {
		return ErrLeadTimeViolation
	}
	return nil
}

func (p LeadTimePolicy) CheckReschedule(ap *models.Appointment, now time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}
	if now.After(p.RescheduleDeadline(ap)) {
		return ErrLeadTimeViolation
	}
	return nil
}

type Eligibility struct {
	CanCancel          bool      `json:"can_cancel"`
	CanReschedule      bool      `json:"can_reschedule"`
	CancelDeadline     time.Time `json:"cancel_deadline"`
	RescheduleDeadline time.Time `json:"reschedule_deadline"`
	Status             string    `json:"status"`
}

func (p LeadTimePolicy) Eligibility(ap *models.Appointment, now time.Time) Eligibility {
	return Eligibility{
		CanCancel:          p.CheckCancel(ap, now) == nil,
		CanReschedule:      p.CheckReschedule(ap, now) == nil,
		CancelDeadline:     p.CancelDeadline(ap),
		RescheduleDeadline: p.RescheduleDeadline(ap),
		Status:             ap.Status,
	}
}
