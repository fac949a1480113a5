package appointment

import (
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// DayPlan is the effective working window of one barber on one local day.
type DayPlan struct {
	Open  Window
	Lunch *Window
}

// ResolveDayPlan combines the shop hours for the weekday, the barber's own
// row for that weekday (may be nil) and the barber's daily lunch break.
//
// The shop row is mandatory: without it the day is not configured. An
// inactive shop or barber row closes the day. A barber override is clamped
// to the shop window.
func ResolveDayPlan(
	shop *models.BusinessHours,
	override *models.BarberSchedule,
	barber *models.Barber,
) (DayPlan, error) {

	if shop == nil || shop.OpenTime == "" || shop.CloseTime == "" {
		return DayPlan{}, ErrConfigurationMissing
	}

	open, err := ParseClock(shop.OpenTime)
	if err != nil {
		return DayPlan{}, ErrConfigurationMissing
	}
	close, err := ParseClock(shop.CloseTime)
	if err != nil {
		return DayPlan{}, ErrConfigurationMissing
	}
	window := Window{Start: open, End: close}
	if !window.Valid() {
		return DayPlan{}, ErrConfigurationMissing
	}

	if !shop.Active || (barber != nil && !barber.Active) {
		return DayPlan{}, ErrClosedDay
	}

	if override != nil {
		if !override.Active {
			return DayPlan{}, ErrClosedDay
		}
		if override.OpenTime != "" && override.CloseTime != "" {
			bo, err1 := ParseClock(override.OpenTime)
			bc, err2 := ParseClock(override.CloseTime)
			if err1 == nil && err2 == nil {
				window = Window{Start: max(bo, window.Start), End: min(bc, window.End)}
			}
		}
		if !window.Valid() {
			return DayPlan{}, ErrClosedDay
		}
	}

	plan := DayPlan{Open: window}
	if barber != nil && barber.LunchStart != "" && barber.LunchEnd != "" {
		ls, err1 := ParseClock(barber.LunchStart)
		le, err2 := ParseClock(barber.LunchEnd)
		lunch := Window{Start: ls, End: le}
		if err1 == nil && err2 == nil && lunch.Valid() {
			plan.Lunch = &lunch
		}
	}
	return plan, nil
}

// IsUnavailableDay reports the plan errors that mean "no slots" rather than failure.
func IsUnavailableDay(err error) bool {
	return errors.Is(err, ErrConfigurationMissing) || errors.Is(err, ErrClosedDay)
}
