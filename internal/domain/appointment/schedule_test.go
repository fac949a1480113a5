package appointment

import (
	"errors"
	"testing"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func shopDay() *models.BusinessHours {
	return &models.BusinessHours{Weekday: 1, OpenTime: "09:00", CloseTime: "18:00", Active: true}
}

func TestResolveDayPlan_MissingConfiguration(t *testing.T) {
	if _, err := ResolveDayPlan(nil, nil, &models.Barber{Active: true}); !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("expected configuration_missing, got %v", err)
	}
	bad := shopDay()
	bad.CloseTime = "08:00"
	if _, err := ResolveDayPlan(bad, nil, nil); !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("expected configuration_missing for inverted hours, got %v", err)
	}
}

func TestResolveDayPlan_ClosedDays(t *testing.T) {
	closed := shopDay()
	closed.Active = false
	if _, err := ResolveDayPlan(closed, nil, nil); !errors.Is(err, ErrClosedDay) {
		t.Fatalf("inactive shop day should be closed, got %v", err)
	}

	off := &models.BarberSchedule{Weekday: 1, Active: false}
	if _, err := ResolveDayPlan(shopDay(), off, &models.Barber{Active: true}); !errors.Is(err, ErrClosedDay) {
		t.Fatalf("barber day off should be closed, got %v", err)
	}

	if _, err := ResolveDayPlan(shopDay(), nil, &models.Barber{Active: false}); !errors.Is(err, ErrClosedDay) {
		t.Fatalf("inactive barber should be closed, got %v", err)
	}
	if !IsUnavailableDay(ErrClosedDay) || IsUnavailableDay(ErrConflict) {
		t.Fatal("IsUnavailableDay misclassifies")
	}
}

func TestResolveDayPlan_OverrideClampedToShop(t *testing.T) {
	override := &models.BarberSchedule{Weekday: 1, Active: true, OpenTime: "08:00", CloseTime: "14:00"}
	barber := &models.Barber{Active: true, LunchStart: "12:00", LunchEnd: "13:00"}

	plan, err := ResolveDayPlan(shopDay(), override, barber)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if plan.Open != (Window{Start: 9 * 60, End: 14 * 60}) {
		t.Fatalf("expected 09:00-14:00, got %s", plan.Open)
	}
	if plan.Lunch == nil || *plan.Lunch != (Window{Start: 12 * 60, End: 13 * 60}) {
		t.Fatalf("unexpected lunch %v", plan.Lunch)
	}
}

func TestResolveDayPlan_ShopHoursWithoutOverride(t *testing.T) {
	plan, err := ResolveDayPlan(shopDay(), nil, &models.Barber{Active: true, LunchStart: "12:00"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if plan.Open != (Window{Start: 9 * 60, End: 18 * 60}) {
		t.Fatalf("expected shop hours, got %s", plan.Open)
	}
	if plan.Lunch != nil {
		t.Fatal("half-configured lunch should be ignored")
	}
}
