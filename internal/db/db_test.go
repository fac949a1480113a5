package db

import (
	"testing"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestInvalidTimezones(t *testing.T) {
	shops := []models.Barbershop{
		{ID: 1, Timezone: "America/Sao_Paulo"},
		{ID: 2, Timezone: ""},
		{ID: 3, Timezone: "-03:00"},
		{ID: 4, Timezone: "Mars/Olympus"},
	}

	got := invalidTimezones(shops)
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Fatalf("expected [2 4], got %v", got)
	}
}
