package timezone

import (
	"testing"
	"time"
)

func TestLocation_FixedOffsets(t *testing.T) {
	cases := map[string]int{
		"-03:00":    -3 * 3600,
		"+0530":     5*3600 + 30*60,
		"UTC-03:00": -3 * 3600,
		"GMT+2":     2 * 3600,
	}
	ref := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	for tz, want := range cases {
		if !IsValid(tz) {
			t.Fatalf("%q should be valid", tz)
		}
		_, got := ref.In(Location(tz)).Zone()
		if got != want {
			t.Fatalf("%q: expected offset %d, got %d", tz, want, got)
		}
	}
}

func TestLocation_FallsBackToDefault(t *testing.T) {
	if IsValid("") || IsValid("Mars/Olympus") || IsValid("+99:00") {
		t.Fatal("invalid zones reported as valid")
	}
	if got := Location("Mars/Olympus").String(); got != DefaultTimezone {
		t.Fatalf("expected fallback %s, got %s", DefaultTimezone, got)
	}
}

func TestDayBounds_DSTDay(t *testing.T) {
	loc := Location("America/New_York")
	// 2026-03-08 is the spring-forward day in New York: 23 hours long.
	noon := time.Date(2026, 3, 8, 12, 0, 0, 0, loc)
	start, end := DayBounds(noon, loc)

	if got := end.Sub(start); got != 23*time.Hour {
		t.Fatalf("expected 23h day, got %s", got)
	}
	if start.Hour() != 0 || end.Day() != 9 {
		t.Fatalf("unexpected bounds %s .. %s", start, end)
	}
}

func TestParseDate_LocalMidnight(t *testing.T) {
	loc := Location("-03:00")
	got, err := ParseDate(" 2026-05-04 ", loc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2026, 5, 4, 3, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got.UTC())
	}

	if _, err := ParseDate("2026-02-30", loc); err == nil {
		t.Fatal("expected error for invalid date")
	}
}
