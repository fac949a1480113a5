package appointment

import (
	"testing"
	"time"
)

var (
	futureDay = time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)
	longAgo   = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
)

func nineToSix() DayPlan {
	return DayPlan{Open: Window{Start: 9 * 60, End: 18 * 60}}
}

func occupied(day time.Time, from, to string) Occupancy {
	s, _ := ParseClock(from)
	e, _ := ParseClock(to)
	booked := []BookedInterval{{
		AppointmentID: 99,
		StartAt:       day.Add(time.Duration(s) * time.Minute),
		EndAt:         day.Add(time.Duration(e) * time.Minute),
	}}
	return BuildOccupancy(booked, day, day.Location(), 0)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestAvailableSlots_EmptyDay(t *testing.T) {
	got := AvailableSlots(SlotQuery{Plan: nineToSix(), Duration: 30, Day: futureDay, Earliest: longAgo})
	if len(got) != 18 {
		t.Fatalf("expected 18 slots, got %d: %v", len(got), got)
	}
	if got[0] != "09:00" || got[17] != "17:30" {
		t.Fatalf("unexpected bounds %s..%s", got[0], got[17])
	}
}

func TestAvailableSlots_ExistingAppointment(t *testing.T) {
	q := SlotQuery{
		Plan:      nineToSix(),
		Duration:  30,
		Occupancy: occupied(futureDay, "10:00", "10:30"),
		Day:       futureDay,
		Earliest:  longAgo,
	}
	got := AvailableSlots(q)
	if contains(got, "10:00") {
		t.Fatal("10:00 should be occupied")
	}
	if !contains(got, "09:30") || !contains(got, "10:30") {
		t.Fatalf("neighbours should stay free: %v", got)
	}
}

func TestAvailableSlots_LongServiceNeedsFollowingSlot(t *testing.T) {
	q := SlotQuery{
		Plan:      nineToSix(),
		Duration:  60,
		Occupancy: occupied(futureDay, "10:00", "10:30"),
		Day:       futureDay,
		Earliest:  longAgo,
	}
	if q.Fits(9*60 + 30) {
		t.Fatal("09:30 for 60 min should collide with 10:00")
	}
	if !q.Fits(10*60 + 30) {
		t.Fatal("10:30 should fit")
	}
	if q.Check(17*60+30) != RejectAfterClose {
		t.Fatalf("17:30 for 60 min should pass closing, got %q", q.Check(17*60+30))
	}
}

func TestAvailableSlots_Lunch(t *testing.T) {
	lunch := Window{Start: 12 * 60, End: 13 * 60}
	q := SlotQuery{
		Plan:     DayPlan{Open: Window{Start: 9*60 + 15, End: 18 * 60}, Lunch: &lunch},
		Duration: 30,
		Day:      futureDay,
		Earliest: longAgo,
	}
	if q.Check(11*60+45) != RejectLunch {
		t.Fatalf("11:45 should spill into lunch, got %q", q.Check(11*60+45))
	}
	if !q.Fits(11*60 + 15) {
		t.Fatal("11:15 should fit")
	}
	if !q.Fits(13*60 + 15) {
		t.Fatal("13:15 should fit")
	}

	q.Plan.Open.Start = 9 * 60
	if !q.Fits(11*60 + 30) {
		t.Fatal("11:30 ends exactly at lunch start and should fit")
	}
	if q.Fits(12 * 60) {
		t.Fatal("12:00 is lunch")
	}
}

func TestAvailableSlots_TodayExcludesPast(t *testing.T) {
	now := futureDay.Add(10*time.Hour + 30*time.Minute)
	q := SlotQuery{Plan: nineToSix(), Duration: 30, Day: futureDay, Earliest: now}

	got := AvailableSlots(q)
	if contains(got, "10:30") || contains(got, "10:00") {
		t.Fatalf("slots at or before now must be excluded: %v", got)
	}
	if got[0] != "11:00" {
		t.Fatalf("expected first slot 11:00, got %s", got[0])
	}
}

func TestAvailableSlots_Properties(t *testing.T) {
	lunch := Window{Start: 12 * 60, End: 13 * 60}
	plan := DayPlan{Open: Window{Start: 8 * 60, End: 19 * 60}, Lunch: &lunch}
	occ := occupied(futureDay, "15:10", "16:05")

	for _, dur := range []int{15, 30, 45, 60, 90} {
		q := SlotQuery{Plan: plan, Duration: dur, Occupancy: occ, Day: futureDay, Earliest: longAgo}
		got := AvailableSlots(q)
		if len(got) == 0 {
			t.Fatalf("duration %d: expected slots", dur)
		}
		for i, s := range got {
			if i > 0 && got[i-1] >= s {
				t.Fatalf("duration %d: not ascending %v", dur, got)
			}
			start, _ := ParseClock(s)
			w := Window{Start: start, End: start + dur}
			if !plan.Open.Contains(w) {
				t.Fatalf("duration %d: %s outside hours", dur, s)
			}
			if w.Overlaps(lunch) {
				t.Fatalf("duration %d: %s overlaps lunch", dur, s)
			}
			if occ.Overlaps(w) {
				t.Fatalf("duration %d: %s overlaps booking", dur, s)
			}
		}

		again := AvailableSlots(q)
		if len(again) != len(got) {
			t.Fatalf("duration %d: resolver not idempotent", dur)
		}
	}
}

func TestAvailableSlots_SelfExclusion(t *testing.T) {
	start := futureDay.Add(10 * time.Hour)
	booked := []BookedInterval{{AppointmentID: 7, StartAt: start, EndAt: start.Add(30 * time.Minute)}}

	with := AvailableSlots(SlotQuery{Plan: nineToSix(), Duration: 30, Occupancy: BuildOccupancy(booked, futureDay, time.UTC, 0), Day: futureDay, Earliest: longAgo})
	without := AvailableSlots(SlotQuery{Plan: nineToSix(), Duration: 30, Occupancy: BuildOccupancy(booked, futureDay, time.UTC, 7), Day: futureDay, Earliest: longAgo})

	if contains(with, "10:00") {
		t.Fatal("10:00 should be occupied by appointment 7")
	}
	if !contains(without, "10:00") {
		t.Fatal("rescheduling appointment 7 should re-offer its own slot")
	}
}

func TestCheckWithoutOccupancy_OffGrid(t *testing.T) {
	q := SlotQuery{Plan: nineToSix(), Duration: 30, Day: futureDay, Earliest: longAgo}
	if q.CheckWithoutOccupancy(9*60+10) != RejectOffGrid {
		t.Fatal("09:10 is not on the slot grid")
	}
	if q.CheckWithoutOccupancy(8*60+30) != RejectOffGrid {
		t.Fatal("08:30 is before opening")
	}
}

func TestMergeSlots(t *testing.T) {
	got := MergeSlots([]string{"09:00", "10:00"}, []string{"09:30", "10:00"}, nil)
	if len(got) != 3 || got[0] != "09:00" || got[1] != "09:30" || got[2] != "10:00" {
		t.Fatalf("unexpected merge %v", got)
	}
}
