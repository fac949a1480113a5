package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// BookedInterval is one active appointment as stored: UTC instants.
type BookedInterval struct {
	AppointmentID uint      `json:"id"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
}

func IntervalsFrom(appts []models.Appointment) []BookedInterval {
	out := make([]BookedInterval, 0, len(appts))
	for _, ap := range appts {
		if !Status(ap.Status).IsActive() {
			continue
		}
		out = append(out, BookedInterval{
			AppointmentID: ap.ID,
			StartAt:       ap.StartAt,
			EndAt:         ap.EndAt,
		})
	}
	return out
}

// Occupancy is the set of booked intervals of one barber on one local day,
// clamped to that day and expressed in local wall-clock minutes.
type Occupancy struct {
	intervals []Window
}

// BuildOccupancy projects booked intervals onto the local day of day.
// Intervals that do not touch the day are dropped, and excludeID (when non
// zero) is left out so a reschedule never collides with itself.
func BuildOccupancy(booked []BookedInterval, day time.Time, loc *time.Location, excludeID uint) Occupancy {
	dayStart, dayEnd := timezone.DayBounds(day, loc)

	var out []Window
	for _, b := range booked {
		if excludeID != 0 && b.AppointmentID == excludeID {
			continue
		}
		if !b.StartAt.Before(dayEnd) || !b.EndAt.After(dayStart) {
			continue
		}

		start := 0
		if b.StartAt.After(dayStart) {
			start = wallMinutes(b.StartAt.In(loc))
		}
		end := MinutesPerDay
		if b.EndAt.Before(dayEnd) {
			end = wallMinutes(b.EndAt.In(loc))
		}
		// Wall clock can run backwards across a DST fall-back.
		if end <= start {
			from := b.StartAt
			if from.Before(dayStart) {
				from = dayStart
			}
			end = start + int(b.EndAt.Sub(from).Minutes())
			if end > MinutesPerDay {
				end = MinutesPerDay
			}
		}
		if end > start {
			out = append(out, Window{Start: start, End: end})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return Occupancy{intervals: out}
}

func (o Occupancy) Overlaps(w Window) bool {
	for _, iv := range o.intervals {
		if iv.Start >= w.End {
			break
		}
		if iv.Overlaps(w) {
			return true
		}
	}
	return false
}

func (o Occupancy) Intervals() []Window {
	return append([]Window(nil), o.intervals...)
}

// Buckets marks every grid boundary that falls inside an interval's
// [start, end) and returns them sorted as "HH:MM". A bucket that is only
// partly covered after its boundary is not marked.
func (o Occupancy) Buckets(granularity int) []string {
	if granularity <= 0 {
		return nil
	}
	seen := map[int]struct{}{}
	for _, iv := range o.intervals {
		first := ((iv.Start + granularity - 1) / granularity) * granularity
		for b := first; b < iv.End; b += granularity {
			seen[b] = struct{}{}
		}
	}

	keys := make([]int, 0, len(seen))
	for b := range seen {
		keys = append(keys, b)
	}
	sort.Ints(keys)

	out := make([]string, 0, len(keys))
	for _, b := range keys {
		out = append(out, FormatClock(b))
	}
	return out
}
