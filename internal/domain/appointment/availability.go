package appointment

import (
	"sort"
	"time"
)

// Rejection names the first rule a candidate slot failed. Empty means it fits.
type Rejection string

const (
	RejectNone       Rejection = ""
	RejectOffGrid    Rejection = "off_grid"
	RejectAfterClose Rejection = "after_close"
	RejectLunch      Rejection = "lunch"
	RejectOccupied   Rejection = "occupied"
	RejectTooSoon    Rejection = "too_soon"
)

// SlotQuery carries everything needed to decide whether a start fits a day.
type SlotQuery struct {
	Plan      DayPlan
	Duration  int // minutes
	Occupancy Occupancy
	// Day is local midnight of the requested date.
	Day time.Time
	// Earliest is now plus the shop's minimum advance; slots must start after it.
	Earliest time.Time
}

// Instant is the absolute time of a local slot start on Day.
func (q SlotQuery) Instant(slot int) time.Time {
	return time.Date(q.Day.Year(), q.Day.Month(), q.Day.Day(), slot/60, slot%60, 0, 0, q.Day.Location())
}

// Check evaluates, in order: grid alignment, closing time, lunch, occupancy
// and the minimum advance.
func (q SlotQuery) Check(slot int) Rejection {
	if rej := q.checkWindow(slot); rej != RejectNone {
		return rej
	}
	if q.Occupancy.Overlaps(Window{Start: slot, End: slot + q.Duration}) {
		return RejectOccupied
	}
	return q.checkTime(slot)
}

// CheckWithoutOccupancy is used at commit time, where overlap is decided by
// the store under lock.
func (q SlotQuery) CheckWithoutOccupancy(slot int) Rejection {
	if rej := q.checkWindow(slot); rej != RejectNone {
		return rej
	}
	return q.checkTime(slot)
}

func (q SlotQuery) checkWindow(slot int) Rejection {
	if slot < q.Plan.Open.Start || (slot-q.Plan.Open.Start)%SlotGranularity != 0 {
		return RejectOffGrid
	}
	want := Window{Start: slot, End: slot + q.Duration}
	if q.Duration <= 0 || want.End > q.Plan.Open.End {
		return RejectAfterClose
	}
	if q.Plan.Lunch != nil && want.Overlaps(*q.Plan.Lunch) {
		return RejectLunch
	}
	return RejectNone
}

func (q SlotQuery) checkTime(slot int) Rejection {
	if q.TooSoon(slot) {
		return RejectTooSoon
	}
	return RejectNone
}

func (q SlotQuery) TooSoon(slot int) bool {
	return !q.Instant(slot).After(q.Earliest)
}

func (q SlotQuery) Fits(slot int) bool {
	return q.Check(slot) == RejectNone
}

// AvailableSlots returns the fitting starts of the day, ascending, as "HH:MM".
func AvailableSlots(q SlotQuery) []string {
	out := []string{}
	for _, s := range slotStarts(q.Plan.Open, SlotGranularity) {
		if q.Fits(s) {
			out = append(out, FormatClock(s))
		}
	}
	return out
}

// MergeSlots unions sorted "HH:MM" lists into one sorted, deduplicated list.
func MergeSlots(lists ...[]string) []string {
	seen := map[string]struct{}{}
	for _, l := range lists {
		for _, s := range l {
			seen[s] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	// "HH:MM" sorts lexically in time order.
	sort.Strings(out)
	return out
}
