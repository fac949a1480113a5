package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	// SlotGranularity is the step between candidate slots, in minutes.
	SlotGranularity = 30
	MinutesPerDay   = 24 * 60
)

// ParseClock converts "HH:MM" (or "HH:MM:SS") into minutes since midnight.
// "24:00" is accepted as end of day.
func ParseClock(hm string) (int, error) {
	hm = strings.TrimSpace(hm)
	if len(hm) > 5 {
		hm = hm[:5]
	}
	if hm == "24:00" {
		return MinutesPerDay, nil
	}
	t, err := time.Parse(timezone.ClockLayout, hm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// wallMinutes is the local wall-clock position of t, in minutes since midnight.
func wallMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Window is a half-open [Start, End) range in minutes since local midnight.
type Window struct {
	Start int
	End   int
}

func (w Window) Valid() bool {
	return w.Start >= 0 && w.Start < w.End && w.End <= MinutesPerDay
}

func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && o.Start < w.End
}

func (w Window) Contains(o Window) bool {
	return o.Start >= w.Start && o.End <= w.End
}

func (w Window) String() string {
	return FormatClock(w.Start) + "-" + FormatClock(w.End)
}
