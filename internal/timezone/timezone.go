package timezone

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	// Embedded zone database so slim containers still resolve shop timezones.
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// IsValid accepts IANA names ("America/Sao_Paulo") and fixed offsets
// ("-03:00", "+0530", "UTC-03:00").
func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	if _, ok := parseOffset(tz); ok {
		return true
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	tz = strings.TrimSpace(tz)
	if tz != "" {
		if loc, ok := parseOffset(tz); ok {
			return loc
		}
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// ParseDate returns local midnight of dateStr in loc.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(dateStr), loc)
}

// DayBounds returns [midnight, next midnight) of the local day containing t.
// The next midnight is computed by calendar, so 23h and 25h days come out right.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	return start, end
}

func parseOffset(tz string) (*time.Location, bool) {
	s := strings.TrimPrefix(strings.ToUpper(tz), "UTC")
	s = strings.TrimPrefix(s, "GMT")
	if s == "" || (s[0] != '+' && s[0] != '-') {
		return nil, false
	}

	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	s = strings.ReplaceAll(s[1:], ":", "")

	var hours, minutes int
	var err error
	switch len(s) {
	case 1, 2:
		hours, err = strconv.Atoi(s)
	case 4:
		hours, err = strconv.Atoi(s[:2])
		if err == nil {
			minutes, err = strconv.Atoi(s[2:])
		}
	default:
		return nil, false
	}
	if err != nil || hours > 14 || minutes > 59 {
		return nil, false
	}

	signChar := "+"
	if sign < 0 {
		signChar = "-"
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", signChar, hours, minutes)
	return time.FixedZone(name, sign*(hours*3600+minutes*60)), true
}
