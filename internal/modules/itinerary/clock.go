package itinerary

import (
	"regexp"
	"strconv"
	"strings"
)

var clockRE = regexp.MustCompile(`^\s*(\d{1,2})(?::(\d{2}))?\s*(?:([AaPp])\.?[Mm]\.?)?\s*$`)

// ClockMinutes converts a free-text clock string to minutes after midnight
// for sorting. Both 12-hour ("3:00 PM", "9am") and 24-hour ("15:00")
// forms are handled; anything unparseable sorts first with a key of zero.
func ClockMinutes(s string) int {
	m := clockRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return 0
	}
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
		if minute > 59 {
			return 0
		}
	}
	switch strings.ToLower(m[3]) {
	case "p":
		if hour > 12 {
			return 0
		}
		if hour != 12 {
			hour += 12
		}
	case "a":
		if hour > 12 {
			return 0
		}
		if hour == 12 {
			hour = 0
		}
	}
	return hour*60 + minute
}
