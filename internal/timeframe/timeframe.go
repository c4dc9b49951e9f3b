package timeframe

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Interval is a half-open [Start, End) range of minutes since midnight,
// in local wall-clock time. Intervals never cross midnight; an overnight
// shift is expressed as one interval ending at 24:00 and another
// starting at 00:00.
type Interval struct {
	Start int
	End   int
}

func (iv Interval) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", iv.Start/60, iv.Start%60, iv.End/60, iv.End%60)
}

// RuleSet maps weekdays to their allowed intervals. An empty RuleSet
// disables filtering entirely; a weekday with no entry allows nothing
// on that day.
type RuleSet map[time.Weekday][]Interval

// Enabled reports whether the rule set filters anything at all.
func (rs RuleSet) Enabled() bool {
	return len(rs) > 0
}

// Matches reports whether t falls inside the rule set, evaluated in loc.
func (rs RuleSet) Matches(t time.Time, loc *time.Location) bool {
	if len(rs) == 0 {
		return true
	}

	local := t.In(loc)
	intervals, ok := rs[local.Weekday()]
	if !ok {
		return false
	}

	minute := local.Hour()*60 + local.Minute()
	for _, iv := range intervals {
		if minute >= iv.Start && minute < iv.End {
			return true
		}
	}

	return false
}

// Describe renders the rule set for the report summary, e.g.
// "Mon 08:00-18:00; Fri 08:00-12:00, 13:00-18:00".
func (rs RuleSet) Describe() string {
	if len(rs) == 0 {
		return "disabled (all events included)"
	}

	var days []string
	for _, day := range weekdayOrder {
		intervals, ok := rs[day]
		if !ok {
			continue
		}
		parts := make([]string, 0, len(intervals))
		for _, iv := range intervals {
			parts = append(parts, iv.String())
		}
		days = append(days, day.String()[:3]+" "+strings.Join(parts, ", "))
	}

	return strings.Join(days, "; ")
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseRuleSet builds a RuleSet from its configuration form: weekday
// names mapped to "HH:MM-HH:MM" interval strings. A nil or empty map
// yields an empty (disabled) RuleSet.
func ParseRuleSet(raw map[string][]string) (RuleSet, error) {
	rs := RuleSet{}
	for dayName, rawIntervals := range raw {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(dayName))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q in timeframe", dayName)
		}
		if _, exists := rs[day]; exists {
			return nil, fmt.Errorf("duplicate weekday %q in timeframe", dayName)
		}

		intervals := make([]Interval, 0, len(rawIntervals))
		for _, rawInterval := range rawIntervals {
			iv, err := parseInterval(rawInterval)
			if err != nil {
				return nil, fmt.Errorf("timeframe for %s: %w", day, err)
			}
			intervals = append(intervals, iv)
		}
		rs[day] = intervals
	}

	return rs, nil
}

func parseInterval(s string) (Interval, error) {
	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok {
		return Interval{}, fmt.Errorf("interval %q must be of the form HH:MM-HH:MM", s)
	}

	start, err := parseClock(startStr)
	if err != nil {
		return Interval{}, fmt.Errorf("interval %q: %w", s, err)
	}
	end, err := parseClock(endStr)
	if err != nil {
		return Interval{}, fmt.Errorf("interval %q: %w", s, err)
	}

	if start >= end {
		return Interval{}, fmt.Errorf("interval %q: start must be before end", s)
	}

	return Interval{Start: start, End: end}, nil
}

// parseClock converts "HH:MM" to minutes since midnight. "24:00" is
// allowed so an interval can run to the end of the day.
func parseClock(s string) (int, error) {
	hourStr, minuteStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("clock time %q must be of the form HH:MM", s)
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, fmt.Errorf("clock time %q has a bad hour", s)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return 0, fmt.Errorf("clock time %q has a bad minute", s)
	}

	if minute < 0 || minute > 59 || hour < 0 || hour > 24 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}

	return hour*60 + minute, nil
}
