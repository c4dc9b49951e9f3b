// Package window computes the start of the current reporting window
// from a recurrence rule. The default monthly rule anchors each report
// at the first instant of the current month in the customer's timezone.
package window

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// DefaultRRule yields "first instant of the current month".
const DefaultRRule = "FREQ=MONTHLY;BYMONTHDAY=1"

// dtstart only needs to predate any window we will ever compute.
var anchor = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Validate checks that rruleStr parses as a recurrence rule.
func Validate(rruleStr string) error {
	_, err := build(rruleStr, time.UTC)
	return err
}

// Start returns the most recent occurrence of rruleStr at or before
// now, evaluated in loc.
func Start(rruleStr string, now time.Time, loc *time.Location) (time.Time, error) {
	rule, err := build(rruleStr, loc)
	if err != nil {
		return time.Time{}, err
	}

	start := rule.Before(now.In(loc), true)
	if start.IsZero() {
		return time.Time{}, fmt.Errorf("window rrule %q has no occurrence at or before %s", rruleStr, now.Format(time.RFC3339))
	}

	return start.In(loc), nil
}

func build(rruleStr string, loc *time.Location) (*rrule.RRule, error) {
	opts, err := rrule.StrToROption(rruleStr)
	if err != nil {
		return nil, fmt.Errorf("invalid window rrule %q: %w", rruleStr, err)
	}

	opts.Dtstart = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, loc)

	rule, err := rrule.NewRRule(*opts)
	if err != nil {
		return nil, fmt.Errorf("invalid window rrule %q: %w", rruleStr, err)
	}

	return rule, nil
}
