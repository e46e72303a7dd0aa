package matching

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnparsableTime is returned when a clock-time string cannot be
// interpreted in either 12-hour or 24-hour form.
var ErrUnparsableTime = errors.New("unparsable clock time")

// ErrUnparsableDate is returned when a date string is not a valid
// "YYYY-MM-DD" calendar date.
var ErrUnparsableDate = errors.New("unparsable date")

const dateLayout = "2006-01-02"

// ParseClockTime converts a clock-time string into minutes since midnight.
// Accepted forms: "H:MM AM", "HH:MM PM" (any case) and bare 24-hour "HH:MM".
// A failed parse is reported to the caller instead of being aliased to a
// valid time of day.
func ParseClockTime(s string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 || len(fields) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
	}

	parts := strings.Split(fields[0], ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
	}

	if len(fields) == 2 {
		// 12-hour form: normalize the hour using the AM/PM token.
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
		}
		switch strings.ToUpper(fields[1]) {
		case "AM":
			if hour == 12 {
				hour = 0
			}
		case "PM":
			if hour != 12 {
				hour += 12
			}
		default:
			return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
		}
	} else {
		// Bare 24-hour form.
		if hour < 0 || hour > 23 {
			return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
		}
	}

	return hour*60 + minute, nil
}

// MinutesApart returns the absolute difference in minutes between two
// clock-time strings. An error from either side is propagated.
func MinutesApart(a, b string) (int, error) {
	ma, err := ParseClockTime(a)
	if err != nil {
		return 0, err
	}
	mb, err := ParseClockTime(b)
	if err != nil {
		return 0, err
	}
	diff := ma - mb
	if diff < 0 {
		diff = -diff
	}
	return diff, nil
}

// DaysApart returns the absolute difference in calendar days between two
// "YYYY-MM-DD" date strings.
func DaysApart(a, b string) (int, error) {
	da, err := time.Parse(dateLayout, strings.TrimSpace(a))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableDate, a)
	}
	db, err := time.Parse(dateLayout, strings.TrimSpace(b))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableDate, b)
	}

	days := int(da.Sub(db).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days, nil
}
