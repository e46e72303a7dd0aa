package matching

import (
	"errors"
	"testing"
)

func TestParseClockTime_TwelveHour(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"12:00 AM", 0},
		{"12:30 AM", 30},
		{"9:05 AM", 545},
		{"11:59 AM", 719},
		{"12:00 PM", 720},
		{"12:30 PM", 750},
		{"3:00 PM", 900},
		{"3:00 pm", 900},
		{"11:59 PM", 1439},
	}

	for _, c := range cases {
		got, err := ParseClockTime(c.input)
		if err != nil {
			t.Errorf("ParseClockTime(%q) returned error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClockTime(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestParseClockTime_TwentyFourHour(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"00:15", 15},
		{"09:05", 545},
		{"15:00", 900},
		{"23:59", 1439},
	}

	for _, c := range cases {
		got, err := ParseClockTime(c.input)
		if err != nil {
			t.Errorf("ParseClockTime(%q) returned error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClockTime(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestParseClockTime_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"3 PM",
		"3:00 XM",
		"3:60 PM",
		"13:00 PM",
		"0:30 AM",
		"25:00",
		"12:00 PM extra",
		"noon",
	}

	for _, input := range inputs {
		if _, err := ParseClockTime(input); !errors.Is(err, ErrUnparsableTime) {
			t.Errorf("ParseClockTime(%q) = %v, want ErrUnparsableTime", input, err)
		}
	}
}

func TestMinutesApart(t *testing.T) {
	got, err := MinutesApart("3:00 PM", "3:45 PM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 45 {
		t.Errorf("MinutesApart = %d, want 45", got)
	}

	// Order must not matter.
	rev, err := MinutesApart("3:45 PM", "3:00 PM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rev != 45 {
		t.Errorf("reversed MinutesApart = %d, want 45", rev)
	}

	// Mixed 12-hour and 24-hour inputs compare correctly.
	mixed, err := MinutesApart("15:00", "3:00 PM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mixed != 0 {
		t.Errorf("mixed-format MinutesApart = %d, want 0", mixed)
	}

	if _, err := MinutesApart("garbage", "3:00 PM"); !errors.Is(err, ErrUnparsableTime) {
		t.Errorf("expected ErrUnparsableTime, got %v", err)
	}
}

func TestDaysApart(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2025-06-01", "2025-06-01", 0},
		{"2025-06-01", "2025-06-02", 1},
		{"2025-06-02", "2025-06-01", 1},
		{"2025-06-10", "2025-06-01", 9},
		{"2025-12-31", "2026-01-01", 1},
	}

	for _, c := range cases {
		got, err := DaysApart(c.a, c.b)
		if err != nil {
			t.Errorf("DaysApart(%q, %q) returned error: %v", c.a, c.b, err)
			continue
		}
		if got != c.want {
			t.Errorf("DaysApart(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}

	if _, err := DaysApart("junk", "2025-06-01"); !errors.Is(err, ErrUnparsableDate) {
		t.Errorf("expected ErrUnparsableDate, got %v", err)
	}
	if _, err := DaysApart("2025-06-01", "06/01/2025"); !errors.Is(err, ErrUnparsableDate) {
		t.Errorf("expected ErrUnparsableDate, got %v", err)
	}
}
