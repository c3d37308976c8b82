// Package schedule holds the time-slot and overlap logic for the booking
// calendar. All times are business-local HH:MM strings; dates are plain
// YYYY-MM-DD calendar days. Appointments never cross midnight.
package schedule

import (
	"fmt"
	"time"
)

// MinuteOfDay parses an HH:MM label into minutes since midnight.
func MinuteOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Slots returns the ordered HH:MM labels covering [open, close) at the given
// step, end-exclusive. Invalid window or step yields nil.
func Slots(open, close string, stepMinutes int) []string {
	if stepMinutes <= 0 {
		return nil
	}
	start, err := MinuteOfDay(open)
	if err != nil {
		return nil
	}
	end, err := MinuteOfDay(close)
	if err != nil {
		return nil
	}
	if end <= start {
		return nil
	}

	var out []string
	for m := start; m < end; m += stepMinutes {
		out = append(out, formatMinute(m))
	}
	return out
}

// FreeStarts returns the slot labels within [open, close) where a booking of
// durationMinutes would still end by close and would not overlap any existing
// non-cancelled appointment on the given date.
func FreeStarts(open, close string, stepMinutes, durationMinutes int, date string, existing []Booking) []string {
	if durationMinutes <= 0 {
		return nil
	}
	closeMin, err := MinuteOfDay(close)
	if err != nil {
		return nil
	}

	var out []string
	for _, label := range Slots(open, close, stepMinutes) {
		startMin, err := MinuteOfDay(label)
		if err != nil {
			continue
		}
		if startMin+durationMinutes > closeMin {
			break
		}
		cand := Candidate{Date: date, StartTime: label, DurationMinutes: durationMinutes}
		if !HasConflict(cand, existing, "") {
			out = append(out, label)
		}
	}
	return out
}
