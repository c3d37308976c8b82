package schedule

// Booking is the subset of an appointment the overlap check needs.
type Booking struct {
	ID        string
	Date      string
	StartTime string
	EndTime   string
	Status    string
}

// Candidate is a prospective booking to test against the existing calendar.
type Candidate struct {
	Date            string
	StartTime       string
	DurationMinutes int
}

// HasConflict reports whether the candidate's occupied interval overlaps any
// existing non-cancelled booking on the same date. excludeID skips the booking
// being edited. Intervals are half-open: [start, end).
func HasConflict(cand Candidate, existing []Booking, excludeID string) bool {
	return len(overlapping(cand, existing, excludeID, true)) > 0
}

// Overlapping returns every existing booking the candidate collides with, in
// input order, for slot-availability display.
func Overlapping(cand Candidate, existing []Booking, excludeID string) []Booking {
	return overlapping(cand, existing, excludeID, false)
}

func overlapping(cand Candidate, existing []Booking, excludeID string, firstOnly bool) []Booking {
	if cand.DurationMinutes <= 0 {
		return nil
	}
	candStart, err := MinuteOfDay(cand.StartTime)
	if err != nil {
		return nil
	}
	candEnd := candStart + cand.DurationMinutes

	var hits []Booking
	for _, b := range existing {
		if b.Date != cand.Date || b.Status == "cancelled" {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		otherStart, err := MinuteOfDay(b.StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := MinuteOfDay(b.EndTime)
		if err != nil {
			continue
		}
		if candStart < otherEnd && candEnd > otherStart {
			hits = append(hits, b)
			if firstOnly {
				return hits
			}
		}
	}
	return hits
}

// EndTime computes the HH:MM end label for a start time plus total duration.
func EndTime(start string, durationMinutes int) (string, error) {
	startMin, err := MinuteOfDay(start)
	if err != nil {
		return "", err
	}
	return formatMinute(startMin + durationMinutes), nil
}
