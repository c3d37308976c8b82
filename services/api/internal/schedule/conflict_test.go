package schedule

import "testing"

func TestHasConflict_Overlap(t *testing.T) {
	existing := []Booking{
		{ID: "a1", Date: "2026-03-10", StartTime: "09:00", EndTime: "10:30", Status: "scheduled"},
	}

	// 10:00 + 20min ends 10:20, inside 09:00-10:30.
	cand := Candidate{Date: "2026-03-10", StartTime: "10:00", DurationMinutes: 20}
	if !HasConflict(cand, existing, "") {
		t.Fatal("expected conflict for 10:00-10:20 against 09:00-10:30")
	}

	// 10:30 + 20min ends 10:50; half-open intervals make back-to-back legal.
	cand = Candidate{Date: "2026-03-10", StartTime: "10:30", DurationMinutes: 20}
	if HasConflict(cand, existing, "") {
		t.Fatal("expected no conflict for booking starting exactly at prior end")
	}
}

func TestHasConflict_IgnoresCancelledAndOtherDates(t *testing.T) {
	existing := []Booking{
		{ID: "a1", Date: "2026-03-10", StartTime: "09:00", EndTime: "10:00", Status: "cancelled"},
		{ID: "a2", Date: "2026-03-11", StartTime: "09:00", EndTime: "10:00", Status: "scheduled"},
	}
	cand := Candidate{Date: "2026-03-10", StartTime: "09:00", DurationMinutes: 60}
	if HasConflict(cand, existing, "") {
		t.Fatal("cancelled and other-date bookings must not block")
	}
}

func TestHasConflict_ExcludesEditedAppointment(t *testing.T) {
	existing := []Booking{
		{ID: "a1", Date: "2026-03-10", StartTime: "09:00", EndTime: "10:00", Status: "confirmed"},
	}
	cand := Candidate{Date: "2026-03-10", StartTime: "09:30", DurationMinutes: 30}
	if HasConflict(cand, existing, "a1") {
		t.Fatal("the appointment being edited must not conflict with itself")
	}
	if !HasConflict(cand, existing, "other") {
		t.Fatal("expected conflict when exclude id does not match")
	}
}

func TestHasConflict_ZeroDuration(t *testing.T) {
	existing := []Booking{
		{ID: "a1", Date: "2026-03-10", StartTime: "09:00", EndTime: "10:00", Status: "scheduled"},
	}
	cand := Candidate{Date: "2026-03-10", StartTime: "09:30", DurationMinutes: 0}
	if HasConflict(cand, existing, "") {
		t.Fatal("zero-duration candidate must not report a conflict")
	}
}

func TestOverlapping_ReturnsAllHits(t *testing.T) {
	existing := []Booking{
		{ID: "a1", Date: "2026-03-10", StartTime: "09:00", EndTime: "09:30", Status: "scheduled"},
		{ID: "a2", Date: "2026-03-10", StartTime: "09:30", EndTime: "10:00", Status: "confirmed"},
		{ID: "a3", Date: "2026-03-10", StartTime: "11:00", EndTime: "11:30", Status: "scheduled"},
	}
	cand := Candidate{Date: "2026-03-10", StartTime: "09:15", DurationMinutes: 60}
	hits := Overlapping(cand, existing, "")
	if len(hits) != 2 {
		t.Fatalf("expected 2 overlapping bookings, got %d", len(hits))
	}
	if hits[0].ID != "a1" || hits[1].ID != "a2" {
		t.Fatalf("unexpected hits: %+v", hits)
	}
}

func TestEndTime(t *testing.T) {
	end, err := EndTime("10:30", 20)
	if err != nil {
		t.Fatalf("EndTime failed: %v", err)
	}
	if end != "10:50" {
		t.Fatalf("expected 10:50, got %s", end)
	}
	if _, err := EndTime("25:99", 10); err == nil {
		t.Fatal("expected error for malformed start time")
	}
}
