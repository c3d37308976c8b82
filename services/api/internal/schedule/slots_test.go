package schedule

import "testing"

func TestSlots_Basic(t *testing.T) {
	slots := Slots("08:00", "09:00", 10)
	want := []string{"08:00", "08:10", "08:20", "08:30", "08:40", "08:50"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], slots[i])
		}
	}
}

func TestSlots_EndExclusive(t *testing.T) {
	slots := Slots("08:00", "20:00", 10)
	if len(slots) != 72 {
		t.Fatalf("expected 72 slots for 12h at 10min, got %d", len(slots))
	}
	if slots[len(slots)-1] != "19:50" {
		t.Fatalf("last slot must be 19:50, got %s", slots[len(slots)-1])
	}
}

func TestSlots_InvalidInputs(t *testing.T) {
	if s := Slots("09:00", "08:00", 10); s != nil {
		t.Fatalf("inverted window must yield nil, got %v", s)
	}
	if s := Slots("08:00", "09:00", 0); s != nil {
		t.Fatalf("zero step must yield nil, got %v", s)
	}
	if s := Slots("8am", "09:00", 10); s != nil {
		t.Fatalf("malformed open time must yield nil, got %v", s)
	}
}

func TestFreeStarts(t *testing.T) {
	existing := []Booking{
		{ID: "a1", Date: "2026-03-10", StartTime: "09:00", EndTime: "10:30", Status: "scheduled"},
	}

	free := FreeStarts("08:00", "20:00", 10, 20, "2026-03-10", existing)

	found := map[string]bool{}
	for _, f := range free {
		found[f] = true
	}
	// 10:00 would run 10:00-10:20, inside the existing booking.
	if found["10:00"] {
		t.Fatal("10:00 must not be free while 09:00-10:30 is booked")
	}
	// 10:30 runs 10:30-10:50, no overlap.
	if !found["10:30"] {
		t.Fatal("10:30 must be free")
	}
	// 08:40 + 20min ends exactly at the 09:00 start; half-open, so free.
	if !found["08:40"] {
		t.Fatal("08:40 must be free (ends exactly at booked start)")
	}
	// Last viable start for a 20min service before 20:00 close.
	if !found["19:40"] {
		t.Fatal("19:40 must be free")
	}
	if found["19:50"] {
		t.Fatal("19:50 would end past closing and must not be offered")
	}
}
