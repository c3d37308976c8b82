package handlers

import (
	"errors"
	"testing"

	"github.com/barberflow/barberflow/services/api/internal/model"
	"github.com/barberflow/barberflow/services/api/internal/schedule"
)

func TestBuildSnapshotsKeepsPriorPricesOnEdit(t *testing.T) {
	// s1 was booked at 50; the catalog has since raised it to 80.
	prior := []model.ServiceSnapshot{
		{ServiceID: "s1", Name: "Corte", DurationMinutes: 30, Price: 50},
	}
	catalog := map[string]model.Service{
		"s2": {ID: "s2", Name: "Barba", DurationMinutes: 20, Price: 35, IsActive: true},
	}

	snaps, duration, err := buildSnapshots(prior, []string{"s1", "s2"}, catalog)
	if err != nil {
		t.Fatalf("buildSnapshots failed: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].Price != 50 {
		t.Fatalf("retained service must keep its booking-time price 50, got %v", snaps[0].Price)
	}
	if snaps[1].Price != 35 || snaps[1].Name != "Barba" {
		t.Fatalf("new service must be priced from the catalog: %+v", snaps[1])
	}
	if duration != 50 {
		t.Fatalf("expected total duration 50, got %d", duration)
	}

	end, err := schedule.EndTime("10:00", duration)
	if err != nil {
		t.Fatalf("EndTime failed: %v", err)
	}
	if end != "10:50" {
		t.Fatalf("edit must recompute end time to 10:50, got %s", end)
	}
}

func TestBuildSnapshotsRejectsUnknownService(t *testing.T) {
	catalog := map[string]model.Service{
		"s1": {ID: "s1", Name: "Corte", DurationMinutes: 30, Price: 50, IsActive: true},
	}
	if _, _, err := buildSnapshots(nil, []string{"s1", "ghost"}, catalog); !errors.Is(err, errUnknownService) {
		t.Fatalf("expected errUnknownService for missing id, got %v", err)
	}
}

func TestBuildSnapshotsRejectsInactiveService(t *testing.T) {
	catalog := map[string]model.Service{
		"s1": {ID: "s1", Name: "Luzes", DurationMinutes: 60, Price: 120, IsActive: false},
	}
	if _, _, err := buildSnapshots(nil, []string{"s1"}, catalog); !errors.Is(err, errUnknownService) {
		t.Fatalf("expected errUnknownService for deactivated service, got %v", err)
	}
}

func TestBuildSnapshotsRetainedServiceSurvivesDeactivation(t *testing.T) {
	// A service already on the appointment stays editable even after the
	// catalog row was deactivated; only new additions check the flag.
	prior := []model.ServiceSnapshot{
		{ServiceID: "s1", Name: "Luzes", DurationMinutes: 60, Price: 120},
	}
	snaps, duration, err := buildSnapshots(prior, []string{"s1"}, map[string]model.Service{})
	if err != nil {
		t.Fatalf("buildSnapshots failed: %v", err)
	}
	if len(snaps) != 1 || snaps[0].Price != 120 || duration != 60 {
		t.Fatalf("retained snapshot must pass through unchanged: %+v", snaps)
	}
}

func TestBuildSnapshotsRejectsEmptyDuration(t *testing.T) {
	if _, _, err := buildSnapshots(nil, nil, map[string]model.Service{}); !errors.Is(err, errUnknownService) {
		t.Fatalf("expected error for empty service list, got %v", err)
	}
}
