package lifecycle

import (
	"testing"
	"time"

	"github.com/barberflow/barberflow/services/api/internal/model"
)

func TestApply_CancelStampsAndClearsCompleted(t *testing.T) {
	done := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	appt := &model.Appointment{Status: model.StatusCompleted, CompletedAt: &done}

	if err := Apply(appt, model.StatusCancelled, "client no-show", now); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if appt.Status != model.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", appt.Status)
	}
	if appt.CancelledAt == nil || !appt.CancelledAt.Equal(now) {
		t.Fatalf("cancelledAt not stamped: %v", appt.CancelledAt)
	}
	if appt.CancelReason != "client no-show" {
		t.Fatalf("reason not kept: %q", appt.CancelReason)
	}
	if appt.CompletedAt != nil {
		t.Fatal("completedAt must be cleared on cancellation")
	}
}

func TestApply_CompleteClearsCancellation(t *testing.T) {
	cancelled := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	appt := &model.Appointment{
		Status:       model.StatusCancelled,
		CancelledAt:  &cancelled,
		CancelReason: "rain",
	}

	if err := Apply(appt, model.StatusCompleted, "", now); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if appt.CompletedAt == nil || !appt.CompletedAt.Equal(now) {
		t.Fatalf("completedAt not stamped: %v", appt.CompletedAt)
	}
	if appt.CancelledAt != nil || appt.CancelReason != "" {
		t.Fatal("cancellation fields must be cleared on completion")
	}
}

func TestApply_ResetClearsEverything(t *testing.T) {
	stamp := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	appt := &model.Appointment{
		Status:       model.StatusCancelled,
		CancelledAt:  &stamp,
		CancelReason: "mistake",
	}

	if err := Apply(appt, model.StatusScheduled, "", time.Now()); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if appt.CancelledAt != nil || appt.CancelReason != "" || appt.CompletedAt != nil {
		t.Fatalf("terminal fields must all clear on reset: %+v", appt)
	}
}

func TestApply_Idempotent(t *testing.T) {
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	appt := &model.Appointment{Status: model.StatusCompleted, CompletedAt: &first}

	later := first.Add(2 * time.Hour)
	if err := Apply(appt, model.StatusCompleted, "", later); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !appt.CompletedAt.Equal(first) {
		t.Fatal("re-applying completed must not re-stamp completedAt")
	}
}

func TestApply_ConfirmHasNoTimestampSideEffect(t *testing.T) {
	appt := &model.Appointment{Status: model.StatusScheduled}
	if err := Apply(appt, model.StatusConfirmed, "", time.Now()); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if appt.Status != model.StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", appt.Status)
	}
	if appt.CancelledAt != nil || appt.CompletedAt != nil || appt.CancelReason != "" {
		t.Fatal("confirm must not touch timestamps")
	}
}

func TestApply_RejectsUnknownStatus(t *testing.T) {
	appt := &model.Appointment{Status: model.StatusScheduled}
	if err := Apply(appt, "archived", "", time.Now()); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if appt.Status != model.StatusScheduled {
		t.Fatal("status must be unchanged after rejected transition")
	}
}
