// Package lifecycle applies appointment status transitions and their
// timestamp side effects. Every status is reachable from every other; the
// shop uses backward moves (completed -> scheduled) to correct mistakes.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/barberflow/barberflow/services/api/internal/model"
)

var ErrUnknownStatus = errors.New("unknown appointment status")

// Apply moves appt to newStatus, stamping or clearing the terminal-state
// fields. Re-applying the current status is a no-op so timestamps are never
// re-stamped. reason is only meaningful when cancelling and is optional.
func Apply(appt *model.Appointment, newStatus, reason string, now time.Time) error {
	if !model.ValidStatus(newStatus) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, newStatus)
	}
	if appt.Status == newStatus {
		return nil
	}

	appt.Status = newStatus
	switch newStatus {
	case model.StatusCancelled:
		t := now
		appt.CancelledAt = &t
		appt.CancelReason = reason
		appt.CompletedAt = nil
	case model.StatusCompleted:
		t := now
		appt.CompletedAt = &t
		appt.CancelledAt = nil
		appt.CancelReason = ""
	case model.StatusScheduled:
		appt.CancelledAt = nil
		appt.CancelReason = ""
		appt.CompletedAt = nil
	case model.StatusConfirmed:
		// Status value only; no timestamps involved.
	}
	return nil
}
