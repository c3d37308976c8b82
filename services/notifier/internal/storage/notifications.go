package storage

import (
	"context"
	"encoding/json"

	"github.com/barberflow/barberflow/libs/db"
)

// Delivery is one webhook forwarding attempt, kept for the audit trail.
type Delivery struct {
	AppointmentID string
	EventType     string
	Recipient     string
	Payload       map[string]any
	Status        string // sent | failed
	ErrorReason   string
}

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, d Delivery) error {
	payload, err := json.Marshal(d.Payload)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO webhook_deliveries (appointment_id, event_type, recipient, payload, status, error_reason)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
	`, d.AppointmentID, d.EventType, d.Recipient, payload, d.Status, d.ErrorReason)
	return err
}

// NotifySettings is the slice of business_settings the notifier cares about.
type NotifySettings struct {
	ShopName             string
	NotifyOnBooking      bool
	NotifyOnCancellation bool
	WebhookURL           string
}

// LoadNotifySettings reads the singleton settings row on every event, so
// toggling a notification flag takes effect without a restart.
func (r *Repository) LoadNotifySettings(ctx context.Context) (NotifySettings, error) {
	var s NotifySettings
	err := r.pool.QueryRow(ctx, `
		SELECT shop_name, notify_on_booking, notify_on_cancellation, COALESCE(webhook_url, '')
		FROM business_settings
		WHERE id = 1
	`).Scan(&s.ShopName, &s.NotifyOnBooking, &s.NotifyOnCancellation, &s.WebhookURL)
	if err != nil {
		return NotifySettings{}, err
	}
	return s, nil
}
