package storage

import (
	"context"

	"github.com/barberflow/barberflow/libs/db"
	"github.com/barberflow/barberflow/services/api/internal/model"
)

// SettingsRepository manages the singleton business_settings row. The table
// is keyed by a constant id so upserts always hit the same row.
type SettingsRepository struct {
	pool *db.Pool
}

func NewSettingsRepository(pool *db.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

const settingsRowID = 1

// Get returns the settings row, creating it with shop defaults on first read.
func (r *SettingsRepository) Get(ctx context.Context) (model.Settings, error) {
	var s model.Settings
	err := r.pool.QueryRow(ctx, `
		INSERT INTO business_settings (id) VALUES ($1)
		ON CONFLICT (id) DO UPDATE SET id = business_settings.id
		RETURNING shop_name, to_char(open_time, 'HH24:MI'), to_char(close_time, 'HH24:MI'),
			appointment_duration_minutes, notify_on_booking, notify_on_cancellation,
			COALESCE(webhook_url, '')
	`, settingsRowID).Scan(
		&s.ShopName,
		&s.OpenTime,
		&s.CloseTime,
		&s.AppointmentDuration,
		&s.NotifyOnBooking,
		&s.NotifyOnCancellation,
		&s.WebhookURL,
	)
	if err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

func (r *SettingsRepository) Update(ctx context.Context, s model.Settings) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO business_settings
			(id, shop_name, open_time, close_time, appointment_duration_minutes,
			 notify_on_booking, notify_on_cancellation, webhook_url, updated_at)
		VALUES ($1, $2, $3::time, $4::time, $5, $6, $7, NULLIF($8, ''), now())
		ON CONFLICT (id) DO UPDATE SET
			shop_name = EXCLUDED.shop_name,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			appointment_duration_minutes = EXCLUDED.appointment_duration_minutes,
			notify_on_booking = EXCLUDED.notify_on_booking,
			notify_on_cancellation = EXCLUDED.notify_on_cancellation,
			webhook_url = EXCLUDED.webhook_url,
			updated_at = now()
	`, settingsRowID, s.ShopName, s.OpenTime, s.CloseTime, s.AppointmentDuration,
		s.NotifyOnBooking, s.NotifyOnCancellation, s.WebhookURL)
	return err
}
