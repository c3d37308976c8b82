package storage

import (
	"context"
	"time"

	"github.com/barberflow/barberflow/libs/db"
	"github.com/barberflow/barberflow/services/api/internal/model"
	"github.com/jackc/pgx/v5"
)

type AppointmentRepository struct {
	pool *db.Pool
}

func NewAppointmentRepository(pool *db.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

const apptColumns = `
	id, client_id, COALESCE(client_name, ''), COALESCE(client_phone, ''),
	to_char(date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	status, COALESCE(notes, ''), cancelled_at, COALESCE(cancel_reason, ''), completed_at, created_at`

func scanAppointment(row pgx.Row) (model.Appointment, error) {
	var a model.Appointment
	var cancelledAt, completedAt *time.Time
	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.ClientName,
		&a.ClientPhone,
		&a.Date,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.Notes,
		&cancelledAt,
		&a.CancelReason,
		&completedAt,
		&a.CreatedAt,
	)
	if err != nil {
		return model.Appointment{}, err
	}
	a.CancelledAt = cancelledAt
	a.CompletedAt = completedAt
	return a, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, tx pgx.Tx, a *model.Appointment) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO appointments
			(client_id, client_name, client_phone, date, start_time, end_time, status, notes)
		VALUES ($1, $2, $3, $4::date, $5::time, $6::time, $7, $8)
		RETURNING id
	`, a.ClientID, a.ClientName, a.ClientPhone, a.Date, a.StartTime, a.EndTime, a.Status, a.Notes).Scan(&id)
	if err != nil {
		return "", err
	}
	if err := r.ReplaceServices(ctx, tx, id, a.Services); err != nil {
		return "", err
	}
	return id, nil
}

// ReplaceServices swaps the appointment's service snapshots inside the
// caller's transaction, so an edit is atomic: either the new list lands
// completely or the old one survives.
func (r *AppointmentRepository) ReplaceServices(ctx context.Context, tx pgx.Tx, appointmentID string, snaps []model.ServiceSnapshot) error {
	if _, err := tx.Exec(ctx, `
		DELETE FROM appointment_services WHERE appointment_id = $1
	`, appointmentID); err != nil {
		return err
	}
	for _, s := range snaps {
		if _, err := tx.Exec(ctx, `
			INSERT INTO appointment_services (appointment_id, service_id, name, duration_minutes, price_at_time)
			VALUES ($1, $2, $3, $4, $5)
		`, appointmentID, s.ServiceID, s.Name, s.DurationMinutes, s.Price); err != nil {
			return err
		}
	}
	return nil
}

func (r *AppointmentRepository) Get(ctx context.Context, id string) (model.Appointment, error) {
	a, err := scanAppointment(r.pool.QueryRow(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		WHERE id = $1
	`, id))
	if err != nil {
		return model.Appointment{}, err
	}
	snaps, err := r.loadSnapshots(ctx, []string{a.ID})
	if err != nil {
		return model.Appointment{}, err
	}
	a.Services = snaps[a.ID]
	return a, nil
}

func (r *AppointmentRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (model.Appointment, error) {
	a, err := scanAppointment(tx.QueryRow(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		WHERE id = $1
		FOR UPDATE
	`, id))
	if err != nil {
		return model.Appointment{}, err
	}

	rows, err := tx.Query(ctx, `
		SELECT service_id, name, duration_minutes, price_at_time
		FROM appointment_services
		WHERE appointment_id = $1
	`, id)
	if err != nil {
		return model.Appointment{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var s model.ServiceSnapshot
		if err := rows.Scan(&s.ServiceID, &s.Name, &s.DurationMinutes, &s.Price); err != nil {
			return model.Appointment{}, err
		}
		a.Services = append(a.Services, s)
	}
	if rows.Err() != nil {
		return model.Appointment{}, rows.Err()
	}
	return a, nil
}

// LockDay locks and returns the day's appointments so an in-transaction
// conflict check cannot race a concurrent booking on the same date.
func (r *AppointmentRepository) LockDay(ctx context.Context, tx pgx.Tx, date string) ([]model.Appointment, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		WHERE date = $1::date
		ORDER BY start_time ASC
		FOR UPDATE
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *AppointmentRepository) ListByDate(ctx context.Context, date string) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		WHERE date = $1::date
		ORDER BY start_time ASC
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appts, err := collectAppointments(rows)
	if err != nil {
		return nil, err
	}
	return r.attachSnapshots(ctx, appts)
}

func (r *AppointmentRepository) ListAll(ctx context.Context) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptColumns+`
		FROM appointments
		ORDER BY date DESC, start_time ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appts, err := collectAppointments(rows)
	if err != nil {
		return nil, err
	}
	return r.attachSnapshots(ctx, appts)
}

func (r *AppointmentRepository) Update(ctx context.Context, tx pgx.Tx, a *model.Appointment) error {
	_, err := tx.Exec(ctx, `
		UPDATE appointments
		SET client_id = $2,
			client_name = $3,
			client_phone = $4,
			date = $5::date,
			start_time = $6::time,
			end_time = $7::time,
			notes = $8
		WHERE id = $1
	`, a.ID, a.ClientID, a.ClientName, a.ClientPhone, a.Date, a.StartTime, a.EndTime, a.Notes)
	return err
}

// UpdateStatus persists the lifecycle fields exactly as computed by the
// lifecycle package, including clears (NULLs).
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, a *model.Appointment) error {
	var cancelReason any
	if a.CancelReason != "" {
		cancelReason = a.CancelReason
	}
	_, err := tx.Exec(ctx, `
		UPDATE appointments
		SET status = $2,
			cancelled_at = $3,
			cancel_reason = $4,
			completed_at = $5
		WHERE id = $1
	`, a.ID, a.Status, a.CancelledAt, cancelReason, a.CompletedAt)
	return err
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func collectAppointments(rows pgx.Rows) ([]model.Appointment, error) {
	var appts []model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}

func (r *AppointmentRepository) attachSnapshots(ctx context.Context, appts []model.Appointment) ([]model.Appointment, error) {
	if len(appts) == 0 {
		return appts, nil
	}
	ids := make([]string, 0, len(appts))
	for _, a := range appts {
		ids = append(ids, a.ID)
	}
	snaps, err := r.loadSnapshots(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range appts {
		appts[i].Services = snaps[appts[i].ID]
	}
	return appts, nil
}

func (r *AppointmentRepository) loadSnapshots(ctx context.Context, appointmentIDs []string) (map[string][]model.ServiceSnapshot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT appointment_id, service_id, name, duration_minutes, price_at_time
		FROM appointment_services
		WHERE appointment_id = ANY($1)
	`, appointmentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]model.ServiceSnapshot, len(appointmentIDs))
	for rows.Next() {
		var apptID string
		var s model.ServiceSnapshot
		if err := rows.Scan(&apptID, &s.ServiceID, &s.Name, &s.DurationMinutes, &s.Price); err != nil {
			return nil, err
		}
		out[apptID] = append(out[apptID], s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
