package storage

import (
	"context"

	"github.com/barberflow/barberflow/libs/db"
	"github.com/barberflow/barberflow/services/api/internal/model"
	"github.com/jackc/pgx/v5"
)

type ServiceRepository struct {
	pool *db.Pool
}

func NewServiceRepository(pool *db.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

func (r *ServiceRepository) Create(ctx context.Context, s model.Service) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO services (name, duration_minutes, price, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, s.Name, s.DurationMinutes, s.Price, s.IsActive).Scan(&id)
	return id, err
}

func (r *ServiceRepository) Get(ctx context.Context, id string) (model.Service, error) {
	var s model.Service
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, duration_minutes, price, is_active
		FROM services
		WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.DurationMinutes, &s.Price, &s.IsActive)
	if err != nil {
		return model.Service{}, err
	}
	return s, nil
}

// GetMany resolves catalog rows for snapshot building. Missing ids are simply
// absent from the result; callers check the count.
func (r *ServiceRepository) GetMany(ctx context.Context, ids []string) ([]model.Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, duration_minutes, price, is_active
		FROM services
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectServices(rows)
}

func (r *ServiceRepository) List(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	query := `
		SELECT id, name, duration_minutes, price, is_active
		FROM services
		ORDER BY name ASC
	`
	if activeOnly {
		query = `
		SELECT id, name, duration_minutes, price, is_active
		FROM services
		WHERE is_active
		ORDER BY name ASC
	`
	}
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectServices(rows)
}

// Update edits the live catalog row. Appointment snapshots are untouched;
// price changes never reach historical bookings.
func (r *ServiceRepository) Update(ctx context.Context, s model.Service) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE services
		SET name = $2, duration_minutes = $3, price = $4, is_active = $5
		WHERE id = $1
	`, s.ID, s.Name, s.DurationMinutes, s.Price, s.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func collectServices(rows pgx.Rows) ([]model.Service, error) {
	var services []model.Service
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.DurationMinutes, &s.Price, &s.IsActive); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return services, nil
}
