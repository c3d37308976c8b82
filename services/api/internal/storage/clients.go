package storage

import (
	"context"

	"github.com/barberflow/barberflow/libs/db"
	"github.com/barberflow/barberflow/services/api/internal/model"
	"github.com/jackc/pgx/v5"
)

type ClientRepository struct {
	pool *db.Pool
}

func NewClientRepository(pool *db.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

func (r *ClientRepository) Create(ctx context.Context, c model.Client) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO clients (name, phone, email)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id
	`, c.Name, c.Phone, c.Email).Scan(&id)
	return id, err
}

func (r *ClientRepository) Get(ctx context.Context, id string) (model.Client, error) {
	var c model.Client
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, phone, COALESCE(email, ''), created_at
		FROM clients
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt)
	if err != nil {
		return model.Client{}, err
	}
	return c, nil
}

func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, phone, COALESCE(email, ''), created_at
		FROM clients
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, c model.Client) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients
		SET name = $2, phone = $3, email = NULLIF($4, '')
		WHERE id = $1
	`, c.ID, c.Name, c.Phone, c.Email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the roster row only; historical appointments keep their
// denormalized client name and phone.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
