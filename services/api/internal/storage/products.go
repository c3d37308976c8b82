package storage

import (
	"context"

	"github.com/barberflow/barberflow/libs/db"
	"github.com/barberflow/barberflow/services/api/internal/model"
	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	pool *db.Pool
}

func NewProductRepository(pool *db.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p model.Product) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, category, price, cost, stock, min_stock, sold_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.Name, p.Category, p.Price, p.Cost, p.Stock, p.MinStock, p.SoldCount).Scan(&id)
	return id, err
}

func (r *ProductRepository) Get(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, category, price, cost, stock, min_stock, sold_count
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Cost, &p.Stock, &p.MinStock, &p.SoldCount)
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, category, price, cost, stock, min_stock, sold_count
		FROM products
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Cost, &p.Stock, &p.MinStock, &p.SoldCount); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, p model.Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, category = $3, price = $4, cost = $5, stock = $6, min_stock = $7, sold_count = $8
		WHERE id = $1
	`, p.ID, p.Name, p.Category, p.Price, p.Cost, p.Stock, p.MinStock, p.SoldCount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Sell decrements stock (clamped at zero) and bumps sold_count by the full
// quantity in one statement, so two concurrent sales cannot drive stock
// negative.
func (r *ProductRepository) Sell(ctx context.Context, tx pgx.Tx, id string, quantity int) (model.Product, error) {
	var p model.Product
	err := tx.QueryRow(ctx, `
		UPDATE products
		SET stock = GREATEST(stock - $2, 0),
			sold_count = sold_count + $2
		WHERE id = $1
		RETURNING id, name, category, price, cost, stock, min_stock, sold_count
	`, id, quantity).Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Cost, &p.Stock, &p.MinStock, &p.SoldCount)
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
