package stock

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for stock materials.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateMaterial inserts a stock row.
func (r *Repository) CreateMaterial(ctx context.Context, input MaterialInput) (*Material, error) {
	query := `
		INSERT INTO stock_materials (name, quantity, unit, updated_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, updated_at`

	var m Material
	err := r.pool.QueryRow(ctx, query, input.Name, input.Quantity, input.Unit).
		Scan(&m.ID, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}

	m.Name = input.Name
	m.Quantity = input.Quantity
	m.Unit = input.Unit
	return &m, nil
}

// GetMaterialByName retrieves a stock row by its unique material name.
func (r *Repository) GetMaterialByName(ctx context.Context, name string) (*Material, error) {
	query := `
		SELECT id, name, quantity, unit, updated_at
		FROM stock_materials WHERE name = $1`

	var m Material
	err := r.pool.QueryRow(ctx, query, name).
		Scan(&m.ID, &m.Name, &m.Quantity, &m.Unit, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMaterialNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMaterials returns all stock rows ordered by name.
func (r *Repository) ListMaterials(ctx context.Context) ([]Material, error) {
	query := `
		SELECT id, name, quantity, unit, updated_at
		FROM stock_materials ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Quantity, &m.Unit, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpdateMaterial updates a stock row by ID.
func (r *Repository) UpdateMaterial(ctx context.Context, id int64, input MaterialInput) (*Material, error) {
	query := `
		UPDATE stock_materials
		SET name = $2, quantity = $3, unit = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, quantity, unit, updated_at`

	var m Material
	err := r.pool.QueryRow(ctx, query, id, input.Name, input.Quantity, input.Unit).
		Scan(&m.ID, &m.Name, &m.Quantity, &m.Unit, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMaterialNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
