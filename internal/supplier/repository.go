package supplier

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for suppliers.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CreateSupplier(ctx context.Context, input SupplierInput) (*Supplier, error) {
	query := `
		INSERT INTO suppliers (name, contact, address, materials, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	var s Supplier
	err := r.pool.QueryRow(ctx, query, input.Name, input.Contact, input.Address, input.Materials).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	s.Name = input.Name
	s.Contact = input.Contact
	s.Address = input.Address
	s.Materials = input.Materials
	return &s, nil
}

func (r *Repository) GetSupplier(ctx context.Context, id int64) (*Supplier, error) {
	query := `
		SELECT id, name, contact, address, materials, created_at, updated_at
		FROM suppliers WHERE id = $1`

	var s Supplier
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.Name, &s.Contact, &s.Address, &s.Materials, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSupplierNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	query := `
		SELECT id, name, contact, address, materials, created_at, updated_at
		FROM suppliers ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Address, &s.Materials, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateSupplier(ctx context.Context, id int64, input SupplierInput) (*Supplier, error) {
	query := `
		UPDATE suppliers
		SET name = $2, contact = $3, address = $4, materials = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, contact, address, materials, created_at, updated_at`

	var s Supplier
	err := r.pool.QueryRow(ctx, query, id, input.Name, input.Contact, input.Address, input.Materials).
		Scan(&s.ID, &s.Name, &s.Contact, &s.Address, &s.Materials, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSupplierNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) DeleteSupplier(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSupplierNotFound
	}
	return nil
}
