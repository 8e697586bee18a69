package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for products.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateProduct inserts a product.
func (r *Repository) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	query := `
		INSERT INTO products (name, sell_price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	var p Product
	err := r.pool.QueryRow(ctx, query, input.Name, input.SellPrice, input.Stock).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.Name = input.Name
	p.SellPrice = input.SellPrice
	p.Stock = input.Stock
	return &p, nil
}

// GetProduct retrieves a product by ID.
func (r *Repository) GetProduct(ctx context.Context, id int64) (*Product, error) {
	query := `
		SELECT id, name, sell_price, stock, created_at, updated_at
		FROM products WHERE id = $1`

	var p Product
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.SellPrice, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts returns all products ordered by name.
func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	query := `
		SELECT id, name, sell_price, stock, created_at, updated_at
		FROM products ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SellPrice, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateProduct updates a product's fields.
func (r *Repository) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*Product, error) {
	query := `
		UPDATE products
		SET name = $2, sell_price = $3, stock = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, sell_price, stock, created_at, updated_at`

	var p Product
	err := r.pool.QueryRow(ctx, query, id, input.Name, input.SellPrice, input.Stock).
		Scan(&p.ID, &p.Name, &p.SellPrice, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct removes a product. Historical sales keep their captured
// price; the foreign key nulls the product reference.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}
