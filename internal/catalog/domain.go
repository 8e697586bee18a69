package catalog

import "time"

// Product is a finished good offered for sale. Product stock is tracked
// independently of raw-material stock.
type Product struct {
	ID        int64
	Name      string
	SellPrice float64
	Stock     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductInput carries create/update fields.
type ProductInput struct {
	Name      string
	SellPrice float64
	Stock     float64
}
