package supplier

import "time"

// Supplier is a raw-material vendor. Materials is the comma-separated list of
// material names the supplier provides.
type Supplier struct {
	ID        int64
	Name      string
	Contact   string
	Address   string
	Materials string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SupplierInput carries create/update fields.
type SupplierInput struct {
	Name      string
	Contact   string
	Address   string
	Materials string
}
