package procurement

import "time"

// Purchase is one raw-material purchase from a supplier. Total is computed by
// the database from quantity and unit price.
type Purchase struct {
	ID           int64
	OccurredAt   time.Time
	SupplierID   int64
	SupplierName string
	MaterialName string
	Quantity     float64
	UnitPrice    float64
	Total        float64
}

// RecordPurchaseInput carries the fields of a purchase being recorded.
type RecordPurchaseInput struct {
	SupplierID     int64
	MaterialName   string
	Quantity       float64
	UnitPrice      float64
	IdempotencyKey string
}

// purchaseRow is what the repository inserts.
type purchaseRow struct {
	SupplierID   int64
	MaterialName string
	Quantity     float64
	UnitPrice    float64
}
