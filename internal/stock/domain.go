package stock

import "time"

// Status classifies a material's quantity on hand.
type Status string

const (
	StatusOut  Status = "Out"
	StatusLow  Status = "Low"
	StatusSafe Status = "Safe"
)

// LowStockThreshold bounds the Low band and drives the dashboard low-stock
// widget. Fixed, not configurable.
const LowStockThreshold = 10

// Units enumerates the accepted measurement units.
var Units = []string{"kg", "liter", "pcs", "pack", "gram"}

// DefaultUnit is assigned when a purchase creates a stock row for a material
// that has never been registered.
const DefaultUnit = "pcs"

// Material is the quantity on hand of a raw material, tracked by name and
// independent of finished-product inventory.
type Material struct {
	ID        int64
	Name      string
	Quantity  float64
	Unit      string
	UpdatedAt time.Time
}

// MaterialInput carries create/update fields.
type MaterialInput struct {
	Name     string
	Quantity float64
	Unit     string
}

// StatusOf returns the stock status for a quantity: zero is Out, below the
// threshold is Low, at or above it is Safe.
func StatusOf(quantity float64) Status {
	switch {
	case quantity <= 0:
		return StatusOut
	case quantity < LowStockThreshold:
		return StatusLow
	default:
		return StatusSafe
	}
}

// ValidUnit reports whether unit is one of the accepted units.
func ValidUnit(unit string) bool {
	for _, u := range Units {
		if u == unit {
			return true
		}
	}
	return false
}
