package expense

import (
	"time"

	"github.com/google/uuid"
)

// Categories is the fixed suggestion set offered by expense forms. Category
// remains free-form in storage; generated expenses use CategoryRawMaterial
// and CategoryOther.
var Categories = []string{
	CategoryRawMaterial,
	"Gas",
	"Oil",
	"Salary",
	"Rent",
	"Electricity",
	"Water",
	"Transport",
	CategoryOther,
}

const (
	// CategoryRawMaterial marks expenses generated by material purchases.
	CategoryRawMaterial = "Raw Material"
	// CategoryOther marks miscellaneous expenses, including debt settlements.
	CategoryOther = "Other"
)

// Expense is a single cash outflow. SettlementRef links generated expenses
// back to the purchase or debt that produced them.
type Expense struct {
	ID            int64
	OccurredAt    time.Time
	Category      string
	Description   string
	Amount        float64
	SettlementRef *uuid.UUID
}

// ExpenseInput carries create fields.
type ExpenseInput struct {
	Category    string
	Description string
	Amount      float64
}
