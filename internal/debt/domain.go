package debt

import "time"

// Status enumerates settlement states. PAID is terminal.
type Status string

const (
	StatusUnpaid Status = "UNPAID"
	StatusPaid   Status = "PAID"
)

// Debt is money the business owes a counterparty.
type Debt struct {
	ID           int64
	Counterparty string
	Amount       float64
	BorrowedAt   time.Time
	DueAt        time.Time
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DebtInput carries create fields.
type DebtInput struct {
	Counterparty string
	Amount       float64
	BorrowedAt   time.Time
	DueAt        time.Time
}

// Overdue reports whether the debt is unpaid and past due at the given time.
func Overdue(status Status, dueAt, now time.Time) bool {
	return status == StatusUnpaid && dueAt.Before(now)
}
