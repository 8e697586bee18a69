package receivable

import (
	"time"

	"github.com/google/uuid"
)

// Status enumerates settlement states. PAID is terminal; there is no
// un-settle operation.
type Status string

const (
	StatusUnpaid Status = "UNPAID"
	StatusPaid   Status = "PAID"
)

// Receivable is money owed to the business by a customer.
type Receivable struct {
	ID           int64
	Customer     string
	Amount       float64
	TransactedAt time.Time
	DueAt        time.Time
	Status       Status
	SaleRef      *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReceivableInput carries create fields.
type ReceivableInput struct {
	Customer     string
	Amount       float64
	TransactedAt time.Time
	DueAt        time.Time
}

// Overdue reports whether the receivable is unpaid and past due at the given
// time. Paid receivables are never overdue.
func Overdue(status Status, dueAt, now time.Time) bool {
	return status == StatusUnpaid && dueAt.Before(now)
}
