package sales

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod enumerates how a sale was paid.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "CASH"
	PaymentNonCash    PaymentMethod = "NON_CASH"
	PaymentReceivable PaymentMethod = "RECEIVABLE"
)

// receivableTermDays is the default credit term for sales on receivable.
const receivableTermDays = 7

// Transaction is one sales entry. UnitPrice is captured from the product at
// record time; Total is computed by the database. ProductID is nil for
// product-less entries such as receivable settlements.
type Transaction struct {
	ID            int64
	OccurredAt    time.Time
	ProductID     *int64
	ProductName   string
	Quantity      float64
	UnitPrice     float64
	Total         float64
	PaymentMethod PaymentMethod
	Note          string
	ReceivableRef *uuid.UUID
}

// RecordSaleInput carries the fields of a sale being recorded.
type RecordSaleInput struct {
	ProductID      int64
	Quantity       float64
	PaymentMethod  PaymentMethod
	Note           string
	CustomerName   string
	IdempotencyKey string
}

// saleRow is what the repository inserts once pricing has been captured.
type saleRow struct {
	ProductID     *int64
	Quantity      float64
	UnitPrice     float64
	PaymentMethod PaymentMethod
	Note          string
}

// receivableRow is the credit-sale side effect inserted in the same
// transaction as the sale.
type receivableRow struct {
	Customer     string
	Amount       float64
	TransactedAt time.Time
	DueAt        time.Time
	SaleRef      uuid.UUID
}

// ValidMethod reports whether m is a known payment method.
func ValidMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentNonCash, PaymentReceivable:
		return true
	}
	return false
}
