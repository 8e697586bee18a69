package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// Settlement refs are deterministic UUIDs derived from the primary record so
// that the secondary row of a business transaction (the settlement expense,
// the settlement sale, the purchase expense) can be matched back to its
// origin. The reconciliation sweep relies on this linkage to detect orphans.

// DebtSettlementRef returns the ref carried by a debt settlement expense.
func DebtSettlementRef(debtID int64) uuid.UUID {
	return uuid.NewSHA1(uuid.Nil, []byte(fmt.Sprintf("DEBT:%d", debtID)))
}

// ReceivableSettlementRef returns the ref carried by a receivable settlement sale.
func ReceivableSettlementRef(receivableID int64) uuid.UUID {
	return uuid.NewSHA1(uuid.Nil, []byte(fmt.Sprintf("RECEIVABLE:%d", receivableID)))
}

// PurchaseExpenseRef returns the ref carried by a material purchase expense.
func PurchaseExpenseRef(purchaseID int64) uuid.UUID {
	return uuid.NewSHA1(uuid.Nil, []byte(fmt.Sprintf("PURCHASE:%d", purchaseID)))
}

// SaleReceivableRef returns the ref carried by a receivable created from a credit sale.
func SaleReceivableRef(saleID int64) uuid.UUID {
	return uuid.NewSHA1(uuid.Nil, []byte(fmt.Sprintf("SALE:%d", saleID)))
}
