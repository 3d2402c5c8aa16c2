package operations

import "github.com/stockmasterhq/stockmaster-backend/pkg/enums"

// effectStatus is the single status value at which a transaction type's
// ledger effect applies. Receipts hit the ledger at COMPLETED, deliveries at
// SHIPPED. Transfers and adjustments apply unconditionally at creation, so a
// later status change never recomputes the ledger for them.
var effectStatus = map[enums.TransactionType]string{
	enums.TransactionTypeReceipt:  enums.StatusCompleted,
	enums.TransactionTypeDelivery: enums.StatusShipped,
}

// effectApplied reports whether a transaction in the given status has its
// ledger effect applied.
func effectApplied(txType enums.TransactionType, status string) bool {
	effect, ok := effectStatus[txType]
	if !ok {
		return false
	}
	return status == effect
}

// transition classifies a status change for a transaction type.
type transition int

const (
	// transitionNone: effect state unchanged, no ledger delta.
	transitionNone transition = iota
	// transitionApply: effect newly applied, the transaction quantity hits the ledger.
	transitionApply
	// transitionRevert: effect withdrawn, the prior ledger delta is reversed.
	transitionRevert
)

// classifyTransition maps (old status, new status) onto the ledger action for
// the type. The four-way matrix is exhaustive: applied/unapplied on each side.
func classifyTransition(txType enums.TransactionType, oldStatus, newStatus string) transition {
	before := effectApplied(txType, oldStatus)
	after := effectApplied(txType, newStatus)

	switch {
	case !before && after:
		return transitionApply
	case before && !after:
		return transitionRevert
	default:
		return transitionNone
	}
}
