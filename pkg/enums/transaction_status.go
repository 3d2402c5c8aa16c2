package enums

// Transaction statuses are stored as free-form strings: the documented sets
// below are what clients send today, but unknown values are accepted and only
// the designated effect statuses gate ledger mutations.
const (
	// Receipt statuses.
	StatusOrderPlaced = "ORDER_PLACED"
	StatusInTransit   = "IN_TRANSIT"
	StatusCompleted   = "COMPLETED"

	// Delivery statuses.
	StatusOrderReceived = "ORDER_RECEIVED"
	StatusShipping      = "SHIPPING"
	StatusShipped       = "SHIPPED"

	// Transfers and adjustments apply immediately and carry a terminal status.
	StatusDone = "DONE"
)

// DefaultStatus returns the creation-time default for a transaction type.
func DefaultStatus(t TransactionType) string {
	switch t {
	case TransactionTypeReceipt:
		return StatusOrderPlaced
	case TransactionTypeDelivery:
		return StatusOrderReceived
	default:
		return StatusDone
	}
}
