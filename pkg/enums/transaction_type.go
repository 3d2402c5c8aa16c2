package enums

import "fmt"

// TransactionType classifies a stock transaction log entry.
type TransactionType string

const (
	TransactionTypeReceipt     TransactionType = "receipt"
	TransactionTypeDelivery    TransactionType = "delivery"
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"
	TransactionTypeAdjustment  TransactionType = "adjustment"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeReceipt,
	TransactionTypeDelivery,
	TransactionTypeTransferIn,
	TransactionTypeTransferOut,
	TransactionTypeAdjustment,
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionType.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw input into a TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
