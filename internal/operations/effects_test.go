package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
)

func TestEffectApplied(t *testing.T) {
	assert.True(t, effectApplied(enums.TransactionTypeReceipt, enums.StatusCompleted))
	assert.False(t, effectApplied(enums.TransactionTypeReceipt, enums.StatusOrderPlaced))
	assert.False(t, effectApplied(enums.TransactionTypeReceipt, enums.StatusInTransit))

	assert.True(t, effectApplied(enums.TransactionTypeDelivery, enums.StatusShipped))
	assert.False(t, effectApplied(enums.TransactionTypeDelivery, enums.StatusOrderReceived))
	assert.False(t, effectApplied(enums.TransactionTypeDelivery, enums.StatusShipping))

	// Transfers and adjustments have no effect status: the ledger moved at
	// creation and stays put no matter what the status becomes.
	assert.False(t, effectApplied(enums.TransactionTypeTransferIn, enums.StatusDone))
	assert.False(t, effectApplied(enums.TransactionTypeTransferOut, enums.StatusDone))
	assert.False(t, effectApplied(enums.TransactionTypeAdjustment, enums.StatusDone))
}

func TestClassifyTransition(t *testing.T) {
	cases := []struct {
		name      string
		txType    enums.TransactionType
		oldStatus string
		newStatus string
		want      transition
	}{
		{"receipt placed to completed applies", enums.TransactionTypeReceipt, enums.StatusOrderPlaced, enums.StatusCompleted, transitionApply},
		{"receipt completed to placed reverts", enums.TransactionTypeReceipt, enums.StatusCompleted, enums.StatusOrderPlaced, transitionRevert},
		{"receipt completed to completed is a no-op", enums.TransactionTypeReceipt, enums.StatusCompleted, enums.StatusCompleted, transitionNone},
		{"receipt placed to transit is a no-op", enums.TransactionTypeReceipt, enums.StatusOrderPlaced, enums.StatusInTransit, transitionNone},
		{"delivery received to shipped applies", enums.TransactionTypeDelivery, enums.StatusOrderReceived, enums.StatusShipped, transitionApply},
		{"delivery shipped to shipping reverts", enums.TransactionTypeDelivery, enums.StatusShipped, enums.StatusShipping, transitionRevert},
		{"delivery received to shipping is a no-op", enums.TransactionTypeDelivery, enums.StatusOrderReceived, enums.StatusShipping, transitionNone},
		{"transfer never transitions", enums.TransactionTypeTransferIn, enums.StatusDone, "ANYTHING", transitionNone},
		{"adjustment never transitions", enums.TransactionTypeAdjustment, enums.StatusDone, enums.StatusCompleted, transitionNone},
		{"unknown statuses are inert", enums.TransactionTypeReceipt, "PENDING_REVIEW", "ON_HOLD", transitionNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyTransition(tc.txType, tc.oldStatus, tc.newStatus))
		})
	}
}
