package operations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
)

// ReceiptRequest records incoming goods from a supplier.
type ReceiptRequest struct {
	ProductID    uuid.UUID       `json:"product_id" validate:"required"`
	WarehouseID  uuid.UUID       `json:"warehouse_id" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
	SupplierName string          `json:"supplier_name" validate:"required"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes"`
}

// DeliveryRequest records outgoing goods to a customer.
type DeliveryRequest struct {
	ProductID    uuid.UUID       `json:"product_id" validate:"required"`
	WarehouseID  uuid.UUID       `json:"warehouse_id" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
	CustomerName string          `json:"customer_name" validate:"required"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes"`
}

// TransferRequest moves stock between two warehouses.
type TransferRequest struct {
	ProductID       uuid.UUID       `json:"product_id" validate:"required"`
	FromWarehouseID uuid.UUID       `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   uuid.UUID       `json:"to_warehouse_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity" validate:"required"`
	Notes           string          `json:"notes"`
}

// AdjustmentRequest reconciles the ledger against a physical count.
type AdjustmentRequest struct {
	ProductID       uuid.UUID       `json:"product_id" validate:"required"`
	WarehouseID     uuid.UUID       `json:"warehouse_id" validate:"required"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
	Reason          string          `json:"reason" validate:"required"`
	Notes           string          `json:"notes"`
}

// StatusUpdateRequest mutates a transaction's status post-creation.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// OperationResponse is the shared result shape for every mutating operation.
type OperationResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	NewQuantity   decimal.Decimal `json:"new_quantity"`
}

// TransactionHistoryDTO is one transaction-log row joined with catalog names.
type TransactionHistoryDTO struct {
	ID              uuid.UUID             `json:"id"`
	ProductName     string                `json:"product_name"`
	WarehouseName   string                `json:"warehouse_name"`
	TransactionType enums.TransactionType `json:"transaction_type"`
	Quantity        decimal.Decimal       `json:"quantity"`
	Reference       string                `json:"reference"`
	Notes           string                `json:"notes"`
	Status          string                `json:"status"`
	Timestamp       time.Time             `json:"timestamp"`
}

func historyFromModel(t *models.StockTransaction) TransactionHistoryDTO {
	dto := TransactionHistoryDTO{
		ID:              t.ID,
		TransactionType: t.TransactionType,
		Quantity:        t.Quantity,
		Reference:       t.Reference,
		Notes:           t.Notes,
		Status:          t.Status,
		Timestamp:       t.Timestamp,
	}
	if t.Product != nil {
		dto.ProductName = t.Product.Name
	}
	if t.Warehouse != nil {
		dto.WarehouseName = t.Warehouse.Name
	}
	return dto
}
