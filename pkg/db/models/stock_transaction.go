package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
)

// StockTransaction is the log entry for one inventory-affecting event.
// Quantity is signed: positive for inbound effect, negative for outbound.
// Status is the only field that mutates after creation.
type StockTransaction struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID       uuid.UUID             `gorm:"column:product_id;type:uuid;not null;index"`
	WarehouseID     uuid.UUID             `gorm:"column:warehouse_id;type:uuid;not null;index"`
	TransactionType enums.TransactionType `gorm:"column:transaction_type;not null;index"`
	Quantity        decimal.Decimal       `gorm:"column:quantity;type:numeric(14,3);not null"`
	Reference       string                `gorm:"column:reference"`
	Notes           string                `gorm:"column:notes"`
	Status          string                `gorm:"column:status;not null"`
	Timestamp       time.Time             `gorm:"column:timestamp;not null;index"`

	Product   *Product   `gorm:"foreignKey:ProductID"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID"`
}
