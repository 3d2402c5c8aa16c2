package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLevel is the running quantity on hand for one (product, warehouse)
// pair. Rows are created lazily by the first operation touching the pair,
// mutated in place afterwards, and never deleted. Committed quantities are
// never negative.
type StockLevel struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_stock_levels_pair"`
	WarehouseID uuid.UUID       `gorm:"column:warehouse_id;type:uuid;not null;uniqueIndex:idx_stock_levels_pair"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric(14,3);not null;default:0"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	Product   *Product   `gorm:"foreignKey:ProductID"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID"`
}
