package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
)

// CreateProductRequest is the payload for registering a catalog entry.
type CreateProductRequest struct {
	SKU           string `json:"sku" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Category      string `json:"category"`
	UnitOfMeasure string `json:"unit_of_measure"`
}

// ProductDTO is the transport shape for a product, including the total
// quantity on hand across all warehouses.
type ProductDTO struct {
	ID            uuid.UUID       `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Quantity      decimal.Decimal `json:"quantity"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateWarehouseRequest is the payload for registering a warehouse.
type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location"`
}

// WarehouseDTO is the transport shape for a warehouse.
type WarehouseDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// WarehouseInventoryDTO summarizes one warehouse's ledger.
type WarehouseInventoryDTO struct {
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	TotalItems    int64           `json:"total_items"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// WarehouseItemDTO is one ledger row joined with its product.
type WarehouseItemDTO struct {
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	Quantity    decimal.Decimal `json:"quantity"`
}

func productFromModel(p *models.Product, quantity decimal.Decimal) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Category:      p.Category,
		UnitOfMeasure: p.UnitOfMeasure,
		Quantity:      quantity,
		CreatedAt:     p.CreatedAt,
	}
}

func warehouseFromModel(w *models.Warehouse) *WarehouseDTO {
	if w == nil {
		return nil
	}
	return &WarehouseDTO{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		CreatedAt: w.CreatedAt,
	}
}
