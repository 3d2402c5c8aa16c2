// Package inventory owns the stock ledger: one row per (product, warehouse)
// pair holding a running quantity. Rows are created lazily on the first
// operation that touches a pair and mutated in place afterwards.
package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
)

// Repository exposes ledger persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a ledger repo bound to the provided DB (or tx).
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repo to a transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// lockingScope takes a FOR UPDATE row lock on Postgres. Sqlite (tests)
// serializes writers at the database level, so the clause is skipped there.
func (r *Repository) lockingScope(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Get returns the ledger row for the pair, or nil when none exists yet.
func (r *Repository) Get(ctx context.Context, productID, warehouseID uuid.UUID) (*models.StockLevel, error) {
	var level models.StockLevel
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&level).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &level, nil
}

// GetForUpdate reads the ledger row under a row lock so concurrent operations
// on the same pair cannot both apply deltas over a stale quantity.
func (r *Repository) GetForUpdate(ctx context.Context, productID, warehouseID uuid.UUID) (*models.StockLevel, error) {
	var level models.StockLevel
	err := r.lockingScope(r.db.WithContext(ctx)).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&level).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &level, nil
}

// Quantity returns the committed quantity for a pair, zero when no row exists.
func (r *Repository) Quantity(ctx context.Context, productID, warehouseID uuid.UUID) (decimal.Decimal, error) {
	level, err := r.Get(ctx, productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	if level == nil {
		return decimal.Zero, nil
	}
	return level.Quantity, nil
}

// ApplyDelta is the fetch-or-create upsert primitive shared by every mutating
// operation: it adds delta to the pair's quantity, creating the row on first
// touch, and returns the resulting quantity.
func (r *Repository) ApplyDelta(ctx context.Context, productID, warehouseID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	level, err := r.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}

	if level == nil {
		level = &models.StockLevel{
			ID:          uuid.New(),
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    delta,
		}
		if err := r.db.WithContext(ctx).Create(level).Error; err != nil {
			return decimal.Zero, err
		}
		return level.Quantity, nil
	}

	level.Quantity = level.Quantity.Add(delta)
	if err := r.db.WithContext(ctx).
		Model(level).
		UpdateColumn("quantity", level.Quantity).Error; err != nil {
		return decimal.Zero, err
	}
	return level.Quantity, nil
}

// SetQuantity overwrites the pair's quantity (adjustment semantics) and
// returns the previous committed quantity.
func (r *Repository) SetQuantity(ctx context.Context, productID, warehouseID uuid.UUID, quantity decimal.Decimal) (decimal.Decimal, error) {
	level, err := r.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}

	if level == nil {
		level = &models.StockLevel{
			ID:          uuid.New(),
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    quantity,
		}
		if err := r.db.WithContext(ctx).Create(level).Error; err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, nil
	}

	previous := level.Quantity
	if err := r.db.WithContext(ctx).
		Model(level).
		UpdateColumn("quantity", quantity).Error; err != nil {
		return decimal.Zero, err
	}
	return previous, nil
}

// WarehouseSummary aggregates one warehouse's ledger rows.
type WarehouseSummary struct {
	TotalItems    int64
	TotalQuantity decimal.Decimal
}

// SummarizeWarehouse counts distinct product rows and sums quantities for a warehouse.
func (r *Repository) SummarizeWarehouse(ctx context.Context, warehouseID uuid.UUID) (*WarehouseSummary, error) {
	var levels []models.StockLevel
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Find(&levels).Error; err != nil {
		return nil, err
	}

	summary := &WarehouseSummary{TotalQuantity: decimal.Zero}
	for _, level := range levels {
		summary.TotalItems++
		summary.TotalQuantity = summary.TotalQuantity.Add(level.Quantity)
	}
	return summary, nil
}

// ListByWarehouse returns the ledger rows for a warehouse with products preloaded.
func (r *Repository) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.StockLevel, error) {
	var levels []models.StockLevel
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("warehouse_id = ?", warehouseID).
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// TotalForProduct sums a product's quantity across all warehouses.
func (r *Repository) TotalForProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var levels []models.StockLevel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&levels).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, level := range levels {
		total = total.Add(level.Quantity)
	}
	return total, nil
}
