package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/internal/inventory"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
	"github.com/stockmasterhq/stockmaster-backend/pkg/pagination"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  unit_of_measure TEXT NOT NULL DEFAULT '',
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS warehouses (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  location TEXT NOT NULL DEFAULT '',
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS stock_levels (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  warehouse_id TEXT NOT NULL,
  quantity NUMERIC NOT NULL DEFAULT 0,
  updated_at DATETIME,
  UNIQUE (product_id, warehouse_id)
);`,
	}
	for _, stmt := range stmts {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func buildCatalogService(t *testing.T, db *gorm.DB) (Service, *inventory.Repository) {
	t.Helper()
	ledger := inventory.NewRepository(db)
	svc, err := NewService(ServiceParams{
		CatalogRepo: NewRepository(db),
		LedgerRepo:  ledger,
	})
	require.NoError(t, err)
	return svc, ledger
}

func TestCreateProductAndDuplicateSKU(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, _ := buildCatalogService(t, db)
	ctx := context.Background()

	sku := "BOLT-" + uuid.NewString()[:8]
	product, err := svc.CreateProduct(ctx, CreateProductRequest{
		SKU:           sku,
		Name:          "Hex Bolt",
		Category:      "Fasteners",
		UnitOfMeasure: "pcs",
	})
	require.NoError(t, err)
	assert.Equal(t, sku, product.SKU)
	assert.True(t, product.Quantity.IsZero())

	_, err = svc.CreateProduct(ctx, CreateProductRequest{SKU: sku, Name: "Copy"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestListProductsIncludesTotals(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, ledger := buildCatalogService(t, db)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, CreateProductRequest{
		SKU:  "NUT-" + uuid.NewString()[:8],
		Name: "Lock Nut",
	})
	require.NoError(t, err)

	first, err := svc.CreateWarehouse(ctx, CreateWarehouseRequest{Name: "WH-" + uuid.NewString()[:8]})
	require.NoError(t, err)
	second, err := svc.CreateWarehouse(ctx, CreateWarehouseRequest{Name: "WH-" + uuid.NewString()[:8]})
	require.NoError(t, err)

	_, err = ledger.ApplyDelta(ctx, product.ID, first.ID, decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = ledger.ApplyDelta(ctx, product.ID, second.ID, decimal.NewFromInt(5))
	require.NoError(t, err)

	listed, err := svc.ListProducts(ctx, pagination.Params{Limit: pagination.MaxLimit})
	require.NoError(t, err)

	var found *ProductDTO
	for i := range listed {
		if listed[i].ID == product.ID {
			found = &listed[i]
		}
	}
	require.NotNil(t, found)
	assert.True(t, found.Quantity.Equal(decimal.NewFromInt(15)), "got %s", found.Quantity)

	got, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(15)), "got %s", got.Quantity)
}

func TestGetProductNotFound(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, _ := buildCatalogService(t, db)

	_, err := svc.GetProduct(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestCreateWarehouseDuplicateName(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, _ := buildCatalogService(t, db)
	ctx := context.Background()

	name := "Central-" + uuid.NewString()[:8]
	_, err := svc.CreateWarehouse(ctx, CreateWarehouseRequest{Name: name, Location: "North yard"})
	require.NoError(t, err)

	_, err = svc.CreateWarehouse(ctx, CreateWarehouseRequest{Name: name})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestWarehouseInventoryAndItems(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, ledger := buildCatalogService(t, db)
	ctx := context.Background()

	warehouse, err := svc.CreateWarehouse(ctx, CreateWarehouseRequest{Name: "Items-" + uuid.NewString()[:8]})
	require.NoError(t, err)

	bolt, err := svc.CreateProduct(ctx, CreateProductRequest{
		SKU:      "BLT-" + uuid.NewString()[:8],
		Name:     "Bolt",
		Category: "Fasteners",
	})
	require.NoError(t, err)
	nut, err := svc.CreateProduct(ctx, CreateProductRequest{
		SKU:      "NT-" + uuid.NewString()[:8],
		Name:     "Nut",
		Category: "Fasteners",
	})
	require.NoError(t, err)

	_, err = ledger.ApplyDelta(ctx, bolt.ID, warehouse.ID, decimal.NewFromInt(12))
	require.NoError(t, err)
	_, err = ledger.ApplyDelta(ctx, nut.ID, warehouse.ID, decimal.NewFromInt(8))
	require.NoError(t, err)

	summaries, err := svc.WarehouseInventory(ctx)
	require.NoError(t, err)

	var summary *WarehouseInventoryDTO
	for i := range summaries {
		if summaries[i].WarehouseID == warehouse.ID {
			summary = &summaries[i]
		}
	}
	require.NotNil(t, summary)
	assert.Equal(t, int64(2), summary.TotalItems)
	assert.True(t, summary.TotalQuantity.Equal(decimal.NewFromInt(20)), "got %s", summary.TotalQuantity)

	items, err := svc.WarehouseItems(ctx, warehouse.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	names := map[string]bool{}
	for _, item := range items {
		names[item.ProductName] = true
		assert.Equal(t, "Fasteners", item.Category)
	}
	assert.True(t, names["Bolt"] && names["Nut"])

	_, err = svc.WarehouseItems(ctx, uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
