package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	"github.com/stockmasterhq/stockmaster-backend/pkg/security"
)

func setupSeedTestDB(t *testing.T) *db.Client {
	t.Helper()

	// Own named in-memory DB so other packages' rows cannot trip the
	// already-seeded check.
	conn, err := gorm.Open(sqlite.Open("file:seedtest?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
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
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  full_name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'staff',
  reset_otp_hash TEXT,
  otp_expires_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return db.FromGorm(conn)
}

func TestRunSeedsEmptyDatabase(t *testing.T) {
	client := setupSeedTestDB(t)

	seeded, err := Run(context.Background(), client)
	require.NoError(t, err)
	assert.True(t, seeded)

	var productCount, warehouseCount, levelCount int64
	require.NoError(t, client.DB().Model(&models.Product{}).Count(&productCount).Error)
	require.NoError(t, client.DB().Model(&models.Warehouse{}).Count(&warehouseCount).Error)
	require.NoError(t, client.DB().Model(&models.StockLevel{}).Count(&levelCount).Error)

	assert.Equal(t, int64(ProductCount()), productCount)
	assert.Equal(t, int64(2), warehouseCount)
	assert.Equal(t, int64(ProductCount()*2), levelCount)

	var gpu models.Product
	require.NoError(t, client.DB().Where("sku = ?", "GPU-NV-4090").First(&gpu).Error)
	assert.Equal(t, "Graphics Cards", gpu.Category)

	// Per-warehouse split keeps the combined quantity intact.
	var levels []models.StockLevel
	require.NoError(t, client.DB().Where("product_id = ?", gpu.ID).Find(&levels).Error)
	require.Len(t, levels, 2)
	total := levels[0].Quantity.Add(levels[1].Quantity)
	assert.Equal(t, "12", total.String())
}

func TestAdminBootstrapsManagerAccount(t *testing.T) {
	client := setupSeedTestDB(t)
	cfg := config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}

	created, err := Admin(context.Background(), client, cfg)
	require.NoError(t, err)

	var admin models.User
	require.NoError(t, client.DB().Where("email = ?", AdminEmail).First(&admin).Error)
	assert.Equal(t, enums.UserRoleManager, admin.Role)
	assert.Equal(t, "Admin User", admin.FullName)

	if created {
		ok, err := security.VerifyPassword("admin123", admin.PasswordHash)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	again, err := Admin(context.Background(), client, cfg)
	require.NoError(t, err)
	assert.False(t, again)
}

func TestRunIsIdempotent(t *testing.T) {
	client := setupSeedTestDB(t)

	seeded, err := Run(context.Background(), client)
	require.NoError(t, err)
	if !seeded {
		// Another test in this package already populated the shared DB.
		t.Log("database pre-populated, exercising the no-op path only")
	}

	again, err := Run(context.Background(), client)
	require.NoError(t, err)
	assert.False(t, again)

	var productCount int64
	require.NoError(t, client.DB().Model(&models.Product{}).Count(&productCount).Error)
	assert.Equal(t, int64(ProductCount()), productCount)
}
