// Package seed loads the sample electronics catalog into an empty database.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	"github.com/stockmasterhq/stockmaster-backend/pkg/security"
)

// Development login; never seeded outside dev.
const (
	AdminEmail    = "admin@stockmaster.com"
	adminPassword = "admin123"
	adminFullName = "Admin User"
)

type seedProduct struct {
	Name     string
	SKU      string
	Category string
	Unit     string
	Quantity int64
}

// Sample electronics catalog. Stock for each product is split across
// the two warehouses.
var seedProducts = []seedProduct{
	{"Intel Core i9-14900K", "CPU-INT-14900K", "Processors", "units", 45},
	{"AMD Ryzen 9 7950X", "CPU-AMD-7950X", "Processors", "units", 38},
	{"Intel Core i7-14700K", "CPU-INT-14700K", "Processors", "units", 62},
	{"AMD Ryzen 7 7800X3D", "CPU-AMD-7800X3D", "Processors", "units", 55},
	{"NVIDIA RTX 4090", "GPU-NV-4090", "Graphics Cards", "units", 12},
	{"NVIDIA RTX 4080 Super", "GPU-NV-4080S", "Graphics Cards", "units", 28},
	{"AMD Radeon RX 7900 XTX", "GPU-AMD-7900XTX", "Graphics Cards", "units", 22},
	{"NVIDIA RTX 4070 Ti", "GPU-NV-4070TI", "Graphics Cards", "units", 35},
	{"ASUS ROG Maximus Z790 Hero", "MB-ASUS-Z790", "Motherboards", "units", 18},
	{"MSI MPG X670E Carbon WiFi", "MB-MSI-X670E", "Motherboards", "units", 25},
	{"Gigabyte B650 AORUS Elite", "MB-GB-B650", "Motherboards", "units", 42},
	{"Corsair Vengeance DDR5 32GB", "RAM-COR-DDR5-32", "Memory", "units", 150},
	{"G.Skill Trident Z5 RGB 64GB", "RAM-GS-DDR5-64", "Memory", "units", 88},
	{"Kingston FURY Beast DDR5 16GB", "RAM-KIN-DDR5-16", "Memory", "units", 210},
	{"Samsung 990 Pro 2TB NVMe", "SSD-SAM-990P-2TB", "Storage", "units", 95},
	{"WD Black SN850X 1TB NVMe", "SSD-WD-SN850X-1TB", "Storage", "units", 120},
	{"Crucial P5 Plus 500GB NVMe", "SSD-CRU-P5-500GB", "Storage", "units", 180},
	{"Seagate Barracuda 4TB HDD", "HDD-SEA-4TB", "Storage", "units", 75},
	{"Corsair RM1000x 1000W", "PSU-COR-1000W", "Power Supplies", "units", 48},
	{"EVGA SuperNOVA 850W", "PSU-EVG-850W", "Power Supplies", "units", 65},
	{"Seasonic Focus GX 750W", "PSU-SEA-750W", "Power Supplies", "units", 92},
	{"NZXT H7 Flow", "CASE-NZXT-H7", "Cases", "units", 34},
	{"Lian Li O11 Dynamic EVO", "CASE-LL-O11D", "Cases", "units", 28},
	{"Fractal Design Meshify 2", "CASE-FD-M2", "Cases", "units", 41},
	{"Noctua NH-D15 CPU Cooler", "COOL-NOC-NHD15", "Cooling", "units", 58},
	{"Corsair iCUE H150i Elite LCD", "COOL-COR-H150I", "Cooling", "units", 45},
	{"Arctic Liquid Freezer II 280", "COOL-ARC-LF280", "Cooling", "units", 52},
	{"Logitech G Pro X Superlight", "MOUSE-LOG-GPXS", "Peripherals", "units", 110},
	{"Razer BlackWidow V4 Pro", "KB-RAZ-BWV4", "Peripherals", "units", 78},
	{"SteelSeries Arctis Nova Pro", "HS-SS-ANP", "Peripherals", "units", 62},
	{"LG 27GR95QE-B 27\" OLED 240Hz", "MON-LG-27GR95", "Monitors", "units", 15},
	{"ASUS ROG Swift PG279QM 27\"", "MON-ASUS-PG279", "Monitors", "units", 22},
	{"Dell S2722DGM 27\" 165Hz", "MON-DELL-S2722", "Monitors", "units", 38},
	{"Gaming PC - RTX 4090 Build", "PC-GAME-4090", "Complete Systems", "units", 8},
	{"Workstation PC - Threadripper", "PC-WORK-TR", "Complete Systems", "units", 5},
	{"Office PC - Budget Build", "PC-OFF-BUD", "Complete Systems", "units", 32},
	{"Thermal Paste - Arctic MX-6", "ACC-TH-MX6", "Accessories", "tubes", 8},
	{"RGB LED Strips 2m", "ACC-LED-2M", "Accessories", "units", 5},
}

// Admin creates the manager-role development account. It is a no-op when
// the account already exists.
func Admin(ctx context.Context, client *db.Client, cfg config.PasswordConfig) (bool, error) {
	var existing int64
	if err := client.DB().WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", AdminEmail).
		Count(&existing).Error; err != nil {
		return false, fmt.Errorf("checking admin account: %w", err)
	}
	if existing > 0 {
		return false, nil
	}

	hash, err := security.HashPassword(adminPassword, cfg)
	if err != nil {
		return false, fmt.Errorf("hashing admin password: %w", err)
	}

	admin := models.User{
		ID:           uuid.New(),
		Email:        AdminEmail,
		FullName:     adminFullName,
		PasswordHash: hash,
		Role:         enums.UserRoleManager,
	}
	if err := client.DB().WithContext(ctx).Create(&admin).Error; err != nil {
		return false, fmt.Errorf("creating admin account: %w", err)
	}
	return true, nil
}

// ProductCount reports how many sample products Run inserts.
func ProductCount() int {
	return len(seedProducts)
}

// Run inserts the sample catalog and opening stock. It is a no-op when
// any product already exists, so it is safe to run on every boot.
func Run(ctx context.Context, client *db.Client) (bool, error) {
	var existing int64
	if err := client.DB().WithContext(ctx).Model(&models.Product{}).Count(&existing).Error; err != nil {
		return false, fmt.Errorf("checking existing products: %w", err)
	}
	if existing > 0 {
		return false, nil
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		warehouseA := models.Warehouse{
			ID:       uuid.New(),
			Name:     "Electronics Warehouse A",
			Location: "Building A - Tech District",
		}
		warehouseB := models.Warehouse{
			ID:       uuid.New(),
			Name:     "Electronics Warehouse B",
			Location: "Building B - Tech District",
		}
		if err := tx.Create(&warehouseA).Error; err != nil {
			return fmt.Errorf("creating warehouse %q: %w", warehouseA.Name, err)
		}
		if err := tx.Create(&warehouseB).Error; err != nil {
			return fmt.Errorf("creating warehouse %q: %w", warehouseB.Name, err)
		}

		for _, item := range seedProducts {
			product := models.Product{
				ID:            uuid.New(),
				SKU:           item.SKU,
				Name:          item.Name,
				Category:      item.Category,
				UnitOfMeasure: item.Unit,
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("creating product %q: %w", item.SKU, err)
			}

			qtyA := item.Quantity / 2
			qtyB := item.Quantity - qtyA
			levels := []models.StockLevel{
				{
					ID:          uuid.New(),
					ProductID:   product.ID,
					WarehouseID: warehouseA.ID,
					Quantity:    decimal.NewFromInt(qtyA),
				},
				{
					ID:          uuid.New(),
					ProductID:   product.ID,
					WarehouseID: warehouseB.ID,
					Quantity:    decimal.NewFromInt(qtyB),
				},
			}
			if err := tx.Create(&levels).Error; err != nil {
				return fmt.Errorf("creating stock levels for %q: %w", item.SKU, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
