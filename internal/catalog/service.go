package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/internal/inventory"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
	"github.com/stockmasterhq/stockmaster-backend/pkg/pagination"
)

// Service defines the behavior needed by the catalog controllers.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDTO, error)
	ListProducts(ctx context.Context, params pagination.Params) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)

	CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*WarehouseDTO, error)
	ListWarehouses(ctx context.Context, params pagination.Params) ([]WarehouseDTO, error)
	WarehouseInventory(ctx context.Context) ([]WarehouseInventoryDTO, error)
	WarehouseItems(ctx context.Context, warehouseID uuid.UUID) ([]WarehouseItemDTO, error)
}

type catalogRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, params pagination.Params) ([]models.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateWarehouse(ctx context.Context, warehouse *models.Warehouse) error
	ListWarehouses(ctx context.Context, params pagination.Params) ([]models.Warehouse, error)
	AllWarehouses(ctx context.Context) ([]models.Warehouse, error)
	FindWarehouseByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
}

type ledgerRepository interface {
	TotalForProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
	SummarizeWarehouse(ctx context.Context, warehouseID uuid.UUID) (*inventory.WarehouseSummary, error)
	ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.StockLevel, error)
}

type service struct {
	catalog catalogRepository
	ledger  ledgerRepository
}

// ServiceParams bundles the dependencies required to build a catalog service.
type ServiceParams struct {
	CatalogRepo catalogRepository
	LedgerRepo  ledgerRepository
}

// NewService constructs a catalog service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CatalogRepo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if params.LedgerRepo == nil {
		return nil, fmt.Errorf("ledger repository is required")
	}
	return &service{
		catalog: params.CatalogRepo,
		ledger:  params.LedgerRepo,
	}, nil
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}

	product := &models.Product{
		ID:            uuid.New(),
		SKU:           sku,
		Name:          strings.TrimSpace(req.Name),
		Category:      strings.TrimSpace(req.Category),
		UnitOfMeasure: strings.TrimSpace(req.UnitOfMeasure),
	}
	if err := s.catalog.CreateProduct(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "idx_products_sku") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product with this SKU already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}

	return productFromModel(product, decimal.Zero), nil
}

func (s *service) ListProducts(ctx context.Context, params pagination.Params) ([]ProductDTO, error) {
	products, err := s.catalog.ListProducts(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	result := make([]ProductDTO, 0, len(products))
	for i := range products {
		total, err := s.ledger.TotalForProduct(ctx, products[i].ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum product quantity")
		}
		result = append(result, *productFromModel(&products[i], total))
	}
	return result, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.catalog.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}

	total, err := s.ledger.TotalForProduct(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum product quantity")
	}
	return productFromModel(product, total), nil
}

func (s *service) CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*WarehouseDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	warehouse := &models.Warehouse{
		ID:       uuid.New(),
		Name:     name,
		Location: strings.TrimSpace(req.Location),
	}
	if err := s.catalog.CreateWarehouse(ctx, warehouse); err != nil {
		if db.IsUniqueViolation(err, "idx_warehouses_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "warehouse with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create warehouse")
	}

	return warehouseFromModel(warehouse), nil
}

func (s *service) ListWarehouses(ctx context.Context, params pagination.Params) ([]WarehouseDTO, error) {
	warehouses, err := s.catalog.ListWarehouses(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list warehouses")
	}

	result := make([]WarehouseDTO, 0, len(warehouses))
	for i := range warehouses {
		result = append(result, *warehouseFromModel(&warehouses[i]))
	}
	return result, nil
}

func (s *service) WarehouseInventory(ctx context.Context) ([]WarehouseInventoryDTO, error) {
	warehouses, err := s.catalog.AllWarehouses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list warehouses")
	}

	result := make([]WarehouseInventoryDTO, 0, len(warehouses))
	for i := range warehouses {
		summary, err := s.ledger.SummarizeWarehouse(ctx, warehouses[i].ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summarize warehouse")
		}
		result = append(result, WarehouseInventoryDTO{
			WarehouseID:   warehouses[i].ID,
			WarehouseName: warehouses[i].Name,
			TotalItems:    summary.TotalItems,
			TotalQuantity: summary.TotalQuantity,
		})
	}
	return result, nil
}

func (s *service) WarehouseItems(ctx context.Context, warehouseID uuid.UUID) ([]WarehouseItemDTO, error) {
	if _, err := s.catalog.FindWarehouseByID(ctx, warehouseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Warehouse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find warehouse")
	}

	levels, err := s.ledger.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list warehouse items")
	}

	result := make([]WarehouseItemDTO, 0, len(levels))
	for _, level := range levels {
		item := WarehouseItemDTO{Quantity: level.Quantity}
		if level.Product != nil {
			item.ProductName = level.Product.Name
			item.SKU = level.Product.SKU
			item.Category = level.Product.Category
		}
		result = append(result, item)
	}
	return result, nil
}
