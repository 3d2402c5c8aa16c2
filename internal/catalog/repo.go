package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/pagination"
)

// Repository exposes catalog persistence for products and warehouses.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateProduct inserts a new catalog entry.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// ListProducts returns a page of products ordered by creation time.
func (r *Repository) ListProducts(ctx context.Context, params pagination.Params) ([]models.Product, error) {
	params = pagination.Normalize(params)
	var products []models.Product
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&products).Error
	return products, err
}

// FindProductByID loads a product by its UUID.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateWarehouse inserts a new warehouse.
func (r *Repository) CreateWarehouse(ctx context.Context, warehouse *models.Warehouse) error {
	return r.db.WithContext(ctx).Create(warehouse).Error
}

// ListWarehouses returns a page of warehouses ordered by creation time.
func (r *Repository) ListWarehouses(ctx context.Context, params pagination.Params) ([]models.Warehouse, error) {
	params = pagination.Normalize(params)
	var warehouses []models.Warehouse
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&warehouses).Error
	return warehouses, err
}

// AllWarehouses returns every warehouse, for the inventory summary.
func (r *Repository) AllWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&warehouses).Error
	return warehouses, err
}

// FindWarehouseByID loads a warehouse by its UUID.
func (r *Repository) FindWarehouseByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	if err := r.db.WithContext(ctx).First(&warehouse, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &warehouse, nil
}
