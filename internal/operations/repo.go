package operations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	"github.com/stockmasterhq/stockmaster-backend/pkg/pagination"
)

// Repository persists the transaction log.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a transaction-log repo bound to the provided DB (or tx).
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

// Create appends a transaction-log row.
func (r *Repository) Create(ctx context.Context, transaction *models.StockTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// FindByID loads a transaction-log row, nil when unknown.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.StockTransaction, error) {
	var transaction models.StockTransaction
	err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transaction, nil
}

// UpdateStatus overwrites the status field, the only mutable column.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.StockTransaction{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// ListRecent returns the newest transactions with catalog names preloaded,
// optionally narrowed to a single transaction type.
func (r *Repository) ListRecent(ctx context.Context, limit int, txType enums.TransactionType) ([]models.StockTransaction, error) {
	limit = pagination.NormalizeLimit(limit)
	query := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Warehouse").
		Order("timestamp DESC").
		Limit(limit)
	if txType != "" {
		query = query.Where("transaction_type = ?", txType)
	}
	var transactions []models.StockTransaction
	err := query.Find(&transactions).Error
	return transactions, err
}
