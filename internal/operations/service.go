// Package operations implements the operations engine: the state-transition
// rules by which receipts, deliveries, transfers, and adjustments do or do
// not mutate stock quantities, and the retroactive ledger delta applied when
// a transaction's status changes after creation.
package operations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/internal/catalog"
	"github.com/stockmasterhq/stockmaster-backend/internal/inventory"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
	"github.com/stockmasterhq/stockmaster-backend/pkg/metrics"
)

// Service defines the behavior needed by the operations controller.
type Service interface {
	CreateReceipt(ctx context.Context, req ReceiptRequest) (*OperationResponse, error)
	CreateDelivery(ctx context.Context, req DeliveryRequest) (*OperationResponse, error)
	CreateTransfer(ctx context.Context, req TransferRequest) (*OperationResponse, error)
	CreateAdjustment(ctx context.Context, req AdjustmentRequest) (*OperationResponse, error)
	UpdateTransactionStatus(ctx context.Context, transactionID uuid.UUID, req StatusUpdateRequest) (*OperationResponse, error)
	ListRecent(ctx context.Context, limit int, txType enums.TransactionType) ([]TransactionHistoryDTO, error)
}

type service struct {
	db      *db.Client
	metrics *metrics.OperationMetrics
}

// ServiceParams bundles the dependencies required to build an operations service.
type ServiceParams struct {
	DB      *db.Client
	Metrics *metrics.OperationMetrics
}

// NewService constructs the operations engine with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{
		db:      params.DB,
		metrics: params.Metrics,
	}, nil
}

// InsufficientStockDetails carries the availability figures surfaced with an
// INSUFFICIENT_STOCK failure.
type InsufficientStockDetails struct {
	Available decimal.Decimal `json:"available"`
	Requested decimal.Decimal `json:"requested"`
}

func insufficientStock(message string, available, requested decimal.Decimal) error {
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, message).
		WithDetails(InsufficientStockDetails{Available: available, Requested: requested})
}

func (s *service) observe(txType enums.TransactionType, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
		if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeInsufficientStock {
			outcome = "insufficient_stock"
		}
	}
	s.metrics.IncOperation(txType.String(), outcome)
}

func (s *service) CreateReceipt(ctx context.Context, req ReceiptRequest) (resp *OperationResponse, err error) {
	defer func() { s.observe(enums.TransactionTypeReceipt, err) }()

	if req.Quantity.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	status := req.Status
	if status == "" {
		status = enums.DefaultStatus(enums.TransactionTypeReceipt)
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		catalogRepo := catalog.NewRepository(tx)
		ledger := inventory.NewRepository(tx)
		logRepo := NewRepository(tx)

		product, txErr := findProduct(ctx, catalogRepo, req.ProductID)
		if txErr != nil {
			return txErr
		}
		if _, txErr = findWarehouse(ctx, catalogRepo, req.WarehouseID); txErr != nil {
			return txErr
		}

		// The ledger moves only when the receipt lands as COMPLETED.
		newQuantity := decimal.Zero
		if effectApplied(enums.TransactionTypeReceipt, status) {
			newQuantity, txErr = ledger.ApplyDelta(ctx, req.ProductID, req.WarehouseID, req.Quantity)
			if txErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "apply receipt")
			}
		}

		transaction := &models.StockTransaction{
			ID:              uuid.New(),
			ProductID:       req.ProductID,
			WarehouseID:     req.WarehouseID,
			TransactionType: enums.TransactionTypeReceipt,
			Quantity:        req.Quantity,
			Reference:       fmt.Sprintf("Receipt from %s", req.SupplierName),
			Notes:           req.Notes,
			Status:          status,
			Timestamp:       time.Now().UTC(),
		}
		if txErr = logRepo.Create(ctx, transaction); txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "log receipt")
		}

		message := fmt.Sprintf("Receipt created with status: %s", status)
		if effectApplied(enums.TransactionTypeReceipt, status) {
			message += fmt.Sprintf(". Inventory increased by %s %s", req.Quantity, product.UnitOfMeasure)
		}

		resp = &OperationResponse{
			Success:       true,
			Message:       message,
			TransactionID: transaction.ID,
			NewQuantity:   newQuantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *service) CreateDelivery(ctx context.Context, req DeliveryRequest) (resp *OperationResponse, err error) {
	defer func() { s.observe(enums.TransactionTypeDelivery, err) }()

	if req.Quantity.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	status := req.Status
	if status == "" {
		status = enums.DefaultStatus(enums.TransactionTypeDelivery)
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		catalogRepo := catalog.NewRepository(tx)
		ledger := inventory.NewRepository(tx)
		logRepo := NewRepository(tx)

		product, txErr := findProduct(ctx, catalogRepo, req.ProductID)
		if txErr != nil {
			return txErr
		}
		if _, txErr = findWarehouse(ctx, catalogRepo, req.WarehouseID); txErr != nil {
			return txErr
		}

		level, txErr := ledger.GetForUpdate(ctx, req.ProductID, req.WarehouseID)
		if txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "read ledger")
		}
		newQuantity := decimal.Zero
		if level != nil {
			newQuantity = level.Quantity
		}

		// Stock is committed only at ship time: non-SHIPPED deliveries are
		// recorded without an availability check.
		if effectApplied(enums.TransactionTypeDelivery, status) {
			available := decimal.Zero
			if level != nil {
				available = level.Quantity
			}
			if level == nil || available.LessThan(req.Quantity) {
				return insufficientStock(
					fmt.Sprintf("Insufficient stock. Available: %s, Requested: %s", available, req.Quantity),
					available, req.Quantity,
				)
			}
			newQuantity, txErr = ledger.ApplyDelta(ctx, req.ProductID, req.WarehouseID, req.Quantity.Neg())
			if txErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "apply delivery")
			}
		}

		transaction := &models.StockTransaction{
			ID:              uuid.New(),
			ProductID:       req.ProductID,
			WarehouseID:     req.WarehouseID,
			TransactionType: enums.TransactionTypeDelivery,
			Quantity:        req.Quantity.Neg(), // stored negative regardless of status
			Reference:       fmt.Sprintf("Delivery to %s", req.CustomerName),
			Notes:           req.Notes,
			Status:          status,
			Timestamp:       time.Now().UTC(),
		}
		if txErr = logRepo.Create(ctx, transaction); txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "log delivery")
		}

		message := fmt.Sprintf("Delivery created with status: %s", status)
		if effectApplied(enums.TransactionTypeDelivery, status) {
			message += fmt.Sprintf(". Inventory decreased by %s %s", req.Quantity, product.UnitOfMeasure)
		}

		resp = &OperationResponse{
			Success:       true,
			Message:       message,
			TransactionID: transaction.ID,
			NewQuantity:   newQuantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *service) CreateTransfer(ctx context.Context, req TransferRequest) (resp *OperationResponse, err error) {
	defer func() { s.observe(enums.TransactionTypeTransferIn, err) }()

	if req.Quantity.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if req.FromWarehouseID == req.ToWarehouseID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Cannot transfer to the same warehouse")
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		catalogRepo := catalog.NewRepository(tx)
		ledger := inventory.NewRepository(tx)
		logRepo := NewRepository(tx)

		product, txErr := findProduct(ctx, catalogRepo, req.ProductID)
		if txErr != nil {
			return txErr
		}
		fromWarehouse, txErr := findWarehouse(ctx, catalogRepo, req.FromWarehouseID)
		if txErr != nil {
			return txErr
		}
		toWarehouse, txErr := findWarehouse(ctx, catalogRepo, req.ToWarehouseID)
		if txErr != nil {
			return txErr
		}

		source, txErr := ledger.GetForUpdate(ctx, req.ProductID, req.FromWarehouseID)
		if txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "read source ledger")
		}
		available := decimal.Zero
		if source != nil {
			available = source.Quantity
		}
		if source == nil || available.LessThan(req.Quantity) {
			return insufficientStock(
				fmt.Sprintf("Insufficient stock in source warehouse. Available: %s, Requested: %s", available, req.Quantity),
				available, req.Quantity,
			)
		}

		if _, txErr = ledger.ApplyDelta(ctx, req.ProductID, req.FromWarehouseID, req.Quantity.Neg()); txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "debit source")
		}
		destQuantity, txErr := ledger.ApplyDelta(ctx, req.ProductID, req.ToWarehouseID, req.Quantity)
		if txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "credit destination")
		}

		now := time.Now().UTC()
		transferOut := &models.StockTransaction{
			ID:              uuid.New(),
			ProductID:       req.ProductID,
			WarehouseID:     req.FromWarehouseID,
			TransactionType: enums.TransactionTypeTransferOut,
			Quantity:        req.Quantity.Neg(),
			Reference:       fmt.Sprintf("Transfer to %s", toWarehouse.Name),
			Notes:           req.Notes,
			Status:          enums.StatusDone,
			Timestamp:       now,
		}
		transferIn := &models.StockTransaction{
			ID:              uuid.New(),
			ProductID:       req.ProductID,
			WarehouseID:     req.ToWarehouseID,
			TransactionType: enums.TransactionTypeTransferIn,
			Quantity:        req.Quantity,
			Reference:       fmt.Sprintf("Transfer from %s", fromWarehouse.Name),
			Notes:           req.Notes,
			Status:          enums.StatusDone,
			Timestamp:       now,
		}
		if txErr = logRepo.Create(ctx, transferOut); txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "log transfer out")
		}
		if txErr = logRepo.Create(ctx, transferIn); txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "log transfer in")
		}

		resp = &OperationResponse{
			Success: true,
			Message: fmt.Sprintf("Transfer created: %s %s from %s to %s",
				req.Quantity, product.UnitOfMeasure, fromWarehouse.Name, toWarehouse.Name),
			TransactionID: transferIn.ID,
			NewQuantity:   destQuantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *service) CreateAdjustment(ctx context.Context, req AdjustmentRequest) (resp *OperationResponse, err error) {
	defer func() { s.observe(enums.TransactionTypeAdjustment, err) }()

	if req.CountedQuantity.Sign() < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "counted quantity cannot be negative")
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		catalogRepo := catalog.NewRepository(tx)
		ledger := inventory.NewRepository(tx)
		logRepo := NewRepository(tx)

		product, txErr := findProduct(ctx, catalogRepo, req.ProductID)
		if txErr != nil {
			return txErr
		}
		if _, txErr = findWarehouse(ctx, catalogRepo, req.WarehouseID); txErr != nil {
			return txErr
		}

		oldQuantity, txErr := ledger.SetQuantity(ctx, req.ProductID, req.WarehouseID, req.CountedQuantity)
		if txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "apply adjustment")
		}
		difference := req.CountedQuantity.Sub(oldQuantity)

		transaction := &models.StockTransaction{
			ID:              uuid.New(),
			ProductID:       req.ProductID,
			WarehouseID:     req.WarehouseID,
			TransactionType: enums.TransactionTypeAdjustment,
			Quantity:        difference,
			Reference:       fmt.Sprintf("Stock adjustment: %s", req.Reason),
			Notes:           fmt.Sprintf("Old: %s, New: %s. %s", oldQuantity, req.CountedQuantity, req.Notes),
			Status:          enums.StatusDone,
			Timestamp:       time.Now().UTC(),
		}
		if txErr = logRepo.Create(ctx, transaction); txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "log adjustment")
		}

		sign := ""
		if difference.Sign() >= 0 {
			sign = "+"
		}
		resp = &OperationResponse{
			Success: true,
			Message: fmt.Sprintf("Adjustment created: %s%s %s (%s → %s)",
				sign, difference, product.UnitOfMeasure, oldQuantity, req.CountedQuantity),
			TransactionID: transaction.ID,
			NewQuantity:   req.CountedQuantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *service) UpdateTransactionStatus(ctx context.Context, transactionID uuid.UUID, req StatusUpdateRequest) (resp *OperationResponse, err error) {
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		ledger := inventory.NewRepository(tx)
		logRepo := NewRepository(tx)

		transaction, txErr := logRepo.FindByID(ctx, transactionID)
		if txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "find transaction")
		}
		if transaction == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Transaction not found")
		}

		oldStatus := transaction.Status
		newStatus := req.Status

		// Only the delta between the old and new effect states touches the
		// ledger, never a re-application of the full history.
		switch classifyTransition(transaction.TransactionType, oldStatus, newStatus) {
		case transitionApply:
			if txErr = s.applyEffect(ctx, ledger, transaction); txErr != nil {
				return txErr
			}
		case transitionRevert:
			if txErr = s.revertEffect(ctx, ledger, transaction); txErr != nil {
				return txErr
			}
		}

		if txErr = logRepo.UpdateStatus(ctx, transaction.ID, newStatus); txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "update status")
		}

		current, txErr := ledger.Quantity(ctx, transaction.ProductID, transaction.WarehouseID)
		if txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "read ledger")
		}

		resp = &OperationResponse{
			Success:       true,
			Message:       fmt.Sprintf("Status updated from %s to %s", oldStatus, newStatus),
			TransactionID: transaction.ID,
			NewQuantity:   current,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// applyEffect applies the transaction's ledger effect when its status reaches
// the effect status.
func (s *service) applyEffect(ctx context.Context, ledger *inventory.Repository, transaction *models.StockTransaction) error {
	switch transaction.TransactionType {
	case enums.TransactionTypeReceipt:
		if _, err := ledger.ApplyDelta(ctx, transaction.ProductID, transaction.WarehouseID, transaction.Quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "apply receipt effect")
		}
	case enums.TransactionTypeDelivery:
		required := transaction.Quantity.Abs()
		level, err := ledger.GetForUpdate(ctx, transaction.ProductID, transaction.WarehouseID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read ledger")
		}
		available := decimal.Zero
		if level != nil {
			available = level.Quantity
		}
		if level == nil || available.LessThan(required) {
			return insufficientStock(
				fmt.Sprintf("Insufficient stock. Available: %s, Required: %s", available, required),
				available, required,
			)
		}
		if _, err := ledger.ApplyDelta(ctx, transaction.ProductID, transaction.WarehouseID, required.Neg()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "apply delivery effect")
		}
	}
	return nil
}

// revertEffect reverses a previously applied effect when the status leaves
// the effect status. A missing ledger row means there is nothing to reverse.
func (s *service) revertEffect(ctx context.Context, ledger *inventory.Repository, transaction *models.StockTransaction) error {
	level, err := ledger.GetForUpdate(ctx, transaction.ProductID, transaction.WarehouseID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read ledger")
	}
	if level == nil {
		return nil
	}

	switch transaction.TransactionType {
	case enums.TransactionTypeReceipt:
		if _, err := ledger.ApplyDelta(ctx, transaction.ProductID, transaction.WarehouseID, transaction.Quantity.Neg()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revert receipt effect")
		}
	case enums.TransactionTypeDelivery:
		if _, err := ledger.ApplyDelta(ctx, transaction.ProductID, transaction.WarehouseID, transaction.Quantity.Abs()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revert delivery effect")
		}
	}
	return nil
}

func (s *service) ListRecent(ctx context.Context, limit int, txType enums.TransactionType) ([]TransactionHistoryDTO, error) {
	if txType != "" && !txType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type")
	}

	repo := NewRepository(s.db.DB())
	transactions, err := repo.ListRecent(ctx, limit, txType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recent operations")
	}

	result := make([]TransactionHistoryDTO, 0, len(transactions))
	for i := range transactions {
		result = append(result, historyFromModel(&transactions[i]))
	}
	return result, nil
}

func findProduct(ctx context.Context, repo *catalog.Repository, id uuid.UUID) (*models.Product, error) {
	product, err := repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	return product, nil
}

func findWarehouse(ctx context.Context, repo *catalog.Repository, id uuid.UUID) (*models.Warehouse, error) {
	warehouse, err := repo.FindWarehouseByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Warehouse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find warehouse")
	}
	return warehouse, nil
}
