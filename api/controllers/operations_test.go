package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockmasterhq/stockmaster-backend/internal/operations"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
)

type stubOperationsService struct {
	resp   *operations.OperationResponse
	recent []operations.TransactionHistoryDTO
	err    error

	gotTransactionID uuid.UUID
	gotLimit         int
	gotType          enums.TransactionType
}

func (s *stubOperationsService) CreateReceipt(ctx context.Context, req operations.ReceiptRequest) (*operations.OperationResponse, error) {
	return s.resp, s.err
}

func (s *stubOperationsService) CreateDelivery(ctx context.Context, req operations.DeliveryRequest) (*operations.OperationResponse, error) {
	return s.resp, s.err
}

func (s *stubOperationsService) CreateTransfer(ctx context.Context, req operations.TransferRequest) (*operations.OperationResponse, error) {
	return s.resp, s.err
}

func (s *stubOperationsService) CreateAdjustment(ctx context.Context, req operations.AdjustmentRequest) (*operations.OperationResponse, error) {
	return s.resp, s.err
}

func (s *stubOperationsService) UpdateTransactionStatus(ctx context.Context, id uuid.UUID, req operations.StatusUpdateRequest) (*operations.OperationResponse, error) {
	s.gotTransactionID = id
	return s.resp, s.err
}

func (s *stubOperationsService) ListRecent(ctx context.Context, limit int, txType enums.TransactionType) ([]operations.TransactionHistoryDTO, error) {
	s.gotLimit = limit
	s.gotType = txType
	return s.recent, s.err
}

func TestCreateReceiptControllerSuccess(t *testing.T) {
	stub := &stubOperationsService{resp: &operations.OperationResponse{
		Success:       true,
		Message:       "Receipt created with status: COMPLETED. Inventory increased by 10 pcs",
		TransactionID: uuid.New(),
		NewQuantity:   decimal.NewFromInt(10),
	}}
	handler := CreateReceipt(stub, nil)

	payload := `{"product_id":"` + uuid.NewString() + `","warehouse_id":"` + uuid.NewString() + `","quantity":"10","supplier_name":"Acme Supply","status":"COMPLETED"}`
	req := httptest.NewRequest(http.MethodPost, "/operations/receipts/", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data operations.OperationResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Success {
		t.Fatal("expected success payload")
	}
	if envelope.Data.Message != stub.resp.Message {
		t.Fatalf("unexpected message %q", envelope.Data.Message)
	}
}

func TestCreateReceiptControllerRejectsMissingFields(t *testing.T) {
	handler := CreateReceipt(&stubOperationsService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/operations/receipts/", bytes.NewReader([]byte(`{"quantity":"10"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCreateDeliveryControllerMapsInsufficientStock(t *testing.T) {
	stub := &stubOperationsService{err: pkgerrors.New(pkgerrors.CodeInsufficientStock, "Insufficient stock. Available: 10, Requested: 15")}
	handler := CreateDelivery(stub, nil)

	payload := `{"product_id":"` + uuid.NewString() + `","warehouse_id":"` + uuid.NewString() + `","quantity":"15","customer_name":"Globex","status":"SHIPPED"}`
	req := httptest.NewRequest(http.MethodPost, "/operations/deliveries/", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeInsufficientStock) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
	if envelope.Error.Message != "Insufficient stock. Available: 10, Requested: 15" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestUpdateOperationStatusControllerParsesPathID(t *testing.T) {
	transactionID := uuid.New()
	stub := &stubOperationsService{resp: &operations.OperationResponse{
		Success:       true,
		Message:       "Status updated from ORDER_PLACED to COMPLETED",
		TransactionID: transactionID,
		NewQuantity:   decimal.NewFromInt(10),
	}}

	router := chi.NewRouter()
	router.Patch("/operations/{transactionId}/status", UpdateOperationStatus(stub, nil))

	req := httptest.NewRequest(http.MethodPatch, "/operations/"+transactionID.String()+"/status", bytes.NewReader([]byte(`{"status":"COMPLETED"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.gotTransactionID != transactionID {
		t.Fatalf("expected service call with %s got %s", transactionID, stub.gotTransactionID)
	}
}

func TestUpdateOperationStatusControllerRejectsBadUUID(t *testing.T) {
	router := chi.NewRouter()
	router.Patch("/operations/{transactionId}/status", UpdateOperationStatus(&stubOperationsService{}, nil))

	req := httptest.NewRequest(http.MethodPatch, "/operations/not-a-uuid/status", bytes.NewReader([]byte(`{"status":"COMPLETED"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRecentOperationsControllerDefaultsLimit(t *testing.T) {
	stub := &stubOperationsService{recent: []operations.TransactionHistoryDTO{}}
	handler := RecentOperations(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/operations/recent/", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.gotLimit != defaultRecentLimit {
		t.Fatalf("expected default limit %d got %d", defaultRecentLimit, stub.gotLimit)
	}
}

func TestRecentOperationsControllerPassesTypeFilter(t *testing.T) {
	stub := &stubOperationsService{recent: []operations.TransactionHistoryDTO{}}
	handler := RecentOperations(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/operations/recent/?transaction_type=receipt", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.gotType != enums.TransactionTypeReceipt {
		t.Fatalf("expected receipt filter got %q", stub.gotType)
	}
}

func TestRecentOperationsControllerRejectsUnknownType(t *testing.T) {
	handler := RecentOperations(&stubOperationsService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/operations/recent/?transaction_type=refund", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRecentOperationsControllerRejectsBadLimit(t *testing.T) {
	handler := RecentOperations(&stubOperationsService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/operations/recent/?limit=abc", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
