package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/stockmasterhq/stockmaster-backend/api/middleware"
	"github.com/stockmasterhq/stockmaster-backend/internal/auth"
	"github.com/stockmasterhq/stockmaster-backend/internal/users"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
)

type stubAuthService struct {
	user   *users.UserDTO
	login  *auth.LoginResponse
	forgot *auth.ForgotPasswordResponse
	reset  *auth.ResetPasswordResponse
	err    error
}

func (s stubAuthService) Signup(ctx context.Context, req auth.SignupRequest) (*users.UserDTO, error) {
	return s.user, s.err
}

func (s stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.login, s.err
}

func (s stubAuthService) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) (*auth.ForgotPasswordResponse, error) {
	return s.forgot, s.err
}

func (s stubAuthService) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) (*auth.ResetPasswordResponse, error) {
	return s.reset, s.err
}

func (s stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return s.user, s.err
}

func TestAuthSignupSuccess(t *testing.T) {
	user := &users.UserDTO{
		ID:       uuid.New(),
		Email:    "ops@example.com",
		FullName: "Ops Person",
		Role:     enums.UserRoleStaff,
	}
	handler := AuthSignup(stubAuthService{user: user}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader([]byte(`{"email":"ops@example.com","password":"supersecret","full_name":"Ops Person"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data *users.UserDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data == nil || envelope.Data.Email != user.Email {
		t.Fatalf("expected user in payload got %+v", envelope.Data)
	}
}

func TestAuthSignupShortPassword(t *testing.T) {
	handler := AuthSignup(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader([]byte(`{"email":"ops@example.com","password":"short","full_name":"Ops Person"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginSuccess(t *testing.T) {
	login := &auth.LoginResponse{
		AccessToken:  "access-token",
		TokenType:    "bearer",
		RefreshToken: "refresh-token",
		User:         &users.UserDTO{ID: uuid.New(), Email: "ops@example.com"},
	}
	handler := AuthLogin(stubAuthService{login: login}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{"email":"ops@example.com","password":"supersecret"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access-token" || envelope.Data.TokenType != "bearer" {
		t.Fatalf("unexpected login payload %+v", envelope.Data)
	}
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	handler := AuthLogin(stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{"email":"ops@example.com","password":"wrongpass"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthForgotPasswordAlwaysSucceeds(t *testing.T) {
	handler := AuthForgotPassword(stubAuthService{forgot: &auth.ForgotPasswordResponse{
		Message: "If the email exists, a reset code has been sent",
	}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/forgot-password", bytes.NewReader([]byte(`{"email":"whoever@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAuthResetPasswordRejectsShortOTP(t *testing.T) {
	handler := AuthResetPassword(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/reset-password", bytes.NewReader([]byte(`{"email":"ops@example.com","otp":"12","new_password":"supersecret"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthMeRequiresUserContext(t *testing.T) {
	handler := AuthMe(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthMeReturnsProfile(t *testing.T) {
	user := &users.UserDTO{ID: uuid.New(), Email: "ops@example.com", Role: enums.UserRoleManager}
	handler := AuthMe(stubAuthService{user: user}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), user.ID.String()))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data *users.UserDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data == nil || envelope.Data.ID != user.ID {
		t.Fatalf("expected profile in payload got %+v", envelope.Data)
	}
}
