package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farhxn/foodcourt-backend/api/middleware"
	"github.com/farhxn/foodcourt-backend/internal/auth"
	"github.com/farhxn/foodcourt-backend/internal/cart"
	"github.com/farhxn/foodcourt-backend/internal/users"
	pkgerrors "github.com/farhxn/foodcourt-backend/pkg/errors"
)

type stubAuthService struct {
	loginFn   func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error)
	refreshFn func(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error)
	logoutFn  func(ctx context.Context, accessID string) error
	profileFn func(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.loginFn(ctx, req)
}

func (s *stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return s.refreshFn(ctx, req)
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	return s.logoutFn(ctx, accessID)
}

func (s *stubAuthService) Profile(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return s.profileFn(ctx, userID)
}

type stubRegisterService struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error)
}

func (s *stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return s.registerFn(ctx, req)
}

func TestAuthRegisterCreatesUser(t *testing.T) {
	svc := &stubRegisterService{registerFn: func(_ context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
		return &users.UserDTO{ID: uuid.New(), Name: req.Name, Email: req.Email}, nil
	}}
	handler := AuthRegister(svc, nil)

	body := `{"name":"Jamie Rivera","email":"jamie@example.com","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthRegisterValidatesBody(t *testing.T) {
	svc := &stubRegisterService{registerFn: func(context.Context, auth.RegisterRequest) (*users.UserDTO, error) {
		t.Fatal("service should not be reached")
		return nil, nil
	}}
	handler := AuthRegister(svc, nil)

	body := `{"name":"Jamie Rivera","email":"not-an-email","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAuthLoginReturnsTokenPair(t *testing.T) {
	svc := &stubAuthService{loginFn: func(_ context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
		if req.Email != "jamie@example.com" {
			t.Fatalf("unexpected email %s", req.Email)
		}
		return &auth.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
	}}
	handler := AuthLogin(svc, nil)

	body := `{"email":"jamie@example.com","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access" || envelope.Data.RefreshToken != "refresh" {
		t.Fatalf("unexpected token pair %+v", envelope.Data)
	}
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginFn: func(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}}
	handler := AuthLogin(svc, nil)

	body := `{"email":"jamie@example.com","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	var revoked string
	svc := &stubAuthService{logoutFn: func(_ context.Context, accessID string) error {
		revoked = accessID
		return nil
	}}
	carts := cart.NewRegistry()
	carts.SessionFor("user-7").With(func(c *cart.Store) {
		c.AddItem(cart.Item{MenuItemID: "item-1", Name: "Pizza", Price: decimal.NewFromInt(20), Quantity: 1})
	})
	handler := AuthLogout(svc, carts, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	ctx := middleware.WithAccessID(req.Context(), "jti-9")
	ctx = middleware.WithUserID(ctx, "user-7")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if revoked != "jti-9" {
		t.Fatalf("expected revoke of jti-9 got %q", revoked)
	}
	if carts.SessionFor("user-7").TotalItems() != 0 {
		t.Fatal("logout should drop the user's cart session")
	}
}

func TestUsersMeRequiresContext(t *testing.T) {
	svc := &stubAuthService{profileFn: func(context.Context, uuid.UUID) (*users.UserDTO, error) {
		t.Fatal("service should not be reached")
		return nil, nil
	}}
	handler := UsersMe(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
