package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/medicore-health/medicore-backend/internal/accounts"
	"github.com/medicore-health/medicore-backend/internal/auth"
	"github.com/medicore-health/medicore-backend/pkg/config"
	pkgerrors "github.com/medicore-health/medicore-backend/pkg/errors"
	"github.com/medicore-health/medicore-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, auth.RegisterRequest) (*auth.RegisterResponse, error) {
	return &auth.RegisterResponse{Message: "ok"}, nil
}

func (stubAuthService) VerifyRegistration(context.Context, auth.VerifyOTPRequest) (*auth.VerifyRegistrationResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeOTPInvalid, "invalid or expired otp")
}

func (stubAuthService) ResendOTP(context.Context, auth.ResendOTPRequest) (*auth.ResendOTPResponse, error) {
	return &auth.ResendOTPResponse{Message: "ok"}, nil
}

func (stubAuthService) ForgotPassword(context.Context, auth.ForgotPasswordRequest) (*auth.ForgotPasswordResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found or not verified")
}

func (stubAuthService) VerifyPasswordResetOTP(context.Context, auth.VerifyOTPRequest) (*auth.VerifyPasswordResetResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeOTPInvalid, "invalid or expired otp")
}

func (stubAuthService) ResetPassword(context.Context, auth.ResetPasswordRequest) (*auth.ResetPasswordResponse, error) {
	return &auth.ResetPasswordResponse{Message: "ok"}, nil
}

func (stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (stubAuthService) Profile(context.Context, uuid.UUID) (*accounts.AccountDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "medicore-test",
			ExpirationMinutes: 60,
		},
	}
	logg := logger.New(logger.Options{ServiceName: "router-test"})
	return NewRouter(cfg, logg, stubPinger{}, nil, stubAuthService{}, nil)
}

func TestRouterPublicSurface(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/health/live", "/api/public/ping"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestRouterProfileRequiresAuth(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}
}

func TestRouterLoginMapsServiceError(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"ghost@example.com","password":"whatever"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 from stubbed login, got %d", rec.Code)
	}
}

func TestRouterRejectsMalformedBody(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}
