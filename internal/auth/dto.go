package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/medicore-health/medicore-backend/internal/accounts"
	"github.com/medicore-health/medicore-backend/pkg/types"
)

// RegisterRequest captures the registration payload. Role is optional and
// defaults to patient.
type RegisterRequest struct {
	Name               string         `json:"name" validate:"required"`
	Email              string         `json:"email" validate:"required,email"`
	Password           string         `json:"password" validate:"required,min=6"`
	Phone              string         `json:"phone" validate:"required"`
	Role               string         `json:"role,omitempty"`
	DateOfBirth        *time.Time     `json:"date_of_birth,omitempty"`
	Address            *types.Address `json:"address,omitempty"`
	DiagnosticCenterID *string        `json:"diagnostic_center_id,omitempty"`
}

// RegisterResponse tells the caller where to send the verification code.
type RegisterResponse struct {
	Message   string    `json:"message"`
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
}

// VerifyOTPRequest carries an account id plus the candidate code. Used by both
// the registration and password-reset verification endpoints.
type VerifyOTPRequest struct {
	AccountID uuid.UUID `json:"account_id" validate:"required"`
	OTP       string    `json:"otp" validate:"required,len=6,numeric"`
}

// VerifyRegistrationResponse returns the minted session after activation.
type VerifyRegistrationResponse struct {
	Message string               `json:"message"`
	Token   string               `json:"token"`
	Account *accounts.AccountDTO `json:"account"`
}

// ResendOTPRequest asks for a fresh code of the given purpose.
type ResendOTPRequest struct {
	AccountID uuid.UUID `json:"account_id" validate:"required"`
	Purpose   string    `json:"purpose" validate:"required"`
}

// ResendOTPResponse acknowledges the re-dispatch.
type ResendOTPResponse struct {
	Message string `json:"message"`
}

// ForgotPasswordRequest starts the password recovery flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse returns the account id the reset flow continues with.
type ForgotPasswordResponse struct {
	Message   string    `json:"message"`
	AccountID uuid.UUID `json:"account_id"`
}

// VerifyPasswordResetResponse authorizes the caller to proceed to reset.
type VerifyPasswordResetResponse struct {
	Message   string    `json:"message"`
	AccountID uuid.UUID `json:"account_id"`
}

// ResetPasswordRequest replaces the credential after OTP verification.
type ResetPasswordRequest struct {
	AccountID   uuid.UUID `json:"account_id" validate:"required"`
	NewPassword string    `json:"new_password" validate:"required,min=6"`
}

// ResetPasswordResponse acknowledges the replacement.
type ResetPasswordResponse struct {
	Message string `json:"message"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the session token and sanitized account.
type LoginResponse struct {
	Message string               `json:"message"`
	Token   string               `json:"token"`
	Account *accounts.AccountDTO `json:"account"`
}
