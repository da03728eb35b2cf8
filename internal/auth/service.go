package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/medicore-health/medicore-backend/internal/accounts"
	pkgAuth "github.com/medicore-health/medicore-backend/pkg/auth"
	"github.com/medicore-health/medicore-backend/pkg/config"
	"github.com/medicore-health/medicore-backend/pkg/db"
	"github.com/medicore-health/medicore-backend/pkg/db/models"
	"github.com/medicore-health/medicore-backend/pkg/enums"
	pkgerrors "github.com/medicore-health/medicore-backend/pkg/errors"
	"github.com/medicore-health/medicore-backend/pkg/mailer"
	"github.com/medicore-health/medicore-backend/pkg/metrics"
	"github.com/medicore-health/medicore-backend/pkg/security"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service owns every account state transition: registration, activation,
// login, and password recovery.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	VerifyRegistration(ctx context.Context, req VerifyOTPRequest) (*VerifyRegistrationResponse, error)
	ResendOTP(ctx context.Context, req ResendOTPRequest) (*ResendOTPResponse, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*ForgotPasswordResponse, error)
	VerifyPasswordResetOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyPasswordResetResponse, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (*ResetPasswordResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Profile(ctx context.Context, accountID uuid.UUID) (*accounts.AccountDTO, error)
}

type service struct {
	db      *db.Client
	mail    mailer.Dispatcher
	jwtCfg  config.JWTConfig
	metrics *metrics.AuthMetrics
}

// ServiceParams bundles the dependencies required to build the auth service.
type ServiceParams struct {
	DB        *db.Client
	Mail      mailer.Dispatcher
	JWTConfig config.JWTConfig
	Metrics   *metrics.AuthMetrics
}

// NewService constructs the lifecycle service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.Mail == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "mail dispatcher required")
	}
	return &service{
		db:      params.DB,
		mail:    params.Mail,
		jwtCfg:  params.JWTConfig,
		metrics: params.Metrics,
	}, nil
}

// Register creates a pending account (or overwrites an unverified one for the
// same email) and dispatches a registration OTP. The persisted OTP is not
// rolled back when dispatch fails; the caller retries and the stale code is
// overwritten cleanly.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(req.Password) < security.MinPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 6 characters long")
	}

	role := enums.RolePatient
	if strings.TrimSpace(req.Role) != "" {
		parsed, err := enums.ParseRole(req.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		role = parsed
	}

	passwordHash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var acct *models.Account
	var code string
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := accounts.NewRepository(tx)

		existing, err := repo.FindByEmailLocked(ctx, email)
		switch {
		case err == nil && existing.IsEmailVerified:
			return pkgerrors.New(pkgerrors.CodeConflict, "account already exists with this email")
		case err == nil:
			// Unverified duplicate: same identity, profile overwritten in
			// place. No second row is created.
			acct = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			acct = &models.Account{Email: email, IsActive: false, IsEmailVerified: false}
		default:
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account")
		}

		acct.Name = strings.TrimSpace(req.Name)
		acct.PasswordHash = passwordHash
		acct.Phone = strings.TrimSpace(req.Phone)
		acct.DateOfBirth = req.DateOfBirth
		acct.Address = req.Address
		acct.DiagnosticCenterID = req.DiagnosticCenterID
		acct.SetRole(role)

		code, err = s.issueOTP(acct, enums.OTPPurposeRegistration)
		if err != nil {
			return err
		}

		if acct, err = repo.Save(ctx, acct); err != nil {
			if errors.Is(err, accounts.ErrDuplicateEmail) {
				return pkgerrors.New(pkgerrors.CodeConflict, "account already exists with this email")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save account")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.dispatchOTP(ctx, acct.Email, enums.OTPPurposeRegistration, code); err != nil {
		return nil, err
	}

	return &RegisterResponse{
		Message:   "OTP sent to your email. Please verify to complete registration.",
		AccountID: acct.ID,
		Email:     acct.Email,
	}, nil
}

// VerifyRegistration consumes a registration OTP and activates the account.
// Activation and the OTP clear commit atomically, so the code is single-use.
func (s *service) VerifyRegistration(ctx context.Context, req VerifyOTPRequest) (*VerifyRegistrationResponse, error) {
	var acct *models.Account
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := accounts.NewRepository(tx)

		found, err := repo.FindByIDLocked(ctx, req.AccountID)
		if err != nil {
			return notFoundOr(err, "account not found")
		}

		if err := s.checkOTP(found, enums.OTPPurposeRegistration, req.OTP); err != nil {
			return err
		}

		found.IsEmailVerified = true
		found.IsActive = true
		found.OTP = nil
		if acct, err = repo.Save(ctx, found); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save account")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := pkgAuth.MintSessionToken(s.jwtCfg, time.Now().UTC(), acct.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &VerifyRegistrationResponse{
		Message: "Registration completed successfully",
		Token:   token,
		Account: accounts.FromModel(acct),
	}, nil
}

// ResendOTP unconditionally issues a fresh code for the requested purpose,
// superseding whatever was pending, and re-dispatches it.
func (s *service) ResendOTP(ctx context.Context, req ResendOTPRequest) (*ResendOTPResponse, error) {
	purpose, err := enums.ParseOTPPurpose(req.Purpose)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid otp purpose")
	}

	var acct *models.Account
	var code string
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := accounts.NewRepository(tx)

		found, err := repo.FindByIDLocked(ctx, req.AccountID)
		if err != nil {
			return notFoundOr(err, "account not found")
		}

		if code, err = s.issueOTP(found, purpose); err != nil {
			return err
		}
		if acct, err = repo.Save(ctx, found); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save account")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.dispatchOTP(ctx, acct.Email, purpose, code); err != nil {
		return nil, err
	}

	return &ResendOTPResponse{Message: "OTP resent successfully"}, nil
}

// ForgotPassword issues a password_reset OTP for an activated account. The
// path intentionally reveals whether an eligible account exists.
func (s *service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*ForgotPasswordResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	var acct *models.Account
	var code string
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := accounts.NewRepository(tx)

		found, err := repo.FindByEmailLocked(ctx, email)
		if err != nil {
			return notFoundOr(err, "account not found or not verified")
		}
		if !found.Loginable() {
			return pkgerrors.New(pkgerrors.CodeNotFound, "account not found or not verified")
		}

		if code, err = s.issueOTP(found, enums.OTPPurposePasswordReset); err != nil {
			return err
		}
		if acct, err = repo.Save(ctx, found); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save account")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.dispatchOTP(ctx, acct.Email, enums.OTPPurposePasswordReset, code); err != nil {
		return nil, err
	}

	return &ForgotPasswordResponse{
		Message:   "OTP sent to your email for password reset.",
		AccountID: acct.ID,
	}, nil
}

// VerifyPasswordResetOTP checks the code without consuming it: the OTP stays
// valid until the reset step executes, which clears it unconditionally.
func (s *service) VerifyPasswordResetOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyPasswordResetResponse, error) {
	repo := accounts.NewRepository(s.db.DB())

	acct, err := repo.FindByID(ctx, req.AccountID)
	if err != nil {
		return nil, notFoundOr(err, "account not found")
	}

	if err := s.checkOTP(acct, enums.OTPPurposePasswordReset, req.OTP); err != nil {
		return nil, err
	}

	return &VerifyPasswordResetResponse{
		Message:   "OTP verified successfully. You can now reset your password.",
		AccountID: acct.ID,
	}, nil
}

// ResetPassword replaces the credential and clears any pending OTP. The clear
// is unconditional so a code consumed by the prior verify step cannot linger.
func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*ResetPasswordResponse, error) {
	if len(req.NewPassword) < security.MinPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 6 characters long")
	}

	passwordHash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := accounts.NewRepository(tx)

		acct, err := repo.FindByIDLocked(ctx, req.AccountID)
		if err != nil {
			return notFoundOr(err, "account not found")
		}

		acct.PasswordHash = passwordHash
		acct.OTP = nil
		if _, err := repo.Save(ctx, acct); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save account")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ResetPasswordResponse{
		Message: "Password reset successfully. You can now login with your new password.",
	}, nil
}

// Login authenticates an activated account. Unknown email, wrong password,
// unverified email, and inactive account are indistinguishable from the
// response alone.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	repo := accounts.NewRepository(s.db.DB())

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, s.loginFailure(pkgerrors.New(pkgerrors.CodeValidation, "email and password are required"))
	}

	acct, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.loginFailure(pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage))
		}
		return nil, s.loginFailure(pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account"))
	}

	valid, err := security.VerifyPassword(req.Password, acct.PasswordHash)
	if err != nil {
		return nil, s.loginFailure(pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password"))
	}
	if !valid || !acct.Loginable() {
		return nil, s.loginFailure(pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage))
	}

	now := time.Now().UTC()
	if err := repo.UpdateLastLogin(ctx, acct.ID, now); err != nil {
		return nil, s.loginFailure(pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login"))
	}
	acct.LastLoginAt = &now

	token, err := pkgAuth.MintSessionToken(s.jwtCfg, now, acct.ID)
	if err != nil {
		return nil, s.loginFailure(pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt"))
	}

	s.metrics.IncLogin("success")
	return &LoginResponse{
		Message: "Login successful",
		Token:   token,
		Account: accounts.FromModel(acct),
	}, nil
}

// Profile returns the sanitized account for an authenticated caller.
func (s *service) Profile(ctx context.Context, accountID uuid.UUID) (*accounts.AccountDTO, error) {
	repo := accounts.NewRepository(s.db.DB())

	acct, err := repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, notFoundOr(err, "account not found")
	}
	return accounts.FromModel(acct), nil
}

// issueOTP attaches a fresh pending code to the account, replacing any prior
// one regardless of purpose.
func (s *service) issueOTP(acct *models.Account, purpose enums.OTPPurpose) (string, error) {
	code, err := security.GenerateOTP()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}
	acct.OTP = &models.PendingOTP{
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(security.OTPTTL),
		Purpose:   purpose,
	}
	s.metrics.IncOTPIssued(purpose.String())
	return code, nil
}

// checkOTP validates purpose and code without mutating anything. A failed
// check leaves the pending OTP intact so the user may retry until expiry.
func (s *service) checkOTP(acct *models.Account, purpose enums.OTPPurpose, candidate string) error {
	if !acct.OTP.For(purpose) {
		s.metrics.IncOTPVerification(purpose.String(), "wrong_purpose")
		return pkgerrors.New(pkgerrors.CodeOTPInvalid, "invalid otp type")
	}
	if !acct.OTP.Matches(candidate, time.Now().UTC()) {
		s.metrics.IncOTPVerification(purpose.String(), "failure")
		return pkgerrors.New(pkgerrors.CodeOTPInvalid, "invalid or expired otp")
	}
	s.metrics.IncOTPVerification(purpose.String(), "success")
	return nil
}

// dispatchOTP mails the code synchronously. Failures surface as a retryable
// dependency error; the already-persisted OTP stays in place.
func (s *service) dispatchOTP(ctx context.Context, email string, purpose enums.OTPPurpose, code string) error {
	subject, body := otpEmail(purpose, code)
	if err := s.mail.Send(ctx, email, subject, body); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to send otp email")
	}
	return nil
}

func (s *service) loginFailure(err *pkgerrors.Error) error {
	s.metrics.IncLogin("failure")
	return err
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account")
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
