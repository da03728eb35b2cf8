package accounts

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/medicore-health/medicore-backend/pkg/db/models"
	"github.com/medicore-health/medicore-backend/pkg/enums"
)

const accountsSchema = `
CREATE TABLE IF NOT EXISTS accounts (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'patient',
  permissions TEXT NOT NULL,
  date_of_birth DATETIME,
  address TEXT,
  diagnostic_center_id TEXT,
  is_active INTEGER NOT NULL DEFAULT 0,
  is_email_verified INTEGER NOT NULL DEFAULT 0,
  otp TEXT,
  last_login_at DATETIME,
  login_attempts INTEGER NOT NULL DEFAULT 0,
  lock_until DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`

func setupAccountsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(accountsSchema).Error)
	return conn
}

func testAccount(email string) *models.Account {
	acct := &models.Account{
		Email:        email,
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhash",
		Name:         "Pat Doe",
		Phone:        "+15550100",
	}
	acct.SetRole(enums.RolePatient)
	return acct
}

func TestSaveAssignsIDAndRoundTrips(t *testing.T) {
	conn := setupAccountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	saved, err := repo.Save(ctx, testAccount("pat@example.com"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)

	byEmail, err := repo.FindByEmail(ctx, "pat@example.com")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byEmail.ID)
	assert.Equal(t, enums.RolePatient, byEmail.Role)
	assert.ElementsMatch(t, enums.RolePatient.Permissions(), byEmail.Permissions)

	byID, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", byID.Email)
}

func TestSaveDuplicateEmailSurfacesTypedError(t *testing.T) {
	conn := setupAccountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	_, err := repo.Save(ctx, testAccount("pat@example.com"))
	require.NoError(t, err)

	_, err = repo.Save(ctx, testAccount("pat@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSavePersistsOTPDocument(t *testing.T) {
	conn := setupAccountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	acct := testAccount("pat@example.com")
	expiry := time.Now().UTC().Add(10 * time.Minute).Truncate(time.Second)
	acct.OTP = &models.PendingOTP{
		Code:      "123456",
		ExpiresAt: expiry,
		Purpose:   enums.OTPPurposeRegistration,
	}

	saved, err := repo.Save(ctx, acct)
	require.NoError(t, err)

	loaded, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.OTP)
	assert.Equal(t, "123456", loaded.OTP.Code)
	assert.Equal(t, enums.OTPPurposeRegistration, loaded.OTP.Purpose)
	assert.True(t, expiry.Equal(loaded.OTP.ExpiresAt.Truncate(time.Second)))
}

func TestSaveClearsOTPDocument(t *testing.T) {
	conn := setupAccountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	acct := testAccount("pat@example.com")
	acct.OTP = &models.PendingOTP{
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(10 * time.Minute),
		Purpose:   enums.OTPPurposeRegistration,
	}
	saved, err := repo.Save(ctx, acct)
	require.NoError(t, err)

	saved.OTP = nil
	_, err = repo.Save(ctx, saved)
	require.NoError(t, err)

	loaded, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.OTP)
}

func TestLockedFindsWorkWithoutPostgres(t *testing.T) {
	conn := setupAccountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	saved, err := repo.Save(ctx, testAccount("pat@example.com"))
	require.NoError(t, err)

	byEmail, err := repo.FindByEmailLocked(ctx, "pat@example.com")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byEmail.ID)

	byID, err := repo.FindByIDLocked(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Email, byID.Email)
}

func TestUpdateLastLogin(t *testing.T) {
	conn := setupAccountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	saved, err := repo.Save(ctx, testAccount("pat@example.com"))
	require.NoError(t, err)
	require.Nil(t, saved.LastLoginAt)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, saved.ID, at))

	loaded, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.LastLoginAt)
	assert.True(t, at.Equal(loaded.LastLoginAt.Truncate(time.Second)))
}

func TestFindAnyByRole(t *testing.T) {
	conn := setupAccountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	_, err := repo.FindAnyByRole(ctx, enums.RoleSuperAdmin)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	admin := testAccount("root@example.com")
	admin.SetRole(enums.RoleSuperAdmin)
	_, err = repo.Save(ctx, admin)
	require.NoError(t, err)

	found, err := repo.FindAnyByRole(ctx, enums.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", found.Email)
}
