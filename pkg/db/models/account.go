package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/medicore-health/medicore-backend/pkg/enums"
	"github.com/medicore-health/medicore-backend/pkg/types"
)

// Account represents the canonical identity entity. The password hash never
// leaves the persistence layer; transport shapes live in internal/accounts.
type Account struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Email              string             `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash       string             `gorm:"column:password_hash;not null"`
	Name               string             `gorm:"column:name;not null"`
	Phone              string             `gorm:"column:phone;not null"`
	Role               enums.Role         `gorm:"column:role;type:text;not null;default:'patient'"`
	Permissions        []enums.Capability `gorm:"column:permissions;type:jsonb;serializer:json;not null"`
	DateOfBirth        *time.Time         `gorm:"column:date_of_birth"`
	Address            *types.Address     `gorm:"column:address;type:jsonb;serializer:json"`
	DiagnosticCenterID *string            `gorm:"column:diagnostic_center_id"`
	IsActive           bool               `gorm:"column:is_active;not null;default:false"`
	IsEmailVerified    bool               `gorm:"column:is_email_verified;not null;default:false"`
	OTP                *PendingOTP        `gorm:"column:otp;type:jsonb;serializer:json"`
	LastLoginAt        *time.Time         `gorm:"column:last_login_at"`
	LoginAttempts      int                `gorm:"column:login_attempts;not null;default:0"`
	LockUntil          *time.Time         `gorm:"column:lock_until"`
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// SetRole assigns the role and rederives the permission set. Permissions are
// never accepted from a caller directly.
func (a *Account) SetRole(role enums.Role) {
	a.Role = role
	a.Permissions = role.Permissions()
}

// HasPermission reports whether the account's derived capability set contains
// the given capability.
func (a *Account) HasPermission(capability enums.Capability) bool {
	for _, c := range a.Permissions {
		if c == capability {
			return true
		}
	}
	return false
}

// Loginable reports whether the account may authenticate at all.
func (a *Account) Loginable() bool {
	return a.IsActive && a.IsEmailVerified
}
