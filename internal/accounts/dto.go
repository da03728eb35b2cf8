package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/medicore-health/medicore-backend/pkg/db/models"
	"github.com/medicore-health/medicore-backend/pkg/enums"
	"github.com/medicore-health/medicore-backend/pkg/types"
)

// AccountDTO is the transport shape that omits credentials and OTP state.
type AccountDTO struct {
	ID                 uuid.UUID          `json:"id"`
	Email              string             `json:"email"`
	Name               string             `json:"name"`
	Phone              string             `json:"phone"`
	Role               enums.Role         `json:"role"`
	Permissions        []enums.Capability `json:"permissions"`
	DateOfBirth        *time.Time         `json:"date_of_birth,omitempty"`
	Address            *types.Address     `json:"address,omitempty"`
	DiagnosticCenterID *string            `json:"diagnostic_center_id,omitempty"`
	IsActive           bool               `json:"is_active"`
	IsEmailVerified    bool               `json:"is_email_verified"`
	LastLoginAt        *time.Time         `json:"last_login_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// FromModel converts the persistence record into its transport shape.
func FromModel(a *models.Account) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{
		ID:                 a.ID,
		Email:              a.Email,
		Name:               a.Name,
		Phone:              a.Phone,
		Role:               a.Role,
		Permissions:        append([]enums.Capability(nil), a.Permissions...),
		DateOfBirth:        a.DateOfBirth,
		Address:            a.Address,
		DiagnosticCenterID: a.DiagnosticCenterID,
		IsActive:           a.IsActive,
		IsEmailVerified:    a.IsEmailVerified,
		LastLoginAt:        a.LastLoginAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
