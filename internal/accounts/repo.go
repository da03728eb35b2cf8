package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/medicore-health/medicore-backend/pkg/db"
	"github.com/medicore-health/medicore-backend/pkg/db/models"
	"github.com/medicore-health/medicore-backend/pkg/enums"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateEmail signals a violated email uniqueness invariant on save.
var ErrDuplicateEmail = errors.New("accounts: duplicate email")

// Repository exposes account persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an accounts repo bound to the provided GORM DB.
// Pass a transaction handle to participate in an enclosing transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail retrieves the account matching the provided (normalized) email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acct models.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&acct).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

// FindByID loads an account by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var acct models.Account
	if err := r.db.WithContext(ctx).First(&acct, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

// FindByEmailLocked retrieves the account row under SELECT ... FOR UPDATE so
// read-modify-write sequences serialize per account. Must run inside a
// transaction.
func (r *Repository) FindByEmailLocked(ctx context.Context, email string) (*models.Account, error) {
	var acct models.Account
	if err := r.lockedQuery(ctx).Where("email = ?", email).First(&acct).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

// FindByIDLocked is FindByID with a row lock; see FindByEmailLocked.
func (r *Repository) FindByIDLocked(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var acct models.Account
	if err := r.lockedQuery(ctx).First(&acct, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *Repository) lockedQuery(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	// sqlite has no FOR UPDATE; its single-writer model serializes writes.
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// Save persists the full account record and returns the post-save state. A
// violated email uniqueness constraint surfaces as ErrDuplicateEmail.
func (r *Repository) Save(ctx context.Context, acct *models.Account) (*models.Account, error) {
	if acct.ID == uuid.Nil {
		acct.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Save(acct).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return acct, nil
}

// UpdateLastLogin refreshes the account's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// FindAnyByRole returns one account holding the given role, if any exists.
func (r *Repository) FindAnyByRole(ctx context.Context, role enums.Role) (*models.Account, error) {
	var acct models.Account
	if err := r.db.WithContext(ctx).Where("role = ?", role).First(&acct).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}
