package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/medicore-health/medicore-backend/internal/accounts"
	"github.com/medicore-health/medicore-backend/pkg/config"
	"github.com/medicore-health/medicore-backend/pkg/db"
	"github.com/medicore-health/medicore-backend/pkg/db/models"
	"github.com/medicore-health/medicore-backend/pkg/enums"
	"github.com/medicore-health/medicore-backend/pkg/logger"
	"github.com/medicore-health/medicore-backend/pkg/security"
)

// Seeds the bootstrap super admin. Idempotent: exits cleanly when any super
// admin account already exists.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed-superadmin"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed-superadmin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.SuperAdmin.Password == "" {
		logg.Error(ctx, "superadmin password is required", nil)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if cfg.FeatureFlags.UseSQLite {
		// sqlite dev databases are schemaless until seeded; goose only
		// targets postgres.
		if err := dbClient.DB().AutoMigrate(&models.Account{}); err != nil {
			logg.Error(ctx, "failed to migrate sqlite schema", err)
			os.Exit(1)
		}
	}

	repo := accounts.NewRepository(dbClient.DB())

	existing, err := repo.FindAnyByRole(ctx, enums.RoleSuperAdmin)
	if err == nil {
		ctx = logg.WithFields(ctx, map[string]any{"email": existing.Email})
		logg.Info(ctx, "super admin already exists, nothing to do")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logg.Error(ctx, "failed to check for existing super admin", err)
		os.Exit(1)
	}

	passwordHash, err := security.HashPassword(cfg.SuperAdmin.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	acct := &models.Account{
		Email:           cfg.SuperAdmin.Email,
		PasswordHash:    passwordHash,
		Name:            cfg.SuperAdmin.Name,
		Phone:           cfg.SuperAdmin.Phone,
		IsActive:        true,
		IsEmailVerified: true,
	}
	acct.SetRole(enums.RoleSuperAdmin)

	if _, err := repo.Save(ctx, acct); err != nil {
		logg.Error(ctx, "failed to create super admin", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"email": acct.Email,
		"id":    acct.ID.String(),
	})
	logg.Info(ctx, "super admin created")
}
