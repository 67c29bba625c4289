package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/studentregistry/internal/app/models"
	appRepos "github.com/yigit/studentregistry/internal/app/repositories"
	"github.com/yigit/studentregistry/internal/pkg/apperrors"
	"github.com/yigit/studentregistry/internal/pkg/auth"
)

const (
	defaultAdminEmail   = "admin@studentregistry.local"
	adminPasswordEnvVar = "ADMIN_PASSWORD"
	fallbackAdminSecret = "ChangeMe123"
)

// CreateDefaultData creates the default Admin account when it does not
// exist yet. Without it there is no way to reach the Admin-only routes on a
// fresh database.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default admin account...")

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		return err
	}
	if exists {
		return nil
	}

	password := os.Getenv(adminPasswordEnvVar)
	if password == "" {
		password = fallbackAdminSecret
		lgr.Warn().Str("email", defaultAdminEmail).Msg("ADMIN_PASSWORD not set, seeding admin with the fallback password")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.User{
		Email:     defaultAdminEmail,
		Password:  hashed,
		FirstName: "Registry",
		LastName:  "Admin",
		RoleType:  appModels.RoleAdmin,
		IsActive:  true,
	}

	if _, err := userRepo.CreateUser(ctx, admin); err != nil {
		// A concurrent instance may have seeded first
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}
