// Command seed installs the permission catalogue and the default roles.
// Running it again only fills in what is missing and re-syncs role permissions.
//
// Set SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD to also create an admin user.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"go-applicant-tracker/config"
	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/internal/repository/postgres"
	"go-applicant-tracker/migrations"
	"go-applicant-tracker/pkg/auth"
	"go-applicant-tracker/pkg/database"
	"go-applicant-tracker/pkg/logger"

	"go.uber.org/zap"
)

// applicantPermissions are granted to self-registered users.
var applicantPermissions = []string{domain.PermAssessmentCreate}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if _, err := database.NewMigrator(db, migrations.FS).Up(ctx); err != nil {
		logger.Log.Fatal("Migration failed", zap.Error(err))
	}

	roles := postgres.NewRoleRepository(db)
	users := postgres.NewUserRepository(db)

	ids := make(map[string]int64)
	for _, name := range domain.AllPermissions() {
		id, err := roles.EnsurePermission(ctx, name)
		if err != nil {
			logger.Log.Fatal("Failed to seed permission", zap.String("permission", name), zap.Error(err))
		}
		ids[name] = id
	}
	logger.Log.Info("Permissions seeded", zap.Int("count", len(ids)))

	all := make([]int64, 0, len(ids))
	for _, name := range domain.AllPermissions() {
		all = append(all, ids[name])
	}
	applicant := make([]int64, 0, len(applicantPermissions))
	for _, name := range applicantPermissions {
		applicant = append(applicant, ids[name])
	}

	adminRole, err := ensureRole(ctx, roles, domain.RoleAdmin, all)
	if err != nil {
		logger.Log.Fatal("Failed to seed role", zap.String("role", domain.RoleAdmin), zap.Error(err))
	}
	if _, err := ensureRole(ctx, roles, domain.RoleApplicant, applicant); err != nil {
		logger.Log.Fatal("Failed to seed role", zap.String("role", domain.RoleApplicant), zap.Error(err))
	}

	email, password := os.Getenv("SEED_ADMIN_EMAIL"), os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	if err := ensureAdmin(ctx, users, adminRole.ID, email, password); err != nil {
		logger.Log.Fatal("Failed to seed admin user", zap.Error(err))
	}
}

func ensureRole(ctx context.Context, roles domain.RoleRepository, name string, permissionIDs []int64) (*domain.Role, error) {
	role, err := roles.GetByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		role = &domain.Role{Name: name}
		if err := roles.Create(ctx, role, permissionIDs); err != nil {
			return nil, err
		}
		logger.Log.Info("Role created", zap.String("role", name))
	case err != nil:
		return nil, err
	default:
		if err := roles.Update(ctx, role, permissionIDs); err != nil {
			return nil, err
		}
		logger.Log.Info("Role permissions synced", zap.String("role", name))
	}
	return role, nil
}

func ensureAdmin(ctx context.Context, users domain.UserRepository, roleID int64, email, password string) error {
	if _, err := users.GetByEmail(ctx, email); err == nil {
		logger.Log.Info("Admin user already exists", zap.String("email", email))
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	username := "admin"
	user := &domain.User{Name: "Administrator", Username: &username, Email: email, PasswordHash: hash}
	if err := users.CreateWithRole(ctx, user, roleID); err != nil {
		return err
	}
	logger.Log.Info("Admin user created", zap.Int64("user_id", user.ID))
	return nil
}
