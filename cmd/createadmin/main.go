// Command createadmin provisions an organization and its first admin user
// from environment variables. Running it twice is harmless.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"brinquedos-backend/internal/config"
	"brinquedos-backend/internal/logger"
	"brinquedos-backend/internal/repository/postgres"
	"brinquedos-backend/internal/security"
	"brinquedos-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("createadmin requires the postgres driver, got %q", cfg.Database.Driver)
	}

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	email := os.Getenv("ADMIN_EMAIL")
	orgName := os.Getenv("ADMIN_ORG_NAME")
	if username == "" || password == "" || orgName == "" {
		log.Fatalf("ADMIN_USERNAME, ADMIN_PASSWORD and ADMIN_ORG_NAME must be set")
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatalf("Failed to migrate: %v", err)
		}
	}

	store := postgres.NewStore(db)
	tokens := security.NewTokenManager(cfg.JWT.Secret, time.Minute, time.Minute)
	authSvc := service.NewAuthService(store.UserRepository, store.OrganizationRepository, tokens)

	user, created, err := authSvc.ProvisionAdmin(ctx, orgName, username, email, password)
	if err != nil {
		logger.Error("Failed to provision admin", "username", username, "error", err)
		log.Fatalf("Failed to provision admin: %v", err)
	}
	if !created {
		logger.Info("Admin user already exists", "username", user.Username, "org_id", user.OrgID)
		return
	}
	logger.Info("Admin user created", "username", user.Username, "user_id", user.ID, "org_id", user.OrgID)
}
