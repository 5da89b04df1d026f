// Command admin prepares a database for the account API: it migrates the
// schema, seeds the fixed roles and optionally bootstraps the first admin
// from ADMIN_EMAIL / ADMIN_PASSWORD.
package main

import (
	"context"
	"os"
	"strings"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"account-api/internal/core/config"
	"account-api/internal/core/database"
	"account-api/internal/core/logger"
	"account-api/internal/domain"
	"account-api/internal/repo"
	"account-api/internal/service"
	"account-api/internal/transport/http/ez"
	"account-api/pkg/utils"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       2,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             log,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := repo.Migrate(db); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	svc := service.NewAccountService(
		repo.NewUserRepo(db),
		repo.NewRoleRepo(db),
		utils.NewBcryptHasher(cfg.Security.BcryptCost),
		nil,
		log,
		service.Options{},
	)
	if err := svc.EnsureRoles(ctx, domain.RoleAdmin, domain.RoleUser); err != nil {
		log.Fatal("seed roles", zap.Error(err))
	}

	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	pass := os.Getenv("ADMIN_PASSWORD")
	if email == "" && pass == "" {
		log.Info("ADMIN_EMAIL not set, skipping admin bootstrap")
		return
	}
	if err := validator.New().Var(email, "required,email"); err != nil {
		log.Fatal("ADMIN_EMAIL is not a valid email", zap.String("email", email))
	}
	if !ez.PasswordComplex(pass) {
		log.Fatal(ez.MsgPassword)
	}
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	created, err := svc.BootstrapAdmin(ctx, service.SignUpInput{Email: email, Name: name, Password: pass})
	if err != nil {
		log.Fatal("bootstrap admin", zap.Error(err))
	}
	if created {
		log.Info("admin user seeded", zap.String("email", email))
	} else {
		log.Info("admin user already exists", zap.String("email", email))
	}
}
