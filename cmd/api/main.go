package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"account-api/internal/core/auth"
	"account-api/internal/core/cache"
	"account-api/internal/core/config"
	"account-api/internal/core/database"
	"account-api/internal/core/logger"
	"account-api/internal/core/server"
	"account-api/internal/repo"
	"account-api/internal/service"
	"account-api/internal/transport/http/router"
	"account-api/pkg/utils"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		// logger is not up yet
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, cleanup := newLogger(cfg)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))
	if cfg.DB.AutoMigrate {
		if err := repo.Migrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()

	ready := map[string]router.Check{"db": sqlDB.PingContext}
	opts := service.Options{}
	if cfg.Redis.Enabled() {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer c.Close()
		opts = service.Options{Cache: c, CacheTTL: cfg.Redis.TTL()}
		ready["redis"] = c.Ping
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	jwter := auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	jwter.Leeway = cfg.JWT.Leeway()

	accounts := service.NewAccountService(
		repo.NewUserRepo(db),
		repo.NewRoleRepo(db),
		utils.NewBcryptHasher(cfg.Security.BcryptCost),
		jwter,
		log,
		opts,
	)

	h := cfg.App.HTTP
	engine := router.NewAPIEngine(router.Deps{
		Log:      log,
		Accounts: accounts,
		Tokens:   jwter,
		Limits: router.Limits{
			MaxBodyBytes:   h.MaxBodyBytes,
			MaxInFlight:    h.MaxInFlight,
			HandlerTimeout: time.Duration(h.HandlerTimeout) * time.Second,
		},
		Ready:            ready,
		CloseAdminSignup: !cfg.Security.AdminSignup,
	})

	srv := server.BuildServer(
		server.Addr(h.Host, h.Port), engine,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)
	srv.ErrorLog, _ = zap.NewStdLogAt(log, zapcore.WarnLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	log.Info("account api starting", zap.String("env", cfg.App.Env), zap.String("addr", srv.Addr))
	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("account api stopped with error", zap.Error(err))
		return
	}
	log.Info("account api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	r := cfg.Log.Rotate
	if !r.Enable {
		return logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Filename:   r.Filename,
		MaxSizeMB:  r.MaxSizeMB,
		MaxBackups: r.MaxBackups,
		MaxAgeDays: r.MaxAgeDays,
		Compress:   r.Compress,
	})
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		LogWriter:          logger.ToWriter(l.Named("gorm"), zapcore.InfoLevel),
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
