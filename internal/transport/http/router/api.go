package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"account-api/internal/core/server"
	"account-api/internal/transport/http/handler"
	mdw "account-api/internal/transport/http/middleware"
	resp "account-api/internal/transport/http/response"
)

// Check is a readiness probe for one dependency.
type Check func(ctx context.Context) error

type Limits struct {
	MaxBodyBytes   int64
	MaxInFlight    int64
	HandlerTimeout time.Duration
}

type Deps struct {
	Log      *zap.Logger
	Accounts handler.Accounts
	Tokens   mdw.TokenVerifier
	Limits   Limits
	// Ready maps dependency names to probes run by /ready.
	Ready map[string]Check
	// CloseAdminSignup drops the anonymous /auth/signup route.
	CloseAdminSignup bool
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log)
	r.Use(
		mdw.RequestID(),
		mdw.ConcurrencyLimit(d.Limits.MaxInFlight),
		mdw.MaxBodyBytes(d.Limits.MaxBodyBytes),
		mdw.Timeout(d.Limits.HandlerTimeout),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)
	r.NoRoute(func(c *gin.Context) { resp.Abort(c, http.StatusNotFound, "") })

	r.GET("/health", func(c *gin.Context) {
		resp.JSON(c, resp.New(http.StatusOK, "ok", nil))
	})
	r.GET("/ready", readiness(d.Log, d.Ready))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	mountAll(api, mdw.Authenticate(d.Tokens),
		handler.NewAuthHandler(d.Accounts, !d.CloseAdminSignup),
		handler.NewUserHandler(d.Accounts),
		handler.NewAdminHandler(d.Accounts),
	)
	return r
}

func readiness(l *zap.Logger, checks map[string]Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		failed := map[string]string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				l.Warn("readiness check failed", zap.String("dep", name), zap.Error(err))
				failed[name] = "down"
			}
		}
		if len(failed) > 0 {
			resp.JSON(c, resp.New(http.StatusServiceUnavailable, "not ready", failed))
			return
		}
		resp.JSON(c, resp.New(http.StatusOK, "ready", nil))
	}
}
