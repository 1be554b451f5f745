package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/indraprashad/Adhikari-tech-solution/internal/config"
	httpx "github.com/indraprashad/Adhikari-tech-solution/internal/http"
	"github.com/indraprashad/Adhikari-tech-solution/internal/http/handlers"
	"github.com/indraprashad/Adhikari-tech-solution/internal/http/middleware"
	"github.com/indraprashad/Adhikari-tech-solution/internal/infrastructure/auth"
	"github.com/indraprashad/Adhikari-tech-solution/internal/infrastructure/database"
	"github.com/indraprashad/Adhikari-tech-solution/internal/services"
)

const (
	shutdownTimeout = 10 * time.Second
	maxLicenseSize  = 10 << 20
)

// Router builds the HTTP handler for a wired container
func Router(c *Container) *gin.Engine {
	cfg := c.Config
	return httpx.BuildRouter(httpx.Routes{
		Auth: handlers.NewAuthHandlers(c.AuthSvc, cfg.GuardWait, c.Log),
		Public: &handlers.PublicHandlers{
			Services:   c.Services,
			Projects:   c.Projects,
			Blogs:      c.Blogs,
			Requests:   c.Requests,
			Dashboard:  c.Dashboard,
			MaxLicense: maxLicenseSize,
			Log:        c.Log,
		},
		Admin: &handlers.AdminHandlers{
			Services:  c.Services,
			Projects:  c.Projects,
			Blogs:     c.Blogs,
			Requests:  c.Requests,
			Profile:   c.Profiles,
			Dashboard: c.Dashboard,
			Log:       c.Log,
		},
		Functions: &handlers.FunctionHandlers{Functions: c.Functions, Log: c.Log},
		Client: middleware.NewClientMW(middleware.CookieOptions{
			Name:   cfg.CookieName,
			Secret: cfg.CookieSecret,
			Secure: cfg.CookieSecure,
			MaxAge: cfg.CookieMaxAge,
		}, c.Sessions, c.Log),
		Guard:  middleware.NewGuardMW(cfg.GuardWait, c.Log),
		Casbin: middleware.NewCasbinMW(c.PolicySvc, c.Log),
		Log:    c.Log,
	})
}

// Run serves until ctx is cancelled, then drains requests and releases every
// session store
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go c.Sessions.RunJanitor(janitorCtx, janitorInterval(cfg.SessionIdleTTL))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           Router(c),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	// open event streams only end once their stores are torn down
	c.Sessions.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Migrate creates the tables and seeds the default access policies
func Migrate(cfg *config.Config, log zerolog.Logger) error {
	db, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(db, cfg.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("failed to load casbin model: %w", err)
	}
	if err := services.NewPolicyService(cas.E).SeedDefaults(); err != nil {
		return err
	}
	log.Info().Msg("database migrated")
	return nil
}
