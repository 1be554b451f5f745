package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/config"
	"github.com/indraprashad/Adhikari-tech-solution/internal/functions"
	"github.com/indraprashad/Adhikari-tech-solution/internal/infrastructure/auth"
	"github.com/indraprashad/Adhikari-tech-solution/internal/infrastructure/database"
	"github.com/indraprashad/Adhikari-tech-solution/internal/infrastructure/events"
	"github.com/indraprashad/Adhikari-tech-solution/internal/infrastructure/notifications"
	"github.com/indraprashad/Adhikari-tech-solution/internal/infrastructure/repositories"
	"github.com/indraprashad/Adhikari-tech-solution/internal/infrastructure/storage"
	"github.com/indraprashad/Adhikari-tech-solution/internal/services"
	"github.com/indraprashad/Adhikari-tech-solution/internal/session"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Log    zerolog.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Bus         *events.RedisEventBus
	Storage     *storage.MinioStorage

	// Repositories
	UserRepo     domain.UserRepository
	SessionRepo  domain.SessionRepository
	ProfileRepo  domain.ProfileRepository
	ServiceTable domain.Table[domain.Service]
	ProjectTable domain.Table[domain.Project]
	BlogTable    domain.Table[domain.Blog]
	RequestTable domain.Table[domain.HireRequest]

	// Services
	Email     domain.EmailSender
	SMS       domain.SMSSender
	Functions *functions.Registry
	AuthSvc   *services.AuthServiceImpl
	PolicySvc domain.PolicyService
	Services  *services.ServiceManager
	Projects  *services.ProjectManager
	Blogs     *services.BlogManager
	Requests  *services.HireRequestService
	Profiles  *services.ProfileService
	Dashboard *services.DashboardService

	// Sessions
	Gate     *session.Gate
	Sessions *session.Registry
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	if err := c.initDatabase(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initStorage(ctx); err != nil {
		c.Close()
		return nil, err
	}

	c.initRepositories()

	if err := c.initServices(); err != nil {
		c.Close()
		return nil, err
	}
	c.initSessions()

	return c, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.DB = db

	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	return nil
}

func (c *Container) initRedis(ctx context.Context) error {
	client, err := database.NewRedis(ctx, c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB, c.Config.DataTimeout)
	if err != nil {
		return err
	}
	c.RedisClient = client

	c.Bus = events.NewRedisEventBus(client, c.Log)
	return c.Bus.Start(ctx)
}

func (c *Container) initStorage(ctx context.Context) error {
	s, err := storage.NewMinioStorage(
		c.Config.StorageEndpoint,
		c.Config.StorageAccessKey,
		c.Config.StorageSecretKey,
		c.Config.StorageUseSSL,
		c.Config.StoragePublicURL,
		c.Log,
	)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}
	c.Storage = s

	bucketCtx, cancel := context.WithTimeout(ctx, c.Config.StorageTimeout)
	defer cancel()
	return s.EnsureBucket(bucketCtx, c.Config.LicenseBucket)
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
	c.ProfileRepo = repositories.NewProfileRepository(c.DB)
	c.ServiceTable = repositories.NewServicesTable(c.DB)
	c.ProjectTable = repositories.NewProjectsTable(c.DB)
	c.BlogTable = repositories.NewBlogsTable(c.DB)
	c.RequestTable = repositories.NewHireRequestsTable(c.DB)
}

func (c *Container) initServices() error {
	cfg := c.Config

	c.Email = notifications.NewResendService(cfg.ResendAPIKey, c.Log)
	c.SMS = notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, c.Log)

	c.Functions = functions.NewRegistry(c.Log)
	c.Functions.Register(services.HireNotificationFunction, functions.HireNotification(
		functions.HireNotificationConfig{
			From:       cfg.EmailFrom,
			AdminEmail: cfg.AdminEmail,
			AdminPhone: cfg.AdminPhone,
		},
		c.Email,
		c.SMS,
		c.Log,
	))

	cas, err := auth.NewCasbinService(c.DB, cfg.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("failed to load casbin model: %w", err)
	}
	c.PolicySvc = services.NewPolicyService(cas.E)
	if err := c.PolicySvc.SeedDefaults(); err != nil {
		return err
	}

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		auth.NewPasswordService(),
		auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL, cfg.ConfirmTTL),
		c.Bus,
		c.Email,
		services.AuthConfig{PublicURL: cfg.PublicURL, EmailFrom: cfg.EmailFrom},
		c.Log,
	)

	c.Services = services.NewServiceManager(c.ServiceTable, cfg.DataTimeout, c.Log)
	c.Projects = services.NewProjectManager(c.ProjectTable, cfg.DataTimeout, c.Log)
	c.Blogs = services.NewBlogManager(c.BlogTable, cfg.DataTimeout, c.Log)
	c.Requests = services.NewHireRequestService(
		c.RequestTable,
		c.Storage,
		c.Functions,
		cfg.LicenseBucket,
		services.HireTimeouts{Data: cfg.DataTimeout, Storage: cfg.StorageTimeout, Function: cfg.FunctionTimeout},
		c.Log,
	)
	c.Profiles = services.NewProfileService(c.ProfileRepo, c.AuthSvc, cfg.DataTimeout, c.Log)
	c.Dashboard = services.NewDashboardService(c.ServiceTable, c.ProjectTable, c.BlogTable, c.RequestTable, c.ProfileRepo, cfg.DataTimeout)
	return nil
}

func (c *Container) initSessions() {
	cfg := c.Config
	c.Gate = session.NewGate(c.ProfileRepo, cfg.AdminEmail, c.Log)
	c.Sessions = session.NewRegistry(
		func(clientID string) domain.AuthClient {
			return services.NewAuthClient(c.AuthSvc, c.Bus, clientID, cfg.AuthTimeout, c.Log)
		},
		c.Gate,
		session.Options{FetchTimeout: cfg.AuthTimeout, CheckTimeout: cfg.DataTimeout},
		cfg.SessionIdleTTL,
		c.Log,
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Sessions != nil {
		c.Sessions.Close()
	}
	if c.Bus != nil {
		if err := c.Bus.Close(); err != nil {
			c.Log.Warn().Err(err).Msg("event bus close failed")
		}
	}
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}

// janitorInterval is how often idle session stores are swept
func janitorInterval(idle time.Duration) time.Duration {
	if idle <= 0 {
		return time.Minute
	}
	if i := idle / 4; i > 10*time.Second {
		return i
	}
	return 10 * time.Second
}
