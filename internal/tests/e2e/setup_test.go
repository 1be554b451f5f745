package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/app"
	"github.com/indraprashad/Adhikari-tech-solution/internal/config"
	"github.com/indraprashad/Adhikari-tech-solution/internal/functions"
	"github.com/indraprashad/Adhikari-tech-solution/internal/infrastructure/auth"
	"github.com/indraprashad/Adhikari-tech-solution/internal/infrastructure/database"
	"github.com/indraprashad/Adhikari-tech-solution/internal/infrastructure/events"
	"github.com/indraprashad/Adhikari-tech-solution/internal/infrastructure/repositories"
	"github.com/indraprashad/Adhikari-tech-solution/internal/mocks"
	"github.com/indraprashad/Adhikari-tech-solution/internal/services"
	"github.com/indraprashad/Adhikari-tech-solution/internal/session"
)

const (
	adminEmail   = "owner@example.com"
	testPassword = "correct-horse-battery"
)

// TestSuite holds one in-process deployment: sqlite for tables, miniredis for
// sessions and auth events, mocks for email, SMS and object storage
type TestSuite struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *miniredis.Miniredis
	Container *app.Container
	Server    *httptest.Server

	Email   *mocks.MockEmailSender
	SMS     *mocks.MockSMSSender
	Storage *mocks.MockFileStorage
}

func testConfig() *config.Config {
	return &config.Config{
		PublicURL:       "http://portfolio.test",
		JWTSecret:       "e2e-secret-that-is-long-enough-0123",
		JWTIssuer:       "portfoliosvc-e2e",
		AccessTTL:       time.Hour,
		RefreshTTL:      24 * time.Hour,
		ConfirmTTL:      time.Hour,
		CookieName:      "portfolio_client",
		CookieSecret:    "e2e-cookie-secret-0123456789abcdef",
		CookieMaxAge:    time.Hour,
		AdminEmail:      adminEmail,
		AdminPhone:      "+9779800000000",
		SessionIdleTTL:  time.Hour,
		GuardWait:       2 * time.Second,
		AuthTimeout:     2 * time.Second,
		DataTimeout:     2 * time.Second,
		StorageTimeout:  2 * time.Second,
		FunctionTimeout: 2 * time.Second,
		LicenseBucket:   "company-licenses",
		EmailFrom:       "Adhikari Tech <onboarding@resend.dev>",
		CasbinModelPath: "../../../config/rbac_model.conf",
	}
}

// SetupTestSuite wires the same container the server builds, on test backends
func SetupTestSuite(t *testing.T) *TestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	log := zerolog.Nop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	// Every pooled connection would get its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	bus := events.NewRedisEventBus(rdb, log)
	require.NoError(t, bus.Start(context.Background()))

	s := &TestSuite{
		Config:  cfg,
		DB:      db,
		Redis:   mr,
		Email:   mocks.NewMockEmailSender(),
		SMS:     mocks.NewMockSMSSender(),
		Storage: mocks.NewMockFileStorage(),
	}

	c := &app.Container{
		Config:       cfg,
		Log:          log,
		DB:           db,
		RedisClient:  rdb,
		Bus:          bus,
		UserRepo:     repositories.NewUserRepository(db),
		SessionRepo:  repositories.NewSessionRepository(rdb, cfg.RefreshTTL),
		ProfileRepo:  repositories.NewProfileRepository(db),
		ServiceTable: repositories.NewServicesTable(db),
		ProjectTable: repositories.NewProjectsTable(db),
		BlogTable:    repositories.NewBlogsTable(db),
		RequestTable: repositories.NewHireRequestsTable(db),
		Email:        s.Email,
		SMS:          s.SMS,
	}

	c.Functions = functions.NewRegistry(log)
	c.Functions.Register(services.HireNotificationFunction, functions.HireNotification(
		functions.HireNotificationConfig{From: cfg.EmailFrom, AdminEmail: cfg.AdminEmail, AdminPhone: cfg.AdminPhone},
		c.Email, c.SMS, log,
	))

	cas, err := auth.NewCasbinService(db, cfg.CasbinModelPath)
	require.NoError(t, err)
	c.PolicySvc = services.NewPolicyService(cas.E)
	require.NoError(t, c.PolicySvc.SeedDefaults())

	c.AuthSvc = services.NewAuthService(
		c.UserRepo, c.SessionRepo,
		auth.NewPasswordServiceWithCost(bcrypt.MinCost),
		auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL, cfg.ConfirmTTL),
		bus, c.Email,
		services.AuthConfig{PublicURL: cfg.PublicURL, EmailFrom: cfg.EmailFrom},
		log,
	)
	c.Services = services.NewServiceManager(c.ServiceTable, cfg.DataTimeout, log)
	c.Projects = services.NewProjectManager(c.ProjectTable, cfg.DataTimeout, log)
	c.Blogs = services.NewBlogManager(c.BlogTable, cfg.DataTimeout, log)
	c.Requests = services.NewHireRequestService(c.RequestTable, s.Storage, c.Functions, cfg.LicenseBucket,
		services.HireTimeouts{Data: cfg.DataTimeout, Storage: cfg.StorageTimeout, Function: cfg.FunctionTimeout}, log)
	c.Profiles = services.NewProfileService(c.ProfileRepo, c.AuthSvc, cfg.DataTimeout, log)
	c.Dashboard = services.NewDashboardService(c.ServiceTable, c.ProjectTable, c.BlogTable, c.RequestTable, c.ProfileRepo, cfg.DataTimeout)

	c.Gate = session.NewGate(c.ProfileRepo, cfg.AdminEmail, log)
	c.Sessions = session.NewRegistry(
		func(clientID string) domain.AuthClient {
			return services.NewAuthClient(c.AuthSvc, bus, clientID, cfg.AuthTimeout, log)
		},
		c.Gate,
		session.Options{FetchTimeout: cfg.AuthTimeout, CheckTimeout: cfg.DataTimeout},
		cfg.SessionIdleTTL,
		log,
	)
	s.Container = c
	s.Server = httptest.NewServer(app.Router(c))

	t.Cleanup(func() {
		s.Server.Close()
		c.Close()
	})
	return s
}

// Visitor is one browser: it keeps its cookie and does not follow redirects
type Visitor struct {
	t      *testing.T
	base   string
	client *http.Client
}

func (s *TestSuite) NewVisitor(t *testing.T) *Visitor {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &Visitor{
		t:    t,
		base: s.Server.URL,
		client: &http.Client{
			Jar:     jar,
			Timeout: 5 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Response is a fully read HTTP response
type Response struct {
	Status   int
	Location string
	Body     string
}

func (v *Visitor) Do(req *http.Request) Response {
	v.t.Helper()
	r, err := v.send(req)
	require.NoError(v.t, err)
	return r
}

// send never fails the test, so it is safe inside Eventually conditions
func (v *Visitor) send(req *http.Request) (Response, error) {
	resp, err := v.client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}
	return Response{Status: resp.StatusCode, Location: resp.Header.Get("Location"), Body: string(body)}, nil
}

func (v *Visitor) poll(path string) (Response, bool) {
	req, err := http.NewRequest(http.MethodGet, v.base+path, nil)
	if err != nil {
		return Response{}, false
	}
	r, err := v.send(req)
	return r, err == nil
}

func (v *Visitor) Get(path string) Response {
	v.t.Helper()
	req, err := http.NewRequest(http.MethodGet, v.base+path, nil)
	require.NoError(v.t, err)
	return v.Do(req)
}

func (v *Visitor) SendJSON(method, path string, body any) Response {
	v.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(v.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, v.base+path, &buf)
	require.NoError(v.t, err)
	req.Header.Set("Content-Type", "application/json")
	return v.Do(req)
}

func (v *Visitor) PostJSON(path string, body any) Response {
	v.t.Helper()
	return v.SendJSON(http.MethodPost, path, body)
}
