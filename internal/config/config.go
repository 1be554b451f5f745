package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yml"

type AppConfig struct {
	Port      int    `yaml:"port"`
	GinMode   string `yaml:"gin_mode"`
	PublicURL string `yaml:"public_url"`
	LogLevel  string `yaml:"log_level"`
	LogPretty bool   `yaml:"log_pretty"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
	ConfirmTTL string `yaml:"confirm_ttl"`
}

type CookieConfig struct {
	Name   string `yaml:"name"`
	Secret string `yaml:"secret"`
	Secure bool   `yaml:"secure"`
	MaxAge string `yaml:"max_age"`
}

type AdminConfig struct {
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

type SessionConfig struct {
	IdleTTL   string `yaml:"idle_ttl"`
	GuardWait string `yaml:"guard_wait"`
}

type TimeoutConfig struct {
	Auth     string `yaml:"auth"`
	Data     string `yaml:"data"`
	Storage  string `yaml:"storage"`
	Function string `yaml:"function"`
}

type StorageConfig struct {
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	UseSSL        bool   `yaml:"use_ssl"`
	PublicURL     string `yaml:"public_url"`
	LicenseBucket string `yaml:"license_bucket"`
}

type EmailConfig struct {
	ResendAPIKey string `yaml:"resend_api_key"`
	From         string `yaml:"from"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Cookie   CookieConfig   `yaml:"cookie"`
	Admin    AdminConfig    `yaml:"admin"`
	Session  SessionConfig  `yaml:"session"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
	Storage  StorageConfig  `yaml:"storage"`
	Email    EmailConfig    `yaml:"email"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port      string
	GinMode   string
	PublicURL string
	LogLevel  string
	LogPretty bool

	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	JWTIssuer  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ConfirmTTL time.Duration

	CookieName   string
	CookieSecret string
	CookieSecure bool
	CookieMaxAge time.Duration

	AdminEmail string
	AdminPhone string

	SessionIdleTTL time.Duration
	GuardWait      time.Duration

	AuthTimeout     time.Duration
	DataTimeout     time.Duration
	StorageTimeout  time.Duration
	FunctionTimeout time.Duration

	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageUseSSL    bool
	StoragePublicURL string
	LicenseBucket    string

	ResendAPIKey string
	EmailFrom    string

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads .env (if any), the YAML config file and environment overrides
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFile(env("CONFIG_PATH", defaultConfigPath))
}

// LoadFile builds a Config from the given YAML file plus environment overrides
func LoadFile(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	applyDefaults(configFile)

	var d durations
	cfg := &Config{
		Port:      env("PORT", strconv.Itoa(configFile.App.Port)),
		GinMode:   env("GIN_MODE", configFile.App.GinMode),
		PublicURL: env("PUBLIC_URL", configFile.App.PublicURL),
		LogLevel:  env("LOG_LEVEL", configFile.App.LogLevel),
		LogPretty: configFile.App.LogPretty,

		DSN:           env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,

		JWTSecret:  env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:  configFile.JWT.Issuer,
		AccessTTL:  d.parse("jwt.access_ttl", configFile.JWT.AccessTTL),
		RefreshTTL: d.parse("jwt.refresh_ttl", configFile.JWT.RefreshTTL),
		ConfirmTTL: d.parse("jwt.confirm_ttl", configFile.JWT.ConfirmTTL),

		CookieName:   configFile.Cookie.Name,
		CookieSecret: env("COOKIE_SECRET", configFile.Cookie.Secret),
		CookieSecure: configFile.Cookie.Secure,
		CookieMaxAge: d.parse("cookie.max_age", configFile.Cookie.MaxAge),

		AdminEmail: env("ADMIN_EMAIL", configFile.Admin.Email),
		AdminPhone: env("ADMIN_PHONE", configFile.Admin.Phone),

		SessionIdleTTL: d.parse("session.idle_ttl", configFile.Session.IdleTTL),
		GuardWait:      d.parse("session.guard_wait", configFile.Session.GuardWait),

		AuthTimeout:     d.parse("timeouts.auth", configFile.Timeouts.Auth),
		DataTimeout:     d.parse("timeouts.data", configFile.Timeouts.Data),
		StorageTimeout:  d.parse("timeouts.storage", configFile.Timeouts.Storage),
		FunctionTimeout: d.parse("timeouts.function", configFile.Timeouts.Function),

		StorageEndpoint:  env("STORAGE_ENDPOINT", configFile.Storage.Endpoint),
		StorageAccessKey: env("STORAGE_ACCESS_KEY", configFile.Storage.AccessKey),
		StorageSecretKey: env("STORAGE_SECRET_KEY", configFile.Storage.SecretKey),
		StorageUseSSL:    configFile.Storage.UseSSL,
		StoragePublicURL: env("STORAGE_PUBLIC_URL", configFile.Storage.PublicURL),
		LicenseBucket:    configFile.Storage.LicenseBucket,

		ResendAPIKey: env("RESEND_API_KEY", configFile.Email.ResendAPIKey),
		EmailFrom:    configFile.Email.From,

		TwilioSID:   env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken: env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:  env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),

		CasbinModelPath: configFile.Casbin.ModelPath,
	}
	if d.err != nil {
		return nil, d.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func applyDefaults(f *ConfigFile) {
	setDefault := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	if f.App.Port == 0 {
		f.App.Port = 8080
	}
	setDefault(&f.App.GinMode, "release")
	setDefault(&f.App.PublicURL, "http://localhost:8080")
	setDefault(&f.App.LogLevel, "info")
	setDefault(&f.JWT.Issuer, "portfoliosvc")
	setDefault(&f.JWT.AccessTTL, "1h")
	setDefault(&f.JWT.RefreshTTL, "168h")
	setDefault(&f.JWT.ConfirmTTL, "24h")
	setDefault(&f.Cookie.Name, "portfolio_client")
	setDefault(&f.Cookie.MaxAge, "720h")
	setDefault(&f.Admin.Email, "indraprashadsharma4@gmail.com")
	setDefault(&f.Session.IdleTTL, "30m")
	setDefault(&f.Session.GuardWait, "2s")
	setDefault(&f.Timeouts.Auth, "5s")
	setDefault(&f.Timeouts.Data, "5s")
	setDefault(&f.Timeouts.Storage, "30s")
	setDefault(&f.Timeouts.Function, "15s")
	setDefault(&f.Storage.LicenseBucket, "company-licenses")
	setDefault(&f.Email.From, "Adhikari Tech <onboarding@resend.dev>")
	setDefault(&f.Casbin.ModelPath, "config/rbac_model.conf")
}

// durations parses a run of duration fields and keeps the first error
type durations struct{ err error }

func (d *durations) parse(field, value string) time.Duration {
	if d.err != nil {
		return 0
	}
	v, err := time.ParseDuration(value)
	if err != nil {
		d.err = fmt.Errorf("invalid %s: %w", field, err)
		return 0
	}
	return v
}
