package config

import (
	"fmt"
	"net/mail"
	"strings"
)

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	var problems []string
	require := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	require(c.DSN != "", "database.dsn is required")
	require(c.RedisAddr != "", "redis.addr is required")
	require(len(c.JWTSecret) >= 16, "jwt.secret must be at least 16 characters")
	require(len(c.CookieSecret) >= 32, "cookie.secret must be at least 32 characters")
	require(c.AccessTTL > 0 && c.RefreshTTL >= c.AccessTTL, "jwt.refresh_ttl must be at least jwt.access_ttl")
	require(c.GuardWait >= 0, "session.guard_wait must not be negative")
	require(c.AuthTimeout > 0 && c.DataTimeout > 0 && c.StorageTimeout > 0 && c.FunctionTimeout > 0,
		"timeouts must be positive")
	require(c.LicenseBucket != "", "storage.license_bucket is required")
	require(strings.HasPrefix(c.PublicURL, "http://") || strings.HasPrefix(c.PublicURL, "https://"),
		"app.public_url must be an http(s) URL")

	if _, err := mail.ParseAddress(c.AdminEmail); err != nil {
		problems = append(problems, fmt.Sprintf("admin.email is invalid: %v", err))
	}
	if _, err := mail.ParseAddress(c.EmailFrom); err != nil {
		problems = append(problems, fmt.Sprintf("email.from is invalid: %v", err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
