package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AuthConfig carries the admin authentication settings. Loaded once at
// startup and treated as immutable; nothing re-reads the environment at
// request time.
type AuthConfig struct {
	Secret string `env:"AUTH_SECRET"`

	// Legacy static-key auth. When enabled, a matching x-admin-key header
	// is accepted as a fully privileged identity. Compatibility shim for
	// non-interactive clients, not a recommended path.
	AllowLegacyKey bool   `env:"ALLOW_LEGACY_ADMIN_KEY, default=false"`
	AdminAPIKey    string `env:"ADMIN_API_KEY"`

	// Bootstrap admin: a fresh deployment self-provisions its first
	// super_admin on the first successful login against this pair.
	BootstrapEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapName     string `env:"BOOTSTRAP_ADMIN_NAME, default=Administrator"`
	BootstrapPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`

	CookieDomain string `env:"COOKIE_DOMAIN"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=clinic_site"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// IsProduction affects cookie attributes (Secure, SameSite=None).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
