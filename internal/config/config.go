// Package config carga la configuración desde variables de entorno.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"

	AuthLocal    = "local"
	AuthSupabase = "supabase"
	AuthDev      = "dev"
)

// Config agrupa toda la configuración del servicio.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Storage   StorageConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Analytics AnalyticsConfig
	Seed      SeedConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT,default=8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT,default=15s"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT,default=5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT,default=20s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	// Lista separada por comas; "*" permite cualquier origen.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS,default=*"`

	// Solo activar detrás de un proxy que pise X-Forwarded-For / X-Real-IP.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS,default=false"`
}

type LogConfig struct {
	Level   string `env:"LOG_LEVEL,default=info"`
	Format  string `env:"LOG_FORMAT,default=text"`
	AppName string `env:"APP_NAME,default=pet-marketplace"`
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER,default=memory"`

	DSN     string `env:"DB_DSN"`
	Migrate bool   `env:"DB_MIGRATE,default=true"`

	RedisAddr      string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB,default=0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX,default=petmarket:"`
}

type AuthConfig struct {
	Provider string `env:"AUTH_PROVIDER,default=local"`

	JWTSecret string        `env:"AUTH_JWT_SECRET"`
	TokenTTL  time.Duration `env:"AUTH_TOKEN_TTL,default=24h"`

	SupabaseURL            string `env:"SUPABASE_URL"`
	SupabaseAnonKey        string `env:"SUPABASE_ANON_KEY"`
	SupabaseServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`
	SupabaseJWTSecret      string `env:"SUPABASE_JWT_SECRET"`
}

// RateLimitConfig aplica a /auth/signup y /auth/signin, por IP.
type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS,default=5"`
	Burst int     `env:"RATE_LIMIT_BURST,default=10"`
}

type AnalyticsConfig struct {
	Timezone string `env:"ANALYTICS_TIMEZONE,default=UTC"`
}

type SeedConfig struct {
	DemoData        bool   `env:"SEED_DEMO_DATA,default=false"`
	EndpointEnabled bool   `env:"SEED_ENDPOINT_ENABLED,default=false"`
	File            string `env:"SEED_FILE"`
}

// Load decodifica el entorno y valida combinaciones.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("config: decode env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Auth.Provider = strings.ToLower(strings.TrimSpace(c.Auth.Provider))

	if strings.ContainsAny(c.Server.Port, " \t") {
		return fmt.Errorf("config: invalid PORT value: %q", c.Server.Port)
	}

	switch c.Storage.Driver {
	case StorageMemory, StorageRedis:
	case StoragePostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return errors.New("config: DB_DSN is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Auth.Provider {
	case AuthDev:
	case AuthLocal:
		if strings.TrimSpace(c.Auth.JWTSecret) == "" {
			return errors.New("config: AUTH_JWT_SECRET is required when AUTH_PROVIDER=local")
		}
	case AuthSupabase:
		if strings.TrimSpace(c.Auth.SupabaseURL) == "" || strings.TrimSpace(c.Auth.SupabaseAnonKey) == "" {
			return errors.New("config: SUPABASE_URL and SUPABASE_ANON_KEY are required when AUTH_PROVIDER=supabase")
		}
	default:
		return fmt.Errorf("config: unknown AUTH_PROVIDER %q", c.Auth.Provider)
	}

	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return errors.New("config: rate limit values must be >= 0")
	}

	if _, err := c.Analytics.Location(); err != nil {
		return err
	}
	return nil
}

// Addr devuelve la dirección de escucha. Acepta "8080", ":8080" o "127.0.0.1:8080".
func (s ServerConfig) Addr() string {
	port := strings.TrimSpace(s.Port)
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// AllowedOrigins parte CORS_ALLOWED_ORIGINS por comas.
func (s ServerConfig) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(s.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (a AnalyticsConfig) Location() (*time.Location, error) {
	tz := strings.TrimSpace(a.Timezone)
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("config: invalid ANALYTICS_TIMEZONE %q: %w", tz, err)
	}
	return loc, nil
}
