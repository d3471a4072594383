package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Session policy defaults. The envDefault tags below must stay in sync with these.
const (
	DefaultAccessTokenTTL      = 30 * time.Minute
	// DefaultRefreshTokenTTL of zero issues refresh tokens without an exp claim.
	DefaultRefreshTokenTTL     = time.Duration(0)
	DefaultBcryptCost          = 10
	DefaultRefreshCookieMaxAge = 7 * 24 * time.Hour
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Log      LogConfig
	Postgres PostgresConfig
	Avatar   AvatarConfig
}

type ServerConfig struct {
	Addr           string   `env:"HTTP_ADDR" envDefault:":8080"`
	GinMode        string   `env:"GIN_MODE" envDefault:"release"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	StoreDriver    string   `env:"STORE_DRIVER" envDefault:"postgres"`
}

type AuthConfig struct {
	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"30m"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"0s"`
	BcryptCost         int           `env:"BCRYPT_COST" envDefault:"10"`

	CookieMaxAge   time.Duration `env:"AUTH_COOKIE_MAX_AGE" envDefault:"168h"`
	CookiePath     string        `env:"AUTH_COOKIE_PATH" envDefault:"/"`
	CookieDomain   string        `env:"AUTH_COOKIE_DOMAIN"`
	CookieSecure   bool          `env:"AUTH_COOKIE_SECURE" envDefault:"true"`
	CookieSameSite string        `env:"AUTH_COOKIE_SAMESITE" envDefault:"lax"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type PostgresConfig struct {
	DatabaseURL string `env:"DATABASE_URL"`
	Host        string `env:"PGHOST" envDefault:"localhost"`
	Port        string `env:"PGPORT" envDefault:"5432"`
	User        string `env:"PGUSER"`
	Password    string `env:"PGPASSWORD"`
	Database    string `env:"PGDATABASE"`
	SSLMode     string `env:"PGSSLMODE" envDefault:"disable"`
}

// AvatarConfig points at an S3-compatible bucket (AWS S3, MinIO).
// Avatar uploads are disabled while Bucket is empty.
type AvatarConfig struct {
	Bucket        string `env:"AVATAR_S3_BUCKET"`
	Region        string `env:"AVATAR_S3_REGION" envDefault:"us-east-1"`
	Endpoint      string `env:"AVATAR_S3_ENDPOINT"`
	AccessKey     string `env:"AVATAR_S3_ACCESS_KEY"`
	SecretKey     string `env:"AVATAR_S3_SECRET_KEY"`
	PublicBaseURL string `env:"AVATAR_PUBLIC_BASE_URL"`
	MaxBytes      int64  `env:"AVATAR_MAX_BYTES" envDefault:"5242880"`
}

// Load reads an optional .env file and then parses the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
