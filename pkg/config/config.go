package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	Password      PasswordConfig
	ResetToken    ResetTokenConfig
	AuthRateLimit AuthRateLimitConfig
	Uploads       UploadsConfig
	Proxy         ProxyConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"ARONTEC_APP_ENV" required:"true"`
	Port         string   `envconfig:"ARONTEC_APP_PORT" default:"5001"`
	LogLevel     string   `envconfig:"ARONTEC_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"ARONTEC_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"ARONTEC_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ARONTEC_DB_DSN"`
	Driver string `envconfig:"ARONTEC_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ARONTEC_DB_HOST"`
	LegacyPort     int    `envconfig:"ARONTEC_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ARONTEC_DB_USER"`
	LegacyPassword string `envconfig:"ARONTEC_DB_PASSWORD"`
	LegacyName     string `envconfig:"ARONTEC_DB_NAME"`
	LegacySSLMode  string `envconfig:"ARONTEC_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ARONTEC_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ARONTEC_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ARONTEC_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ARONTEC_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a postgres DSN from the discrete host variables when no
// explicit DSN was provided.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either ARONTEC_DB_DSN or ARONTEC_DB_HOST/USER/NAME must be set")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.LegacyUser, d.LegacyPassword),
		Host:   fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:   d.LegacyName,
	}
	q := u.Query()
	q.Set("sslmode", d.LegacySSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"ARONTEC_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ARONTEC_REDIS_ADDR"`
	Password     string        `envconfig:"ARONTEC_REDIS_PASSWORD"`
	DB           int           `envconfig:"ARONTEC_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ARONTEC_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ARONTEC_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ARONTEC_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ARONTEC_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ARONTEC_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	CookieName string        `envconfig:"ARONTEC_SESSION_COOKIE" default:"arontec_session"`
	TTL        time.Duration `envconfig:"ARONTEC_SESSION_TTL" default:"24h"`
	Secure     bool          `envconfig:"ARONTEC_SESSION_SECURE" default:"false"`
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"ARONTEC_BCRYPT_COST" default:"10"`
}

type ResetTokenConfig struct {
	Secret string        `envconfig:"ARONTEC_RESET_TOKEN_SECRET" required:"true"`
	TTL    time.Duration `envconfig:"ARONTEC_RESET_TOKEN_TTL" default:"15m"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"ARONTEC_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"ARONTEC_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"ARONTEC_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"ARONTEC_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"ARONTEC_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"ARONTEC_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"10"`
}

type UploadsConfig struct {
	Dir         string `envconfig:"ARONTEC_UPLOADS_DIR" default:"uploads"`
	PublicPath  string `envconfig:"ARONTEC_UPLOADS_PUBLIC_PATH" default:"/uploads"`
	MaxSizeByte int64  `envconfig:"ARONTEC_UPLOADS_MAX_SIZE" default:"5242880"`
}

type ProxyConfig struct {
	FetchTimeout time.Duration `envconfig:"ARONTEC_PROXY_FETCH_TIMEOUT" default:"15s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ARONTEC_AUTO_MIGRATE" default:"false"`
}
