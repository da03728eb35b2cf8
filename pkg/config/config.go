package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	SMTP          SMTPConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	SuperAdmin    SuperAdminConfig
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
	Env          string `envconfig:"MEDICORE_APP_ENV" required:"true"`
	Port         string `envconfig:"MEDICORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MEDICORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MEDICORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MEDICORE_DB_DSN"`
	Driver string `envconfig:"MEDICORE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MEDICORE_DB_HOST"`
	LegacyPort     int    `envconfig:"MEDICORE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MEDICORE_DB_USER"`
	LegacyPassword string `envconfig:"MEDICORE_DB_PASSWORD"`
	LegacyName     string `envconfig:"MEDICORE_DB_NAME"`
	LegacySSLMode  string `envconfig:"MEDICORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MEDICORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MEDICORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MEDICORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MEDICORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MEDICORE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MEDICORE_REDIS_ADDR"`
	Password     string        `envconfig:"MEDICORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"MEDICORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MEDICORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MEDICORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MEDICORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MEDICORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MEDICORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig drives the session token issuer. Tokens carry a single identity
// claim and expire an absolute duration after issuance; there is no refresh.
type JWTConfig struct {
	Secret            string `envconfig:"MEDICORE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MEDICORE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MEDICORE_JWT_EXPIRATION_MINUTES" default:"43200"`
}

// TTL returns the configured token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type SMTPConfig struct {
	Host        string        `envconfig:"MEDICORE_SMTP_HOST" required:"true"`
	Port        string        `envconfig:"MEDICORE_SMTP_PORT" default:"465"`
	Username    string        `envconfig:"MEDICORE_SMTP_USERNAME" required:"true"`
	Password    string        `envconfig:"MEDICORE_SMTP_PASSWORD" required:"true"`
	From        string        `envconfig:"MEDICORE_SMTP_FROM"`
	SendTimeout time.Duration `envconfig:"MEDICORE_SMTP_SEND_TIMEOUT" default:"10s"`
}

// Sender returns the From address, falling back to the SMTP username.
func (s SMTPConfig) Sender() string {
	if strings.TrimSpace(s.From) != "" {
		return s.From
	}
	return s.Username
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MEDICORE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"MEDICORE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MEDICORE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MEDICORE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"MEDICORE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MEDICORE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MEDICORE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MEDICORE_AUTO_MIGRATE" default:"false"`
}

// SuperAdminConfig seeds the bootstrap account created by cmd/seed-superadmin.
type SuperAdminConfig struct {
	Email    string `envconfig:"MEDICORE_SUPERADMIN_EMAIL" default:"superadmin@medicore.health"`
	Password string `envconfig:"MEDICORE_SUPERADMIN_PASSWORD"`
	Name     string `envconfig:"MEDICORE_SUPERADMIN_NAME" default:"Super Administrator"`
	Phone    string `envconfig:"MEDICORE_SUPERADMIN_PHONE" default:"+1234567890"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
