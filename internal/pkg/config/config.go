package config

import (
	"fmt"
	"time"
	// Embedded zone data so BUSINESS_TIMEZONE resolves in slim images.
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	Redis       RedisConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	Cookie      CookieConfig
	CashCut     CashCutConfig
	Idempotency IdempotencyConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"America/Mexico_City"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Prefix   string `envconfig:"REDIS_KEY_PREFIX" default:"pos"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,If-None-Match"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,ETag,Retry-After,Idempotent-Replayed"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Mexico_City"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-21600"` // -6*60*60
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"12h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAMESITE" default:"Lax"`
}

type CashCutConfig struct {
	// postgres | file
	Store            string        `envconfig:"CASHCUT_STORE" default:"postgres"`
	FilePath         string        `envconfig:"CASHCUT_FILE_PATH" default:"data/cash_cuts.json"`
	KeyBucket        time.Duration `envconfig:"CASHCUT_KEY_BUCKET" default:"1m"`
	WaitTimeout      time.Duration `envconfig:"CASHCUT_WAIT_TIMEOUT" default:"10s"`
	OperationTimeout time.Duration `envconfig:"CASHCUT_OPERATION_TIMEOUT" default:"30s"`
	RecentTTL        time.Duration `envconfig:"CASHCUT_RECENT_TTL" default:"5m"`
	InflightGrace    time.Duration `envconfig:"CASHCUT_INFLIGHT_GRACE" default:"30s"`
	ScheduleInterval time.Duration `envconfig:"CASHCUT_SCHEDULE_INTERVAL" default:"0"`
	SystemOperatorID string        `envconfig:"SYSTEM_OPERATOR_ID" default:"00000000-0000-0000-0000-000000000001"`
	BusinessTimeZone string        `envconfig:"BUSINESS_TIMEZONE" default:"America/Mexico_City"`
	TopProducts      int           `envconfig:"CASHCUT_TOP_PRODUCTS" default:"5"`
}

type IdempotencyConfig struct {
	// postgres | redis
	Backend       string        `envconfig:"IDEMPOTENCY_BACKEND" default:"postgres"`
	TTL           time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
	SweepInterval time.Duration `envconfig:"IDEMPOTENCY_SWEEP_INTERVAL" default:"1h"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Location resolves BusinessTimeZone. LoadConfig rejects unknown names, so the
// UTC fallback only applies to hand-built configs.
func (c CashCutConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.BusinessTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.CashCut.Store {
	case "postgres", "file":
	default:
		return fmt.Errorf("invalid CASHCUT_STORE %q: want postgres or file", c.CashCut.Store)
	}
	switch c.Idempotency.Backend {
	case "postgres", "redis":
	default:
		return fmt.Errorf("invalid IDEMPOTENCY_BACKEND %q: want postgres or redis", c.Idempotency.Backend)
	}
	for _, v := range []struct {
		name string
		d    time.Duration
	}{
		{"CASHCUT_KEY_BUCKET", c.CashCut.KeyBucket},
		{"CASHCUT_WAIT_TIMEOUT", c.CashCut.WaitTimeout},
		{"CASHCUT_OPERATION_TIMEOUT", c.CashCut.OperationTimeout},
	} {
		if v.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", v.name, v.d)
		}
	}
	if _, err := time.LoadLocation(c.CashCut.BusinessTimeZone); err != nil {
		return fmt.Errorf("invalid BUSINESS_TIMEZONE %q: %w", c.CashCut.BusinessTimeZone, err)
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret-please-change",
			Duration: time.Hour,
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		CashCut: CashCutConfig{
			Store:            "postgres",
			KeyBucket:        time.Minute,
			WaitTimeout:      2 * time.Second,
			OperationTimeout: 5 * time.Second,
			RecentTTL:        time.Minute,
			InflightGrace:    time.Second,
			SystemOperatorID: "00000000-0000-0000-0000-000000000001",
			BusinessTimeZone: "UTC",
			TopProducts:      5,
		},
		Idempotency: IdempotencyConfig{
			Backend:       "postgres",
			TTL:           24 * time.Hour,
			SweepInterval: time.Hour,
		},
	}
}
