package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	NodeID      int64

	LogLevel  string
	LogFormat string

	// OTLPEndpoint enables span export when set.
	OTLPEndpoint string

	Store    StoreConfig
	Catalog  CatalogConfig
	Delivery DeliveryConfig
	Email    EmailConfig

	// ShiftConfigPaths lists directories searched for shift.yml.
	ShiftConfigPaths []string
}

type StoreConfig struct {
	Driver string
	Key    string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
	DBPath     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type CatalogConfig struct {
	URL     string
	MinSize int
	Timeout time.Duration
}

type DeliveryConfig struct {
	Channels    []string
	GracePeriod time.Duration
	ReportURL   string
	ReportTitle string
	SMSNumber   string
	EmailTo     string
	ExportDir   string
	Timeout     time.Duration
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverMySQL    = "mysql"
	StoreDriverRedis    = "redis"
)

// DefaultChannels is the delivery order used when DELIVERY_CHANNELS is unset.
var DefaultChannels = []string{"upload", "document", "pdf", "csv", "sms"}

var Module = fx.Module("config",
	fx.Provide(Load, NewShiftConfigHolder),
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	timeout := getenvDuration("HTTP_CLIENT_TIMEOUT", 15*time.Second)

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "shiftcount"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		NodeID:      getenvInt64("NODE_ID", 1),
		LogLevel:    strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL", "info"))),
		LogFormat:   strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT", "json"))),
		Store: StoreConfig{
			Driver:        normalizeDriver(getenv("STORE_DRIVER", StoreDriverSQLite)),
			Key:           getenv("STORE_KEY", "products"),
			DBHost:        getenv("DATABASE_HOST", "localhost"),
			DBPort:        getenv("DATABASE_PORT", "5432"),
			DBName:        getenv("DATABASE_NAME", "shiftcount"),
			DBUser:        getenv("DATABASE_USER", "postgres"),
			DBPassword:    getenv("DATABASE_PASSWORD", ""),
			DBSSLMode:     getenv("DATABASE_SSLMODE", "disable"),
			DBPath:        getenv("DATABASE_PATH", "shiftcount.db"),
			RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getenv("REDIS_PASSWORD", ""),
			RedisDB:       int(getenvInt64("REDIS_DB", 0)),
		},
		Catalog: CatalogConfig{
			URL:     strings.TrimSpace(getenv("CATALOG_URL", "")),
			MinSize: int(getenvInt64("CATALOG_MIN_SIZE", 10)),
			Timeout: timeout,
		},
		Delivery: DeliveryConfig{
			Channels:    lowerAll(parseList(getenv("DELIVERY_CHANNELS", ""), DefaultChannels)),
			GracePeriod: getenvDuration("DELIVERY_GRACE_PERIOD", 1200*time.Millisecond),
			ReportURL:   strings.TrimSpace(getenv("REPORT_URL", "")),
			ReportTitle: getenv("REPORT_TITLE", "End of Night Inventory Report"),
			SMSNumber:   strings.TrimSpace(getenv("SMS_NUMBER", "")),
			EmailTo:     strings.TrimSpace(getenv("EMAIL_TO", "")),
			ExportDir:   getenv("EXPORT_DIR", "exports"),
			Timeout:     timeout,
		},
		Email: EmailConfig{
			SMTPHost:     getenv("SMTP_HOST", "localhost"),
			SMTPPort:     int(getenvInt64("SMTP_PORT", 1025)),
			SMTPUsername: getenv("SMTP_USERNAME", ""),
			SMTPPassword: getenv("SMTP_PASSWORD", ""),
			SMTPFrom:     getenv("SMTP_FROM", "shiftcount@localhost"),
		},
		ShiftConfigPaths: parseList(getenv("SHIFT_CONFIG_PATHS", ""), []string{"/etc/shiftcount", "."}),
	}
	cfg.OTLPEndpoint = strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_ENDPOINT", ""))

	return cfg
}

// Debug reports whether verbose diagnostics should be enabled.
func (c Config) Debug() bool {
	return c.LogLevel == "debug" || c.Environment == "development"
}

func normalizeDriver(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case StoreDriverPostgres, StoreDriverMySQL, StoreDriverRedis:
		return value
	default:
		return StoreDriverSQLite
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func parseList(raw string, def []string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}

func lowerAll(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToLower(v)
	}
	return values
}
