package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	// SubscriptionSource selects where raw records come from.
	SubscriptionSource    string
	SubscriptionFixture   string
	SeedDemoSubscriptions bool

	// PortalConfigFile overrides the lookup of portal.yml.
	PortalConfigFile string
}

const (
	SourceDatabase = "database"
	SourceFixture  = "fixture"
	SourceDemo     = "demo"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "client-portal"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getenv("LOG_FORMAT", "json")),

		OtelEnabled:          getenvBool("OTEL_ENABLED", false),
		OtelExporterEndpoint: getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OtelExporterProtocol: strings.ToLower(getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "postgres"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),

		SubscriptionSource:    normalizeSource(getenv("SUBSCRIPTION_SOURCE", SourceDemo)),
		SubscriptionFixture:   strings.TrimSpace(getenv("SUBSCRIPTION_FIXTURE_PATH", "subscriptions.yml")),
		SeedDemoSubscriptions: getenvBool("SEED_DEMO_SUBSCRIPTIONS", false),

		PortalConfigFile: strings.TrimSpace(getenv("PORTAL_CONFIG_FILE", "")),
	}
}

// UsesDatabase reports whether records are read through gorm.
func (c Config) UsesDatabase() bool {
	return c.SubscriptionSource == SourceDatabase
}

func normalizeSource(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case SourceDatabase, "db":
		return SourceDatabase
	case SourceFixture, "file":
		return SourceFixture
	default:
		return SourceDemo
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

// Module expects Config to be supplied by the host, which reads it before
// composing the application.
var Module = fx.Module("config",
	fx.Provide(NewLifecycleConfigHolder),
)
