package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	// StoreDriverPostgres persists donation points in PostgreSQL.
	StoreDriverPostgres = "postgres"
	// StoreDriverMemory keeps donation points in process memory (local development only).
	StoreDriverMemory = "memory"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
// An empty Endpoint disables map snapshots.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether object storage was configured.
func (c MinIOConfig) Enabled() bool { return c.Endpoint != "" }

// ValkeyConfig holds the list cache settings. An empty Addr disables the cache.
type ValkeyConfig struct {
	Addr   string
	TTLSec int
}

// Enabled reports whether the list cache was configured.
func (c ValkeyConfig) Enabled() bool { return c.Addr != "" }

// NATSConfig holds settings for publishing point events. An empty URL disables publishing.
type NATSConfig struct {
	URL     string
	Subject string
}

// Enabled reports whether event publishing was configured.
func (c NATSConfig) Enabled() bool { return c.URL != "" }

// LogConfig controls the process-wide slog logger.
type LogConfig struct {
	Level  string
	Format string
}

// SnapshotConfig controls GeoJSON map snapshots.
type SnapshotConfig struct {
	URLExpirySec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string
	Port        string
	StoreDriver string
	// CORSAllowOrigins is a comma separated origin list for browser clients such as the map view.
	CORSAllowOrigins string
	Log              LogConfig
	Database         DatabaseConfig
	MinIO            MinIOConfig
	Valkey           ValkeyConfig
	NATS             NATSConfig
	Snapshot         SnapshotConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:          getEnv("APP_HOST", "localhost:8080"),
		Port:             getEnv("PORT", "8080"),
		StoreDriver:      strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Valkey: ValkeyConfig{
			Addr:   getEnv("VALKEY_ADDR", ""),
			TTLSec: getEnvInt("VALKEY_TTL_SEC", 60),
		},
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", ""),
			Subject: getEnv("NATS_SUBJECT", "donations.points.created"),
		},
		Snapshot: SnapshotConfig{
			URLExpirySec: getEnvInt("SNAPSHOT_URL_EXPIRY_SEC", 900),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
