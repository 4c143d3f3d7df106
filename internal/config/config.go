package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Stats       StatsConfig
	Logging     LoggingConfig
	AppName     string
	Environment string
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConnections int
	ConnectTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret     string
	JWTExpiry     time.Duration
	AdminUser     string
	AdminPassHash string
}

type RateLimitConfig struct {
	PublicPerMinute int
	AdminPerMinute  int
	LoginPerMinute  int
}

type CORSConfig struct {
	AllowAllOrigins bool
	AllowedOrigins  []string
}

type StatsConfig struct {
	// URL of the statistics service, used by the main service client.
	URL     string
	Timeout time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads main-service configuration from the environment. A .env file in
// the working directory is loaded first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConnections: getEnvInt("DATABASE_MAX_CONNECTIONS", 25),
			ConnectTimeout: time.Duration(getEnvInt("DATABASE_CONNECT_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			JWTExpiry:     time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
			AdminUser:     getEnv("ADMIN_USERNAME", "admin"),
			AdminPassHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		RateLimit: RateLimitConfig{
			PublicPerMinute: getEnvInt("RATE_LIMIT_PUBLIC", 300),
			AdminPerMinute:  getEnvInt("RATE_LIMIT_ADMIN", 0),
			LoginPerMinute:  getEnvInt("RATE_LIMIT_LOGIN", 10),
		},
		CORS:        loadCORS(),
		Stats:       loadStatsClient(),
		Logging:     loadLogging(),
		AppName:     getEnv("APP_NAME", "eventlane-main"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Database.URL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// StatsServiceConfig holds configuration for the statistics microservice.
type StatsServiceConfig struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Logging     LoggingConfig
	Environment string
}

// LoadStatsService reads statistics-service configuration from the environment.
func LoadStatsService() (StatsServiceConfig, error) {
	_ = godotenv.Load()

	cfg := StatsServiceConfig{
		Server: ServerConfig{
			Host: getEnv("STATS_SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt("STATS_SERVER_PORT", 9090),
		},
		Database: DatabaseConfig{
			URL:            getEnv("STATS_DATABASE_URL", ""),
			MaxConnections: getEnvInt("STATS_DATABASE_MAX_CONNECTIONS", 10),
			ConnectTimeout: time.Duration(getEnvInt("DATABASE_CONNECT_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Logging:     loadLogging(),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Database.URL == "" {
		return StatsServiceConfig{}, fmt.Errorf("STATS_DATABASE_URL is required")
	}
	return cfg, nil
}

func loadCORS() CORSConfig {
	raw := strings.TrimSpace(getEnv("CORS_ALLOWED_ORIGINS", ""))
	if raw == "" {
		return CORSConfig{AllowAllOrigins: true}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return CORSConfig{AllowedOrigins: origins}
}

func loadStatsClient() StatsConfig {
	return StatsConfig{
		URL:     getEnv("STATS_SERVICE_URL", "http://localhost:9090"),
		Timeout: time.Duration(getEnvInt("STATS_CLIENT_TIMEOUT_SECONDS", 5)) * time.Second,
	}
}

func loadLogging() LoggingConfig {
	return LoggingConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
