package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the portal and the mock backend.
type Config struct {
	App       AppConfig
	API       APIConfig
	Feed      FeedConfig
	Logger    LoggerConfig
	CredStore CredStoreConfig
	Mock      MockConfig
}

// AppConfig identifies the running binary.
type AppConfig struct {
	Name string
	Env  string
}

// APIConfig points the resource clients at the backend.
type APIConfig struct {
	BaseURL               string
	RequestTimeoutSeconds int
}

// FeedConfig controls the recent-activity poller.
type FeedConfig struct {
	PollIntervalSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// CredStoreConfig locates the sealed remember-me credential files.
type CredStoreConfig struct {
	Dir string
}

// MockConfig configures the local development backend.
type MockConfig struct {
	Host                 string
	Port                 string
	JWTSecret            string
	SessionTTLMinutes    int
	BcryptCost           int
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	RequestTimeoutSecond int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("MOCK_REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid MOCK_REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "hospitalcm"),
			Env:  getEnv("APP_ENV", "development"),
		},
		API: APIConfig{
			BaseURL:               getEnv("API_BASE_URL", "http://localhost:3000"),
			RequestTimeoutSeconds: getEnvAsInt("API_REQUEST_TIMEOUT_SECONDS", 15),
		},
		Feed: FeedConfig{
			PollIntervalSeconds: getEnvAsInt("FEED_POLL_INTERVAL_SECONDS", 15),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		CredStore: CredStoreConfig{
			Dir: getEnv("CREDSTORE_DIR", defaultCredStoreDir()),
		},
		Mock: MockConfig{
			Host:                 getEnv("MOCK_HOST", "127.0.0.1"),
			Port:                 getEnv("MOCK_PORT", "3000"),
			JWTSecret:            getEnv("MOCK_JWT_SECRET", "dev-secret"),
			SessionTTLMinutes:    getEnvAsInt("MOCK_SESSION_TTL_MINUTES", 480),
			BcryptCost:           getEnvAsInt("MOCK_BCRYPT_COST", 10),
			RedisAddr:            os.Getenv("MOCK_REDIS_ADDR"),
			RedisPassword:        os.Getenv("MOCK_REDIS_PASSWORD"),
			RedisDB:              redisDB,
			RequestTimeoutSecond: getEnvAsInt("MOCK_REQUEST_TIMEOUT_SECONDS", 30),
		},
	}

	return cfg, nil
}

// RequestTimeout returns the configured client request timeout duration.
func (a APIConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// PollInterval returns the feed polling period, never below one second.
func (f FeedConfig) PollInterval() time.Duration {
	if f.PollIntervalSeconds < 1 {
		return time.Second
	}
	return time.Duration(f.PollIntervalSeconds) * time.Second
}

// Addr returns the mock backend bind address.
func (m MockConfig) Addr() string {
	return fmt.Sprintf("%s:%s", m.Host, m.Port)
}

// SessionTTL returns the mock session lifetime.
func (m MockConfig) SessionTTL() time.Duration {
	if m.SessionTTLMinutes <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(m.SessionTTLMinutes) * time.Minute
}

func defaultCredStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hospitalcm"
	}
	return filepath.Join(home, ".hospitalcm")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
