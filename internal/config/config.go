package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	JWT        JWTConfig
	SMTP       SMTPConfig
	Notify     NotifyConfig
	MinIO      MinIOConfig
	Submission SubmissionConfig
	Worker     WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	PublicURL   string // dùng trong email (link tới tool detail)
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Database    string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type CacheConfig struct {
	Driver  string // memory | redis
	ListTTL time.Duration
}

type JWTConfig struct {
	Secret string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled trả về false khi chưa cấu hình SMTP, notifier sẽ chỉ log nội dung email
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type NotifyConfig struct {
	Mode string // direct | queue
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string // base URL public của bucket, rỗng = http://<endpoint>
}

type SubmissionConfig struct {
	// VerifyCode = false giữ hành vi cũ: chỉ check độ dài code, không đối chiếu token
	VerifyCode       bool
	CodeTTL          time.Duration
	CodeMaxPerHour   int
	CodeMaxAttempts  int
	VerificationCost int // bcrypt cost cho code lưu trong DB
}

// WorkerConfig chỉ dùng cho cmd/worker
type WorkerConfig struct {
	Concurrency             int
	HealthAddr              string
	CleanupVerificationCron string
	DeactivatePromotionCron string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Toolsail API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			PublicURL:   strings.TrimRight(getEnv("APP_PUBLIC_URL", "http://localhost:3000"), "/"),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Database:    getEnv("DB_NAME", "toolsail"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Driver:  getEnv("CACHE_DRIVER", "memory"),
			ListTTL: getEnvDuration("CACHE_LIST_TTL", 60*time.Second),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", defaultJWTSecret),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("EMAIL_FROM", "Toolsail <noreply@toolsail.dev>"),
		},
		Notify: NotifyConfig{
			Mode: getEnv("NOTIFY_MODE", "direct"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "toolsail"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),
		},
		Submission: SubmissionConfig{
			VerifyCode:       getEnvBool("SUBMISSION_VERIFY_CODE", true),
			CodeTTL:          getEnvDuration("VERIFY_CODE_TTL", 10*time.Minute),
			CodeMaxPerHour:   getEnvInt("VERIFY_CODE_MAX_PER_HOUR", 5),
			CodeMaxAttempts:  getEnvInt("VERIFY_CODE_MAX_ATTEMPTS", 5),
			VerificationCost: getEnvInt("VERIFY_CODE_BCRYPT_COST", 10),
		},
		Worker: WorkerConfig{
			Concurrency:             getEnvInt("WORKER_CONCURRENCY", 10),
			HealthAddr:              getEnv("WORKER_HEALTH_ADDR", ":9999"),
			CleanupVerificationCron: getEnv("CRON_CLEANUP_VERIFICATION", "*/30 * * * *"),
			DeactivatePromotionCron: getEnv("CRON_DEACTIVATE_PROMOTIONS", "5 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("CACHE_DRIVER must be memory or redis, got %q", c.Cache.Driver)
	}

	switch c.Notify.Mode {
	case "direct", "queue":
	default:
		return fmt.Errorf("NOTIFY_MODE must be direct or queue, got %q", c.Notify.Mode)
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// IsProduction dùng để chặn các route dev-only
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
