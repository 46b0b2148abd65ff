package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Upstream UpstreamConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Catalog  CatalogConfig
	Payment  PaymentConfig
	Sessions SessionConfig
	Uploads  UploadConfig
	Receipts ReceiptsConfig
}

// UpstreamConfig points at the institute backend that owns persistence and payments.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CatalogConfig tunes snapshot caching for the course catalog.
type CatalogConfig struct {
	CacheTTL            time.Duration
	PlaceholderImageURL string
}

// PaymentConfig describes the client-side checkout hand-off.
type PaymentConfig struct {
	Key               string
	Currency          string
	DisplayName       string
	CheckoutScriptURL string
	ThemeColor        string
}

// SessionConfig governs selection-tracker session lifetime.
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// UploadConfig constrains institution application attachments.
type UploadConfig struct {
	StudentListMaxBytes int64
	StudentListMIMEs    []string
	LogoMaxBytes        int64
}

// ReceiptsConfig controls acknowledgement receipt generation.
type ReceiptsConfig struct {
	Enabled           bool
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	CleanupInterval   time.Duration
	WorkerConcurrency int
	WorkerRetries     int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Upstream = UpstreamConfig{
		BaseURL: strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 15*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Catalog = CatalogConfig{
		CacheTTL:            parseDuration(v.GetString("CATALOG_CACHE_TTL"), 10*time.Minute),
		PlaceholderImageURL: v.GetString("CATALOG_PLACEHOLDER_IMAGE_URL"),
	}

	cfg.Payment = PaymentConfig{
		Key:               v.GetString("PAYMENT_KEY"),
		Currency:          v.GetString("PAYMENT_CURRENCY"),
		DisplayName:       v.GetString("PAYMENT_DISPLAY_NAME"),
		CheckoutScriptURL: v.GetString("PAYMENT_CHECKOUT_SCRIPT_URL"),
		ThemeColor:        v.GetString("PAYMENT_THEME_COLOR"),
	}

	cfg.Sessions = SessionConfig{
		TTL:           parseDuration(v.GetString("SESSION_TTL"), 2*time.Hour),
		SweepInterval: parseDuration(v.GetString("SESSION_SWEEP_INTERVAL"), 10*time.Minute),
	}

	studentListMax := v.GetInt64("UPLOAD_STUDENT_LIST_MAX_BYTES")
	if studentListMax <= 0 {
		studentListMax = 10 * 1024 * 1024
	}
	logoMax := v.GetInt64("UPLOAD_LOGO_MAX_BYTES")
	if logoMax <= 0 {
		logoMax = 100 * 1024 * 1024
	}
	cfg.Uploads = UploadConfig{
		StudentListMaxBytes: studentListMax,
		StudentListMIMEs:    splitAndTrim(v.GetString("UPLOAD_STUDENT_LIST_MIME_TYPES")),
		LogoMaxBytes:        logoMax,
	}

	cfg.Receipts = ReceiptsConfig{
		Enabled:           v.GetBool("ENABLE_RECEIPTS"),
		StorageDir:        v.GetString("RECEIPTS_STORAGE_DIR"),
		SignedURLSecret:   v.GetString("RECEIPTS_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("RECEIPTS_SIGNED_URL_TTL"), 24*time.Hour),
		CleanupInterval:   parseDuration(v.GetString("RECEIPTS_CLEANUP_INTERVAL"), time.Hour),
		WorkerConcurrency: v.GetInt("RECEIPTS_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("RECEIPTS_WORKER_RETRIES"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:5000")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CATALOG_CACHE_TTL", "10m")
	v.SetDefault("CATALOG_PLACEHOLDER_IMAGE_URL", "/images/course-placeholder.png")

	v.SetDefault("PAYMENT_KEY", "")
	v.SetDefault("PAYMENT_CURRENCY", "INR")
	v.SetDefault("PAYMENT_DISPLAY_NAME", "Course Enrollment")
	v.SetDefault("PAYMENT_CHECKOUT_SCRIPT_URL", "https://checkout.razorpay.com/v1/checkout.js")
	v.SetDefault("PAYMENT_THEME_COLOR", "#4f46e5")

	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "10m")

	v.SetDefault("UPLOAD_STUDENT_LIST_MAX_BYTES", 10*1024*1024)
	v.SetDefault("UPLOAD_STUDENT_LIST_MIME_TYPES", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,application/vnd.ms-excel,image/jpeg,image/png")
	v.SetDefault("UPLOAD_LOGO_MAX_BYTES", 100*1024*1024)

	v.SetDefault("ENABLE_RECEIPTS", false)
	v.SetDefault("RECEIPTS_STORAGE_DIR", "./receipts")
	v.SetDefault("RECEIPTS_SIGNED_URL_SECRET", "dev_receipts_secret")
	v.SetDefault("RECEIPTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("RECEIPTS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("RECEIPTS_WORKER_CONCURRENCY", 1)
	v.SetDefault("RECEIPTS_WORKER_RETRIES", 3)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
