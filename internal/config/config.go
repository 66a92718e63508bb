package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort   string
	AppEnv    string
	LogLevel  string
	LogFormat string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	NotificationsTable string
	S3BucketName       string
	SNSRegion          string
	SNSTopicARN        string // empty disables fan-out
	NotifyTimeout      time.Duration

	Locale             string
	LocaleCatalogPath  string // local file; takes precedence over the S3 key
	LocaleCatalogS3Key string // defaults to i18n/<Locale>.yaml
	FieldLabelsPath    string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:   getEnv("APP_PORT", "3000"),
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		NotificationsTable: getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
		S3BucketName:       getEnv("S3_BUCKET_NAME", "go-api-locales"),
		SNSRegion:          getEnv("SNS_REGION", "us-east-1"),
		SNSTopicARN:        getEnv("SNS_TOPIC_ARN", ""),
		NotifyTimeout:      getEnvDuration("NOTIFY_TIMEOUT", 5*time.Second),

		Locale:             getEnv("LOCALE", "en"),
		LocaleCatalogPath:  getEnv("LOCALE_CATALOG_PATH", ""),
		LocaleCatalogS3Key: getEnv("LOCALE_CATALOG_S3_KEY", ""),
		FieldLabelsPath:    getEnv("FIELD_LABELS_PATH", "./field-labels.yaml"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", ""),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
