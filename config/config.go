package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	AppEnv      string
	AppURL      string
	AppKey      string
	FrontendURL string
	AutoMigrate bool
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Certificate storage
	StorageDriver    string // local or s3
	StorageLocalPath string
	StoragePublicURL string
	S3Provider       string // aws or wasabi
	S3AccessKeyID    string
	S3SecretKey      string
	S3Region         string
	S3Bucket         string
	WasabiEndpoint   string
	ClamAVAddress    string // empty disables scanning
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Accounts
	DefaultUserPassword  string // password given to admin-provisioned users
	DefaultRole          string // role given to self-registered users
	ResetTokenTTLMinutes int
	VerifyLinkTTLMinutes int
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	VerificationNoticeLimit  int
	FailedLoginBlockMinutes  int
	FailedLoginMaxAttempts   int
	UploadsPerMinute         int
	UploadsPerDay            int
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		AppEnv:      getEnv("APP_ENV", "development"),
		AppURL:      strings.TrimRight(getEnv("APP_URL", "http://localhost:8080"), "/"),
		AppKey:      getEnv("APP_KEY", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		AutoMigrate: getEnvBool("AUTO_MIGRATE", true),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnvInt("SMTP_PORT", 587),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@example.com"),
		// Storage
		StorageDriver:    getEnv("STORAGE_DRIVER", "local"),
		StorageLocalPath: getEnv("STORAGE_LOCAL_PATH", "./storage/app/public"),
		StoragePublicURL: strings.TrimRight(getEnv("STORAGE_PUBLIC_URL", ""), "/"),
		S3Provider:       getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:    getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:      getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		WasabiEndpoint:   getEnv("WASABI_ENDPOINT", ""),
		ClamAVAddress:    getEnv("CLAMAV_ADDRESS", ""),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Accounts
		DefaultUserPassword:  getEnv("DEFAULT_USER_PASSWORD", "1234"),
		DefaultRole:          getEnv("DEFAULT_ROLE", "applicant"),
		ResetTokenTTLMinutes: getEnvInt("RESET_TOKEN_TTL_MINUTES", 60),
		VerifyLinkTTLMinutes: getEnvInt("VERIFY_LINK_TTL_MINUTES", 60),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		VerificationNoticeLimit:  getEnvInt("VERIFICATION_NOTICE_LIMIT", 6),
		FailedLoginBlockMinutes:  getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:   getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),
		UploadsPerMinute:         getEnvInt("UPLOADS_PER_MINUTE", 10),
		UploadsPerDay:            getEnvInt("UPLOADS_PER_DAY", 50),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.AppKey == "" {
		log.Println("WARNING: APP_KEY is empty. Email verification links cannot be signed securely.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
