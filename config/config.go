package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppMode string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret    string
	JWTExpiryMin int

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Moderation endpoint (text classification).
	ModerationURL      string
	ModerationToken    string
	ModerationAttempts int
	ModerationDelay    time.Duration

	// Attachment storage.
	StorageBackend string // "disk" or "s3"
	UploadDir      string
	PublicBaseURL  string

	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3PublicURL string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort: getEnv("APP_PORT", "8080"),
		AppMode: getEnv("APP_MODE", "debug"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "mindful_chat"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		JWTExpiryMin: getEnvAsInt("JWT_EXPIRY_MIN", 60),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		ModerationURL:      getEnv("MODERATION_URL", ""),
		ModerationToken:    getEnv("MODERATION_TOKEN", ""),
		ModerationAttempts: getEnvAsInt("MODERATION_MAX_ATTEMPTS", 3),
		ModerationDelay:    time.Duration(getEnvAsInt("MODERATION_INITIAL_DELAY_MS", 1000)) * time.Millisecond,

		StorageBackend: getEnv("STORAGE_BACKEND", "disk"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:8080/uploads"),

		S3Region:    getEnv("S3_REGION", ""),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
