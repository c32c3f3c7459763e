package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment. A .env
// file in the working directory is loaded first if present.
type Config struct {
	Port string

	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	UploadDir   string
	TemplateDir string
	StaticDir   string
	LogFile     string

	Maintenance bool

	// Rate limit for POST /register and POST /login, per client IP.
	AuthRateInterval time.Duration
	AuthRateBurst    int
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Port: GetEnvAsString("PORT", "47599"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisHost:     GetEnvAsString("REDIS_HOST", "localhost"),
		RedisPort:     GetEnvAsString("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       GetEnvAsInt("REDIS_DB", 0),

		JWTSecret: GetEnvAsString("JWT_SECRET", "bluesky-dev-secret"),

		UploadDir:   GetEnvAsString("UPLOAD_DIR", "uploads"),
		TemplateDir: GetEnvAsString("TEMPLATE_DIR", "web/templates"),
		StaticDir:   GetEnvAsString("STATIC_DIR", "web/static"),
		LogFile:     GetEnvAsString("LOG_FILE", "logs/server.log"),

		Maintenance: GetEnvAsBool("MAINTENANCE_MODE", false),

		AuthRateInterval: GetEnvAsDuration("AUTH_RATE_INTERVAL", time.Second),
		AuthRateBurst:    GetEnvAsInt("AUTH_RATE_BURST", 10),
	}
}

// GetEnvAsString gets environment variable as string with default value
func GetEnvAsString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets environment variable as int with default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration gets environment variable as duration with default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetEnvAsBool gets environment variable as bool with default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
