package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort       string // HTTP listen port
	DBUser        string // Database user
	DBPassword    string // Database password
	DBHost        string // Database host
	DBPort        string // Database port
	DBName        string // Database name
	SessionSecret string // Secret key for signing session tokens
	RedisAddr     string // Redis server address (empty disables caching)
	RedisPass     string // Redis password
	RedisDB       int    // Redis database number
	AdminUsername string // Bootstrap admin username
	AdminPassword string // Bootstrap admin password
	AdminEmail    string // Bootstrap admin email
	ImageCacheDir string // Directory for cached raffle cover images
	IsProd        bool   // Is production environment
}

// LoadConfig loads configuration from environment variables. Every value has
// a development fallback so the app runs out of the box; the defaults
// (notably SESSION_SECRET and the admin credentials) are unsuitable for
// production and must be overridden there.
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		DBUser:        getEnv("DB_USER", "raffles"),
		DBPassword:    getEnv("DB_PASSWORD", "raffles"),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBName:        getEnv("DB_NAME", "raffles"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-secret-key-change-in-production"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPass:     os.Getenv("REDIS_PASS"),
		RedisDB:       redisDB,
		AdminUsername: getEnv("ADMIN_USERNAME", "Admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "11153920"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@rifas.com"),
		ImageCacheDir: getEnv("IMAGE_CACHE_DIR", "static/cache/raffles"),
		IsProd:        os.Getenv("IS_PROD") == "true",
	}
}

// DSN builds the MySQL data source name from the database settings
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns the value of key, or fallback when key is unset or empty
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
