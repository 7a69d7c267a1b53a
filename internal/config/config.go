// Package config provides configuration management for the application.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Limits on the number of recommendations a single request may ask for.
const (
	DefaultLimit = 5
	MaxLimit     = 50
)

// Config holds all configuration values for the application.
type Config struct {
	// Dataset
	DataFile string
	S3Bucket string
	S3Key    string

	// Signup store
	UsersFile  string
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	// SES
	SESSenderEmail string

	// Admin
	AdminPassword string

	// Application
	Stage    string
	LogLevel string
	Port     string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		// Dataset
		DataFile: getEnv("DATA_FILE", "gov.csv"),
		S3Bucket: getEnv("S3_BUCKET", ""),
		S3Key:    getEnv("S3_KEY", "gov.csv"),

		// Signup store
		UsersFile:  getEnv("USERS_FILE", "users_db.csv"),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBName:     getEnv("DB_NAME", "scheme_recommender"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),

		// SES
		SESSenderEmail: getEnv("SES_SENDER_EMAIL", ""),

		// Admin
		AdminPassword: getEnv("SC_ADMIN_PW", "schemesarthi_admin_2025"),

		// Application
		Stage:    getEnv("STAGE", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("PORT", "8080"),
	}

	return cfg, nil
}

// UseS3 reports whether the dataset should be fetched from S3 rather than
// the local filesystem.
func (c *Config) UseS3() bool {
	return c.S3Bucket != ""
}

// UsePostgres reports whether signups should be stored in Postgres rather
// than the local CSV file.
func (c *Config) UsePostgres() bool {
	return c.DBHost != ""
}

// DatabaseURL returns the PostgreSQL connection string for the signup store.
func (c *Config) DatabaseURL() string {
	sslMode := "require"
	if c.DBHost == "localhost" || c.DBHost == "127.0.0.1" {
		sslMode = "disable"
	}
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + strconv.Itoa(c.DBPort) + "/" + c.DBName + "?sslmode=" + sslMode
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as int or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
