package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// External identifier lookup (OpenFIGI)
	OpenFIGIBaseURL string
	OpenFIGIAPIKey  string
	LookupTimeout   time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "secmaster"),
		DBPassword: getEnv("DB_PASSWORD", "secmaster"),
		DBName:     getEnv("DB_NAME", "secmaster"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// External lookup
		OpenFIGIBaseURL: getEnv("OPENFIGI_BASE_URL", "https://api.openfigi.com/v3/mapping"),
		OpenFIGIAPIKey:  getEnv("OPENFIGI_API_KEY", ""),
	}

	// The upstream contract specifies no timeout, so we impose one to
	// avoid hanging an interactive session on a slow provider.
	timeoutStr := getEnv("LOOKUP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid LOOKUP_TIMEOUT value '%s', falling back to 10s\n", timeoutStr)
		timeout = 10 * time.Second
	}
	config.LookupTimeout = timeout

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
