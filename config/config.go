package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Google Cloud
	ProjectID string
	Location  string

	// Gemini Model
	GeminiModel string

	// TheirStack job search
	TheirStackAPIKey  string
	TheirStackBaseURL string
	JobCountry        string
	MaxJobResults     int

	// Server
	Port  string
	Debug bool

	// Timeouts
	JobSearchTimeoutSeconds int

	// Sessions / authentication
	JWTSecret      string
	JWTExpiryHours int
	DefaultUserID  int

	// Storage
	StorageBackend   string // "memory" or "firestore"
	ResumeBucketName string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Google Cloud
		ProjectID: getEnv("PROJECT_ID", ""),
		Location:  getEnv("LOCATION", "us-central1"),

		// Gemini Model
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		// TheirStack job search
		TheirStackAPIKey:  getEnv("THEIRSTACK_API_KEY", ""),
		TheirStackBaseURL: getEnv("THEIRSTACK_BASE_URL", "https://api.theirstack.com/v1"),
		JobCountry:        getEnv("JOB_COUNTRY", "US"),
		MaxJobResults:     getEnvInt("MAX_JOB_RESULTS", 25),

		// Server
		Port:  getEnv("PORT", "8080"),
		Debug: getEnvBool("DEBUG", false),

		// Timeouts and limits
		JobSearchTimeoutSeconds: getEnvInt("JOB_SEARCH_TIMEOUT_SECONDS", 10),

		// Sessions / authentication
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		DefaultUserID:  getEnvInt("DEFAULT_USER_ID", 1),

		// Storage
		StorageBackend:   getEnv("STORAGE_BACKEND", "memory"),
		ResumeBucketName: getEnv("RESUME_BUCKET_NAME", ""),
	}

	return cfg
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	// ProjectID is required for Vertex AI
	if c.ProjectID == "" {
		return &ConfigError{Field: "PROJECT_ID", Message: "PROJECT_ID is required for Vertex AI"}
	}

	// TheirStack credentials are required for job search
	if c.TheirStackAPIKey == "" {
		return &ConfigError{Field: "THEIRSTACK_API_KEY", Message: "THEIRSTACK_API_KEY is required for job search"}
	}

	if c.StorageBackend != "memory" && c.StorageBackend != "firestore" {
		return &ConfigError{Field: "STORAGE_BACKEND", Message: "STORAGE_BACKEND must be \"memory\" or \"firestore\""}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
