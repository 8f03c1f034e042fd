package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Database
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Server
	Port string
	Host string

	// Auth
	JWTSecret          string
	AllowedEmailDomain string

	// Campus geometry
	CampusCenterLat    float64
	CampusCenterLng    float64
	CampusRadiusMeters float64

	// Semantic matching. Network calls happen only when both the flag
	// and the API key are set.
	SemanticMatching bool
	OpenAIAPIKey     string
	EmbeddingModel   string

	// Base URL used in QR scan redirects.
	AppBaseURL string
}

func Load() *Config {
	return &Config{
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     getEnv("DB_NAME", "campustrace"),

		Port: getEnv("PORT", "8080"),
		Host: getEnv("HOST", "0.0.0.0"),

		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		AllowedEmailDomain: getEnv("ALLOWED_EMAIL_DOMAIN", "college.edu"),

		CampusCenterLat:    getEnvFloat("CAMPUS_CENTER_LAT", 28.6139),
		CampusCenterLng:    getEnvFloat("CAMPUS_CENTER_LNG", 77.209),
		CampusRadiusMeters: getEnvFloat("CAMPUS_RADIUS_METERS", 1200),

		SemanticMatching: getEnv("ENABLE_SEMANTIC_MATCHING", "") == "true",
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		EmbeddingModel:   getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:8080"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
