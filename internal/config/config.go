package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	GeminiAPIKey          string
	GeminiModel           string
	HTTPPort              string
	LogLevel              string
	AnalyzeTimeoutSeconds int
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", ""),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "INFO"),
		AnalyzeTimeoutSeconds: getEnvAsInt("ANALYZE_TIMEOUT_SECONDS", 60),
	}

	// A missing key is not fatal: analysis requests report it as a
	// classified error and the key can be installed at runtime.
	if AppConfig.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY is not set; analysis will fail until a key is configured")
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
