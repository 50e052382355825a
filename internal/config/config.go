package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings. It is loaded once in main
// and injected into the services that need it, including which AI provider
// leads the fallback chain and whether mock responses may be used.
type Config struct {
	Port           string
	Environment    string
	AllowedOrigins []string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	GrokAPIKey   string
	GrokBaseURL  string
	GeminiAPIKey string

	// UseGemini makes the Gemini adapter the preferred provider for chat,
	// translation and analysis. Transcription always goes to the Grok
	// adapter, which is the only one with a speech-to-text capability.
	UseGemini bool

	// UseMockResponses enables the canned development responder as the last
	// tier of the chat fallback chain. Never enabled implicitly in
	// production.
	UseMockResponses bool

	JWTSecret string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		Environment:    env,
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:19006"), ","),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "papas"),
		DBPort:     getEnv("DB_PORT", "5432"),

		GrokAPIKey:   getEnv("XAI_API_KEY", ""),
		GrokBaseURL:  getEnv("XAI_BASE_URL", "https://api.x.ai/v1"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),

		UseGemini:        getEnvAsBool("USE_GEMINI", false),
		UseMockResponses: getEnvAsBool("USE_MOCK_RESPONSES", false) || env == "development",

		JWTSecret: getEnv("JWT_SECRET", ""),
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
