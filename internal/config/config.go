package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string // empty keeps vendors in memory

	// data.gov.in Agmarknet
	DataGovAPIKey       string
	AgmarknetBaseURL    string
	AgmarknetResourceID string

	// Generative model: openai, deepseek or empty to disable
	LLMProvider string
	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string

	TranslateURL    string
	TranslateAPIKey string
	OCRURL          string
	OCRAPIKey       string

	SourceTimeout  time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	ChatOrigins    []string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		DataGovAPIKey:       getEnv("DATA_GOV_API_KEY", ""),
		AgmarknetBaseURL:    getEnv("AGMARKNET_BASE_URL", "https://api.data.gov.in"),
		AgmarknetResourceID: getEnv("AGMARKNET_RESOURCE_ID", "9ef84268-d588-465a-a308-a864a43d0070"),

		LLMProvider: strings.ToLower(getEnv("LLM_PROVIDER", "")),
		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMBaseURL:  getEnv("LLM_BASE_URL", ""),
		LLMModel:    getEnv("LLM_MODEL", ""),

		TranslateURL:    getEnv("TRANSLATE_URL", ""),
		TranslateAPIKey: getEnv("TRANSLATE_API_KEY", ""),
		OCRURL:          getEnv("OCR_URL", "https://api.ocr.space"),
		OCRAPIKey:       getEnv("OCR_API_KEY", ""),

		SourceTimeout:  getDuration("SOURCE_TIMEOUT", 8*time.Second),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 5),
		ChatOrigins:    getList("CHAT_ORIGINS"),
	}
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		log.Printf("invalid %s=%q, using %v", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
