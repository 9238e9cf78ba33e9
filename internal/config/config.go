package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Cache    CacheConfig
	Ai       AIConfig
	Topics   TopicConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	ExportDir          string
	UploadsDir         string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Email    string
	Password string
	Sender   string // From header; defaults to the auth email
}

// CacheConfig selects the durable backend behind the in-process analysis memo.
type CacheConfig struct {
	Backend string // "postgres" or "redis"
}

type AIConfig struct {
	LLMProvider   string // "ollama"
	ChatModel     string // e.g. "llama3.2"
	VisionModel   string // e.g. "llama3.2-vision"
	OllamaBaseURL string
}

type TopicConfig struct {
	SystemEvents string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ExportDir:          getEnv("EXPORT_DIR", "exports"),
			UploadsDir:         getEnv("UPLOAD_DIR", "uploads"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Email:    getEnv("SMTP_EMAIL", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			Sender:   getEnv("SMTP_SENDER", getEnv("SMTP_EMAIL", "")),
		},
		Cache: CacheConfig{
			Backend: getEnv("ANALYSIS_CACHE_BACKEND", "postgres"),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			ChatModel:     getEnv("LLM_MODEL", "llama3.2"),
			VisionModel:   getEnv("VISION_MODEL", "llama3.2-vision"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Topics: TopicConfig{
			SystemEvents: getEnv("SYSTEM_EVENTS_TOPIC_NAME", "SYSTEM_EVENTS"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
