package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Sms      SmsConfig
	Ai       AIConfig
	Chat     ChatConfig
	Resource ResourceConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	OwnerEmail string
}

type SmsConfig struct {
	WebhookURL string
	APIKey     string
	OwnerPhone string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "gemini"
	LLMModel          string // e.g. "llama3", "gemini-1.5-flash"
	GeminiAPIKey      string
}

type ChatConfig struct {
	FallbackThreshold   float64
	SignalKindsRequired int
	RetrievalTopK       int
	HistoryWindow       int
}

type ResourceConfig struct {
	SigningSecret string
	LinkTTL       time.Duration
	ResumePath    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "PersonaChat"),
			OwnerEmail: getEnv("OWNER_EMAIL", ""),
		},
		Sms: SmsConfig{
			WebhookURL: getEnv("SMS_WEBHOOK_URL", ""),
			APIKey:     getEnv("SMS_API_KEY", ""),
			OwnerPhone: getEnv("OWNER_PHONE", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Chat: ChatConfig{
			FallbackThreshold:   getEnvAsFloat("CHAT_FALLBACK_THRESHOLD", 0.4),
			SignalKindsRequired: getEnvAsInt("CHAT_SIGNAL_KINDS_REQUIRED", 2),
			RetrievalTopK:       getEnvAsInt("CHAT_RETRIEVAL_TOP_K", 4),
			HistoryWindow:       getEnvAsInt("CHAT_HISTORY_WINDOW", 10),
		},
		Resource: ResourceConfig{
			SigningSecret: getEnv("RESOURCE_SIGNING_SECRET", ""),
			LinkTTL:       getEnvAsDuration("RESOURCE_LINK_TTL", 24*time.Hour),
			ResumePath:    getEnv("RESOURCE_RESUME_PATH", "assets/resume.pdf"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
