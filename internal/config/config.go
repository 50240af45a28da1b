package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	SMTP       SMTPConfig
	Storage    StorageConfig
	Ai         AIConfig
	Dialog     DialogConfig
	Retrieval  RetrievalConfig
	Moderation ModerationConfig
	Auth       AuthConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
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
	Host        string
	Port        int
	Email       string
	Password    string
	SenderName  string
	ReportEmail string
}

type StorageConfig struct {
	Bucket   string
	Region   string
	Endpoint string // optional, for MinIO in dev
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	GeminiAPIKey      string
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "groq"
	LLMModel          string
	LLMBaseURL        string
	LLMAPIKey         string
}

type DialogConfig struct {
	IdleTimeout  time.Duration
	MenuKeyword  string
	SessionStore string // "memory" or "redis"
}

type RetrievalConfig struct {
	ChunkSize      int
	ChunkOverlap   int
	TopK           int
	ScoreThreshold float64
	MaxAttempts    int
}

type ModerationConfig struct {
	Timeout time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        getEnvAsInt("SMTP_PORT", 587),
			Email:       getEnv("SMTP_EMAIL", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			SenderName:  getEnv("SMTP_SENDER_NAME", "CourseCopilot"),
			ReportEmail: getEnv("MODERATION_REPORT_EMAIL", ""),
		},
		Storage: StorageConfig{
			Bucket:   getEnv("S3_BUCKET", ""),
			Region:   getEnv("AWS_REGION", "us-east-1"),
			Endpoint: getEnv("S3_ENDPOINT", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:         getEnv("LLM_API_KEY", ""),
		},
		Dialog: DialogConfig{
			IdleTimeout:  getEnvAsDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
			MenuKeyword:  getEnv("MENU_KEYWORD", "menu"),
			SessionStore: getEnv("SESSION_STORE", "memory"),
		},
		Retrieval: RetrievalConfig{
			ChunkSize:      getEnvAsInt("CHUNK_SIZE", 1500),
			ChunkOverlap:   getEnvAsInt("CHUNK_OVERLAP", 200),
			TopK:           getEnvAsInt("RETRIEVAL_TOP_K", 5),
			ScoreThreshold: getEnvAsFloat("RETRIEVAL_SCORE_THRESHOLD", 0.5),
			MaxAttempts:    getEnvAsInt("INDEXING_MAX_ATTEMPTS", 3),
		},
		Moderation: ModerationConfig{
			Timeout: getEnvAsDuration("MODERATION_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
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
