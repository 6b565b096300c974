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
	Chat     ChatConfig
	Rate     RateConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	RealtimeLogPath    string
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
}

// ChatConfig carries the message-policy knobs: how long a sender may edit or
// delete a message, and the history page-size cap.
type ChatConfig struct {
	EditWindow      time.Duration
	DeleteWindow    time.Duration
	DefaultPageSize int
	MaxPageSize     int
}

// RateRule is one admission-control triple for a realtime event.
type RateRule struct {
	Max            int
	Window         time.Duration
	ViolationLimit int
}

type RateConfig struct {
	SendMessage  RateRule
	Typing       RateRule
	JoinRoom     RateRule
	LeaveRoom    RateRule
	MessageRead  RateRule
	UpdateStatus RateRule
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			RealtimeLogPath:    getEnv("REALTIME_LOG_PATH", "logs/realtime.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "ChatPlatform"),
		},
		Chat: ChatConfig{
			EditWindow:      getEnvAsDuration("CHAT_EDIT_WINDOW", 15*time.Minute),
			DeleteWindow:    getEnvAsDuration("CHAT_DELETE_WINDOW", time.Hour),
			DefaultPageSize: getEnvAsInt("CHAT_DEFAULT_PAGE_SIZE", 50),
			MaxPageSize:     getEnvAsInt("CHAT_MAX_PAGE_SIZE", 100),
		},
		Rate: RateConfig{
			SendMessage:  loadRateRule("RATE_SEND", 30, time.Minute, 3),
			Typing:       loadRateRule("RATE_TYPING", 60, 10*time.Second, 3),
			JoinRoom:     loadRateRule("RATE_JOIN", 20, time.Minute, 3),
			LeaveRoom:    loadRateRule("RATE_LEAVE", 20, time.Minute, 3),
			MessageRead:  loadRateRule("RATE_READ", 60, time.Minute, 3),
			UpdateStatus: loadRateRule("RATE_STATUS", 10, time.Minute, 3),
		},
	}
}

func loadRateRule(prefix string, max int, window time.Duration, violations int) RateRule {
	return RateRule{
		Max:            getEnvAsInt(prefix+"_MAX", max),
		Window:         getEnvAsDuration(prefix+"_WINDOW", window),
		ViolationLimit: getEnvAsInt(prefix+"_VIOLATIONS", violations),
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
