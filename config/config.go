package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// RequestTimeout bounds one chat turn or booking end to end.
	RequestTimeout time.Duration
	// PopulateTimeout bounds a background embedding population run.
	PopulateTimeout time.Duration

	// Database (appointments)
	Database DatabaseConfig

	// Postgres (pgvector embeddings)
	Postgres PostgresConfig

	// Redis (embedding cache)
	Redis RedisConfig

	// AI Service
	AI AIConfig

	// Retrieval pipeline
	Retrieval RetrievalConfig

	// Clinic data files
	Data DataConfig

	// Email Service
	Email EmailConfig

	// Security
	Security SecurityConfig

	// Logging
	Logging LoggingConfig
}

type DatabaseConfig struct {
	Type     string // "mongodb"
	URI      string
	Name     string
	Host     string
	Port     string
	Username string
	Password string

	// Connection pool settings
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
}

type PostgresConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	EmbeddingTable  string
	Dimensions      int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type AIConfig struct {
	Provider       string // "openai" or "gemini"
	APIKey         string
	BaseURL        string
	Model          string
	EmbeddingModel string
	Temperature    float64
	MaxTokens      int
	ConfirmTokens  int
	Timeout        time.Duration

	// Optional remote intent classifier
	IntentServiceURL string
}

type RetrievalConfig struct {
	VectorBackend       string // "pgvector", "chroma" or "none"
	SimilarityThreshold float64
	MatchLimit          int
	ChromaURL           string
	ChromaCollection    string
	ChunkSize           int
}

type DataConfig struct {
	Dir      string
	Timezone string
}

type EmailConfig struct {
	Provider  string // "ses" or "none"
	Region    string
	FromEmail string
	FromName  string
}

type SecurityConfig struct {
	AdminToken     string
	AllowedOrigins []string
	TrustedProxies []string
}

type LoggingConfig struct {
	Level  string
	Format string
}

const writeTimeoutMargin = 15 * time.Second

var cfg *Config

// Load initializes the configuration
func Load() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	c, err := New()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// New builds a Config from the current environment without touching the global.
func New() (*Config, error) {
	c := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", "45s"),
		PopulateTimeout: getEnvAsDuration("POPULATE_TIMEOUT", "30m"),

		Database: DatabaseConfig{
			Type:     getEnv("DB_TYPE", "mongodb"),
			URI:      getEnv("DATABASE_URL", ""),
			Name:     getEnv("DB_NAME", "dental_chatbot"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),

			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 100),
			MinConnections: getEnvAsInt("DB_MIN_CONNECTIONS", 10),
			MaxIdleTime:    getEnvAsDuration("DB_MAX_IDLE_TIME", "30m"),
		},

		Postgres: PostgresConfig{
			URL:             getEnv("POSTGRES_URL", ""),
			MaxOpenConns:    getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("POSTGRES_CONN_MAX_LIFETIME", "5m"),
			EmbeddingTable:  getEnv("POSTGRES_EMBEDDING_TABLE", "document_embeddings"),
			Dimensions:      getEnvAsInt("EMBEDDING_DIMENSIONS", 1536),
		},

		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("EMBEDDING_CACHE_TTL", "24h"),
		},

		AI: AIConfig{
			Provider:         getEnv("AI_PROVIDER", "openai"),
			APIKey:           getEnv("AI_API_KEY", getEnv("OPENAI_API_KEY", "")),
			BaseURL:          getEnv("AI_BASE_URL", ""),
			Model:            getEnv("AI_MODEL", ""),
			EmbeddingModel:   getEnv("AI_EMBEDDING_MODEL", ""),
			Temperature:      getEnvAsFloat("AI_TEMPERATURE", 0.7),
			MaxTokens:        getEnvAsInt("AI_MAX_TOKENS", 500),
			ConfirmTokens:    getEnvAsInt("AI_CONFIRMATION_MAX_TOKENS", 350),
			Timeout:          getEnvAsDuration("AI_TIMEOUT", "30s"),
			IntentServiceURL: getEnv("INTENT_SERVICE_URL", ""),
		},

		Retrieval: RetrievalConfig{
			VectorBackend:       getEnv("VECTOR_BACKEND", "none"),
			SimilarityThreshold: getEnvAsFloat("SIMILARITY_THRESHOLD", 0.7),
			MatchLimit:          getEnvAsInt("MATCH_LIMIT", 5),
			ChromaURL:           getEnv("CHROMA_URL", "http://localhost:8000"),
			ChromaCollection:    getEnv("CHROMA_COLLECTION", "dental_clinic"),
			ChunkSize:           getEnvAsInt("CHUNK_SIZE", 1000),
		},

		Data: DataConfig{
			Dir:      getEnv("DATA_DIR", "./data"),
			Timezone: getEnv("CLINIC_TIMEZONE", "Local"),
		},

		Email: EmailConfig{
			Provider:  getEnv("EMAIL_PROVIDER", "none"),
			Region:    getEnv("AWS_REGION", "us-east-1"),
			FromEmail: getEnv("EMAIL_FROM", "noreply@smilesmart.dental"),
			FromName:  getEnv("EMAIL_FROM_NAME", "SmileSmart Dental"),
		},

		Security: SecurityConfig{
			AdminToken:     getEnv("ADMIN_TOKEN", ""),
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			TrustedProxies: getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},

		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return c, nil
}

// Get returns the loaded configuration
func Get() *Config {
	if cfg == nil {
		log.Fatal("Configuration not loaded. Call Load() first")
	}
	return cfg
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) validate() error {
	if c.Database.Type == "mongodb" && c.Database.URI == "" {
		if c.Database.Host == "" || c.Database.Port == "" {
			return fmt.Errorf("database URI or host/port must be provided")
		}
	}

	switch c.AI.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported AI provider %q", c.AI.Provider)
	}

	switch c.Retrieval.VectorBackend {
	case "none":
	case "pgvector":
		if c.Postgres.URL == "" {
			return fmt.Errorf("POSTGRES_URL is required for the pgvector backend")
		}
	case "chroma":
		if c.Retrieval.ChromaURL == "" {
			return fmt.Errorf("CHROMA_URL is required for the chroma backend")
		}
	default:
		return fmt.Errorf("unsupported vector backend %q", c.Retrieval.VectorBackend)
	}

	if c.Retrieval.SimilarityThreshold < 0 || c.Retrieval.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be within [0, 1]")
	}
	if c.Retrieval.MatchLimit <= 0 {
		return fmt.Errorf("match limit must be positive")
	}
	if c.Retrieval.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive")
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.PopulateTimeout <= 0 {
		return fmt.Errorf("populate timeout must be positive")
	}

	return nil
}

// WriteTimeout is the HTTP server write deadline. It stays above
// RequestTimeout so a reply computed at the budget's end can still be written.
func (c *Config) WriteTimeout() time.Duration {
	return c.RequestTimeout + writeTimeoutMargin
}

// ChatModel returns the configured chat model or the provider default.
func (c *Config) ChatModel() string {
	if c.AI.Model != "" {
		return c.AI.Model
	}
	if c.AI.Provider == "gemini" {
		return "gemini-2.5-flash"
	}
	return "gpt-4o-mini"
}

// EmbeddingModelName returns the configured embedding model or the provider default.
func (c *Config) EmbeddingModelName() string {
	if c.AI.EmbeddingModel != "" {
		return c.AI.EmbeddingModel
	}
	if c.AI.Provider == "gemini" {
		return "text-embedding-004"
	}
	return "text-embedding-3-small"
}

// Location returns the clinic's time zone, falling back to the process local zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Data.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// BuildDatabaseURI constructs the database URI if not provided
func (c *Config) BuildDatabaseURI() string {
	if c.Database.URI != "" {
		return c.Database.URI
	}

	if c.Database.Username != "" && c.Database.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s",
			c.Database.Username,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
		)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}
