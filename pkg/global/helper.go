package global

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the server reads from the environment at startup.
type Config struct {
	Env      string
	LogLevel string
	Port     string

	MongoURI      string
	MongoDatabase string

	AIKey     string
	AIBaseURL string
	AIModel   string
	// AIRequestsPerMinute limits /api/ask-ai per client; 0 disables it.
	AIRequestsPerMinute int

	RedisAddress  string
	RedisPassword string

	ImagesDir   string
	CORSOrigins []string
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDefaultTimer() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// LoadConfig reads the process environment. The database connection string
// and the AI provider key are mandatory; the process exits without them.
func LoadConfig() Config {
	return Config{
		Env:      GetEnvOrDefault("ENV", "development"),
		LogLevel: GetEnvOrDefault("LOG_LEVEL", "info"),
		Port:     GetEnvOrDefault("PORT", "3000"),

		MongoURI:      GetMongoURI(),
		MongoDatabase: GetDatabaseName(),

		AIKey:     GetAIKey(),
		AIBaseURL: GetEnvOrDefault("AI_BASE_URL", "https://api.groq.com/openai/v1/"),
		AIModel:   GetEnvOrDefault("AI_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),

		AIRequestsPerMinute: getIntOrDefault("AI_RATE_LIMIT", 20),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ImagesDir:   GetEnvOrDefault("IMAGES_DIR", "images"),
		CORSOrigins: splitList(GetEnvOrDefault("CORS_ORIGINS", "*")),
	}
}

func GetMongoURI() string {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI is not set in environment variables")
	}
	return mongoURI
}

func GetAIKey() string {
	key := os.Getenv("GROQ_API_KEY")
	if key == "" {
		log.Fatal("GROQ_API_KEY is not set in environment variables")
	}
	return key
}

func GetDatabaseName() string {
	return GetEnvOrDefault("MONGODB_DATABASE", "Eco-Items")
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getIntOrDefault(key string, defaultValue int) int {
	n, err := strconv.Atoi(GetEnvOrDefault(key, ""))
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
