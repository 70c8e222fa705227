package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("PORT", "")
	t.Setenv("MONGODB_DATABASE", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("AI_RATE_LIMIT", "")
	t.Setenv("IMAGES_DIR", "")
	t.Setenv("ENV", "")

	cfg := LoadConfig()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "Eco-Items", cfg.MongoDatabase)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 20, cfg.AIRequestsPerMinute)
	assert.Equal(t, "images", cfg.ImagesDir)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("ENV", "production")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("AI_RATE_LIMIT", "0")

	cfg := LoadConfig()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 0, cfg.AIRequestsPerMinute)
}

func TestGetIntOrDefaultRejectsGarbage(t *testing.T) {
	t.Setenv("AI_RATE_LIMIT", "lots")
	assert.Equal(t, 20, getIntOrDefault("AI_RATE_LIMIT", 20))

	t.Setenv("AI_RATE_LIMIT", "-3")
	assert.Equal(t, 20, getIntOrDefault("AI_RATE_LIMIT", 20))
}
