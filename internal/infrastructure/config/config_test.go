package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://www.example.com/recipe", cfg.Scraper.URL)
	assert.Equal(t, "h1.recipe-title", cfg.Scraper.TitleSelector)
	assert.Equal(t, "li.ingredient", cfg.Scraper.IngredientSelector)
	assert.Equal(t, "div.instructions", cfg.Scraper.InstructionsSelector)
	assert.Equal(t, 15*time.Second, cfg.Scraper.Timeout)
	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 10, cfg.Catalog.TopLimit)
	assert.False(t, cfg.Recommend.SharedVocabulary)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	require.NoError(t, validateConfig(cfg))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("RECIPE_URL", "https://recipes.test/pancakes")
	t.Setenv("APP_RECOMMEND_SHARED_VOCABULARY", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://recipes.test/pancakes", cfg.Scraper.URL)
	assert.True(t, cfg.Recommend.SharedVocabulary)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown cache driver", "APP_CACHE_DRIVER", "memcached"},
		{"zero workers", "APP_QUEUE_WORKERS", "0"},
		{"zero top limit", "APP_CATALOG_TOP_LIMIT", "0"},
		{"negative retries", "APP_SCRAPER_RETRY_COUNT", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestValidateConfig_MissingSelector(t *testing.T) {
	cfg := Default()
	cfg.Scraper.InstructionsSelector = ""
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfig_RedisRequiresAddr(t *testing.T) {
	cfg := Default()
	cfg.Cache.Driver = CacheDriverRedis
	cfg.Cache.RedisAddr = ""
	assert.Error(t, validateConfig(cfg))

	cfg.Cache.RedisAddr = "localhost:6379"
	assert.NoError(t, validateConfig(cfg))

	cfg.Cache.Enabled = false
	cfg.Cache.RedisAddr = ""
	assert.NoError(t, validateConfig(cfg))
}
