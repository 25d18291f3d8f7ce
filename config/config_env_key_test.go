package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"proximity": map[string]any{
			"defaultRadiusKm": 10,
		},
		"redis": map[string]any{
			"ratingTtl": "10m",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "PROXIMITY_DEFAULTRADIUSKM", want: "proximity.defaultRadiusKm"},
		{envKey: "REDIS_RATINGTTL", want: "redis.ratingTtl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

const sampleConfig = `
env:
  env: develop
  serviceName: bridge
storage:
  driver: memory
proximity:
  defaultRadiusKm: 10
  maxRadiusKm: 50
redis:
  addr: localhost:6379
  ratingTtl: 5m
`

func TestLoadWithEnv_OverridesFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(sampleConfig), 0o600))
	t.Chdir(dir)
	t.Setenv("PROXIMITY_MAXRADIUSKM", "25")
	t.Setenv("REDIS_RATINGTTL", "90s")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "bridge", cfg.Env.ServiceName)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.InDelta(t, 25.0, cfg.Proximity.MaxRadiusKm, 1e-9)
	require.NotNil(t, cfg.Redis)
	assert.Equal(t, 90*time.Second, cfg.Redis.RatingTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	assert.ErrorContains(t, err, "config.yaml not found")
}

func TestApplyDefaultsAndValidate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := &Config{Redis: &RedisConfig{Addr: "localhost:6379"}}
		applyDefaults(cfg)

		assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
		assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
		assert.InDelta(t, defaultDefaultRadiusKm, cfg.Proximity.DefaultRadiusKm, 1e-9)
		assert.Equal(t, defaultRatingTTL, cfg.Redis.RatingTTL)
	})

	t.Run("postgres driver needs postgres section", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		assert.ErrorContains(t, cfg.validate(), "postgres section is missing")
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &Config{Storage: StorageConfig{Driver: "sqlite"}}
		applyDefaults(cfg)
		assert.ErrorContains(t, cfg.validate(), "unknown storage driver")
	})

	t.Run("max radius below default", func(t *testing.T) {
		cfg := &Config{Storage: StorageConfig{Driver: StorageDriverMemory}}
		cfg.Proximity.MaxRadiusKm = 5
		applyDefaults(cfg)
		assert.ErrorContains(t, cfg.validate(), "below defaultRadiusKm")
	})

	t.Run("memory driver is valid", func(t *testing.T) {
		cfg := &Config{Storage: StorageConfig{Driver: StorageDriverMemory}}
		applyDefaults(cfg)
		assert.NoError(t, cfg.validate())
	})
}
