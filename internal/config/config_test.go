package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()

	t.Setenv("BOOKSHELF_PRIMARY.ENV", "development")
	t.Setenv("BOOKSHELF_SERVER.PORT", "5555")
	t.Setenv("BOOKSHELF_SERVER.READ_TIMEOUT", "30")
	t.Setenv("BOOKSHELF_SERVER.WRITE_TIMEOUT", "30")
	t.Setenv("BOOKSHELF_SERVER.IDLE_TIMEOUT", "60")
	t.Setenv("BOOKSHELF_SERVER.CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://books.example.com")
	t.Setenv("BOOKSHELF_STORE.DRIVER", "memory")
}

func TestLoadConfig_MemoryDriver(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "5555", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://books.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Nil(t, cfg.Database)
	assert.Nil(t, cfg.Redis)
	assert.False(t, cfg.Job.Enabled)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "bookshelf", cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, float64(DefaultRateLimit), cfg.Server.GetRateLimit())
}

func TestLoadConfig_RateLimitAndCSRF(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BOOKSHELF_SERVER.RATE_LIMIT", "5")
	t.Setenv("BOOKSHELF_SERVER.DISABLE_CSRF", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, float64(5), cfg.Server.GetRateLimit())
	assert.True(t, cfg.Server.DisableCSRF)
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BOOKSHELF_STORE.DRIVER", "mongo")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfig_PostgresNeedsDatabase(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BOOKSHELF_STORE.DRIVER", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database config is required")
}

func TestLoadConfig_RedisDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BOOKSHELF_STORE.DRIVER", "redis")
	t.Setenv("BOOKSHELF_REDIS.ADDRESS", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.NotNil(t, cfg.Redis)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
}

func TestLoadConfig_JobsNeedRedis(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BOOKSHELF_JOB.ENABLED", "true")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "background jobs")
}

func TestLoadConfig_MissingPort(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BOOKSHELF_SERVER.PORT", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "local"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}
