package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagewalk/stagewalk/internal/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "main", cfg.Container)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 400*time.Millisecond, cfg.Timing.StepInterval)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_YAMLWithDurations(t *testing.T) {
	path := writeConfig(t, "stagewalk.yaml", `
addr: ":9000"
log_level: debug
redis:
  addr: "localhost:6379"
  db: 2
timing:
  initial_delay: 100ms
  step_interval: 50ms
  pulse_duration: 25ms
  fit_duration: 40ms
  skip_settle_delay: 200ms
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 100*time.Millisecond, cfg.Timing.InitialDelay)
	assert.Equal(t, 50*time.Millisecond, cfg.Timing.StepInterval)
	assert.Equal(t, 200*time.Millisecond, cfg.Timing.SkipSettleDelay)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "stagewalk.yaml", `
addr: ":7777"
timing:
  step_interval: 10ms
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Addr)
	assert.Equal(t, 10*time.Millisecond, cfg.Timing.StepInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Timing.InitialDelay, "unset fields keep their defaults")
	assert.Equal(t, "main", cfg.Container)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "stagewalk.json", `{"addr": ":9090", "redis": {"addr": "redis:6379"}}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "stagewalk.yaml", `addr: ":9000"`)

	t.Setenv("STAGEWALK_ADDR", ":6000")
	t.Setenv("STAGEWALK_LOG_LEVEL", "warn")
	t.Setenv("STAGEWALK_REDIS_ADDR", "override:6379")
	t.Setenv("STAGEWALK_REDIS_DB", "7")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":6000", cfg.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "override:6379", cfg.Redis.Addr)
	assert.Equal(t, 7, cfg.Redis.DB)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "stagewalk.yaml", "addr: [broken")
	_, err := config.Load(path)
	assert.Error(t, err)
}
