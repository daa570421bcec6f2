package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("ZN_AGENT_HOST", "redis.internal")

	assert.Equal(t, "host: redis.internal", expandEnv("host: ${ZN_AGENT_HOST}"))
	assert.Equal(t, "host: redis.internal", expandEnv("host: ${ZN_AGENT_HOST:localhost}"))
	assert.Equal(t, "port: 6379", expandEnv("port: ${ZN_AGENT_UNSET_PORT:6379}"))
	assert.Equal(t, "empty: ", expandEnv("empty: ${ZN_AGENT_UNSET_PORT:}"))
	assert.Equal(t, "raw: ${ZN_AGENT_UNSET_PORT}", expandEnv("raw: ${ZN_AGENT_UNSET_PORT}"))
}

func TestLoadFromDir_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "unit")

	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "z-novel-ai-agent", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.HTTP.ReadTimeout)
	assert.Equal(t, "stream:story:gen", cfg.Messaging.RedisStream.Stream)
	assert.InDelta(t, 0.3, cfg.Agent.Readiness.MinReadiness, 1e-9)
	assert.InDelta(t, 0.7, cfg.Agent.Decision.IdealThreshold, 1e-9)
	assert.Equal(t, 8, cfg.Agent.Decision.ForceCreateTurns)
	assert.True(t, cfg.Agent.Decision.Adaptive)
	assert.Equal(t, 72*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "agent:session:", cfg.Session.KeyPrefix)
}

func TestLoadFromDir_FileAndEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_ENV", "unit")
	t.Setenv("ZN_AGENT_MIN_READY", "0.4")

	base := `
app:
  name: agent-under-test
agent:
  readiness:
    min_readiness: ${ZN_AGENT_MIN_READY:0.3}
  intent:
    extra_keywords:
      create: ["落笔"]
  decision:
    lengths:
      outline: 600
session:
  ttl: 1h
`
	overlay := `
agent:
  completer:
    default_genre: scifi
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(base), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.unit.yaml"), []byte(overlay), 0o600))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "agent-under-test", cfg.App.Name)
	assert.InDelta(t, 0.4, cfg.Agent.Readiness.MinReadiness, 1e-9)
	assert.Equal(t, []string{"落笔"}, cfg.Agent.Intent.ExtraKeywords["create"])
	assert.Equal(t, 600, cfg.Agent.Decision.Lengths["outline"])
	assert.Equal(t, "scifi", cfg.Agent.Completer.DefaultGenre)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	// 未覆盖的字段仍取默认值
	assert.Equal(t, 8, cfg.Agent.Decision.ForceCreateTurns)
}

func TestLoadFromDir_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_ENV", "unit")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("app: [unclosed"), 0o600))

	_, err := LoadFromDir(dir)
	assert.Error(t, err)
}
