package bootstrap

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mdbook-portal/config"
)

func TestInitLogger(t *testing.T) {
	t.Run("json at info drops debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := InitLogger(&buf, config.LogConfig{Level: "info", Format: "json"})

		logger.Debug("hidden")
		logger.Info("shown", "component", "test")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "shown", rec["msg"])
		assert.Equal(t, "test", rec["component"])
	})

	t.Run("text at debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := InitLogger(&buf, config.LogConfig{Level: "debug", Format: "text"})

		logger.Debug("visible")
		assert.Contains(t, buf.String(), "msg=visible")
	})
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("API_URL", "http://portal.test/api/")
	t.Setenv("SESSION_BACKEND", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://portal.test/api", cfg.API.URL)
	assert.Equal(t, "memory", cfg.Session.Backend)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "etcd")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown session backend")
}
