package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "bidsight.db", cfg.Store.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NotEmpty(t, cfg.Anthropic.Model)
	assert.Greater(t, cfg.Anthropic.RequestsPerSecond, 0.0)
}

func TestApplyDefaults(t *testing.T) {
	v := viper.New()
	ApplyDefaults(v)
	assert.Equal(t, "sqlite", v.GetString("store.driver"))
	assert.Equal(t, []string{"*"}, v.GetStringSlice("server.allowed_origins"))
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	require.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}
