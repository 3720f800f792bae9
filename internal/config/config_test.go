package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_ENV", "missing")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
	assert.Equal(t, 60*time.Second, cfg.PongWait)
	assert.Equal(t, "kick", cfg.Backpressure)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONFIG_ENV", "missing")
	t.Setenv("LOBBY_PORT", "9090")
	t.Setenv("LOBBY_BACKPRESSURE", "drop")
	t.Setenv("LOBBY_SEND_BUFFER", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "drop", cfg.Backpressure)
	assert.Equal(t, 8, cfg.SendBuffer)
}

func TestValidate(t *testing.T) {
	valid := Config{Port: 8080, PingPeriod: time.Second, PongWait: 2 * time.Second, SendBuffer: 1, LogLevel: "info"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port", mutate: func(c *Config) { c.Port = 0 }},
		{name: "pong before ping", mutate: func(c *Config) { c.PongWait = c.PingPeriod }},
		{name: "send buffer", mutate: func(c *Config) { c.SendBuffer = 0 }},
		{name: "log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
