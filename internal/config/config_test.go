package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, 6, cfg.Precision)
	assert.Equal(t, 100, cfg.Newton.MaxIter)
	assert.Equal(t, DefaultMaxSteps, cfg.Server.MaxSteps)
	assert.Zero(t, cfg.Newton.DerivativeGuard)
	assert.False(t, cfg.Debug)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:5000", cfg.Addr())
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numtrace.yaml")

	cfg := DefaultConfig()
	cfg.Precision = 4
	cfg.Newton.DerivativeGuard = 1e-12
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numtrace.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  timeout: 2s\nnewton:\n  tol: 1.0e-9\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Server.Timeout)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultMaxSteps, cfg.Server.MaxSteps)
	assert.Equal(t, 1e-9, cfg.Newton.Tol)
	assert.Equal(t, DefaultMaxIter, cfg.Newton.MaxIter)
	assert.Equal(t, DefaultH, cfg.ODE.H)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: [1, 2"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("NUMTRACE_HOST", "0.0.0.0")
	t.Setenv("NUMTRACE_PORT", "8080")
	t.Setenv("NUMTRACE_ENV", "development")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.True(t, cfg.Debug)

	t.Setenv("NUMTRACE_PORT", "http")
	assert.Error(t, DefaultConfig().ApplyEnv())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"timeout", func(c *Config) { c.Server.Timeout = 0 }},
		{"max steps", func(c *Config) { c.Server.MaxSteps = 0 }},
		{"precision", func(c *Config) { c.Precision = 20 }},
		{"tol", func(c *Config) { c.Newton.Tol = 0 }},
		{"max iter", func(c *Config) { c.Newton.MaxIter = 0 }},
		{"guard", func(c *Config) { c.Newton.DerivativeGuard = -1 }},
		{"step", func(c *Config) { c.ODE.H = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("sqrt2")
	require.NotNil(t, p)
	assert.True(t, p.IsRoot())
	assert.Equal(t, "x**2 - 2", p.Function)

	p = GetPreset("exponential")
	require.NotNil(t, p)
	assert.False(t, p.IsRoot())
	assert.Equal(t, "exp(x)", p.Exact)

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestListPresets(t *testing.T) {
	assert.Equal(t,
		[]string{"cosine", "cubic", "exponential", "logistic", "quadratic", "sqrt2"},
		ListPresets())
}
