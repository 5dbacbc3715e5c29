package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost      = "127.0.0.1"
	DefaultPort      = 5000
	DefaultPrecision = 6
	DefaultTol       = 1e-6
	DefaultMaxIter   = 100
	DefaultH         = 0.1
	DefaultTimeout   = 10 * time.Second
	DefaultMaxSteps  = 100_000
)

type Config struct {
	Server    ServerConfig `yaml:"server"`
	Debug     bool         `yaml:"debug"`
	Precision int          `yaml:"precision"`
	Newton    NewtonConfig `yaml:"newton"`
	ODE       ODEConfig    `yaml:"ode"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// Timeout bounds the computation of a single request.
	Timeout time.Duration `yaml:"timeout"`

	// MaxSteps bounds the grid size and max_iter a request may ask for.
	MaxSteps int `yaml:"max_steps"`
}

type NewtonConfig struct {
	Tol             float64 `yaml:"tol"`
	MaxIter         int     `yaml:"max_iter"`
	DerivativeGuard float64 `yaml:"derivative_guard"`
}

type ODEConfig struct {
	H float64 `yaml:"h"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    DefaultHost,
			Port:    DefaultPort,
			Timeout:  DefaultTimeout,
			MaxSteps: DefaultMaxSteps,
		},
		Precision: DefaultPrecision,
		Newton: NewtonConfig{
			Tol:     DefaultTol,
			MaxIter: DefaultMaxIter,
		},
		ODE: ODEConfig{
			H: DefaultH,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides the server settings from NUMTRACE_HOST and
// NUMTRACE_PORT. NUMTRACE_ENV=development turns on debug mode.
func (c *Config) ApplyEnv() error {
	if host := os.Getenv("NUMTRACE_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("NUMTRACE_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("NUMTRACE_PORT: %w", err)
		}
		c.Server.Port = p
	}
	if os.Getenv("NUMTRACE_ENV") == "development" {
		c.Debug = true
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	case c.Server.Timeout <= 0:
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	case c.Server.MaxSteps < 1:
		return fmt.Errorf("server.max_steps must be at least 1, got %d", c.Server.MaxSteps)
	case c.Precision < 0 || c.Precision > 17:
		return fmt.Errorf("precision must be in [0, 17], got %d", c.Precision)
	case c.Newton.Tol <= 0:
		return fmt.Errorf("newton.tol must be positive, got %g", c.Newton.Tol)
	case c.Newton.MaxIter < 1:
		return fmt.Errorf("newton.max_iter must be at least 1, got %d", c.Newton.MaxIter)
	case c.Newton.DerivativeGuard < 0:
		return fmt.Errorf("newton.derivative_guard must not be negative, got %g", c.Newton.DerivativeGuard)
	case c.ODE.H <= 0:
		return fmt.Errorf("ode.h must be positive, got %g", c.ODE.H)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
