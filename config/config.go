package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"oneof=development production"`

	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`

	// Metrics are on unless explicitly disabled; a Disabled flag keeps the
	// zero value meaningful under defaults.Set.
	Metrics struct {
		Disabled bool   `yaml:"disabled"`
		Path     string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`

	MarketData struct {
		BaseURL string        `yaml:"base_url" default:"https://api.tiingo.com" validate:"url"`
		Timeout time.Duration `yaml:"timeout" default:"15s"`
	} `yaml:"market_data"`

	Simulation struct {
		HorizonDays  int     `yaml:"horizon_days" default:"252" validate:"gt=0"`
		Paths        int     `yaml:"paths" default:"1000" validate:"gt=0"`
		LookbackDays int     `yaml:"lookback_days" default:"21" validate:"gt=0"`
		Model        string  `yaml:"model" default:"lognormal" validate:"oneof=lognormal normal jump_diffusion"`
		Seed         uint64  `yaml:"seed" default:"42"`
		PriceFloor   float64 `yaml:"price_floor" default:"0.01" validate:"gt=0"`
		PriceCap     float64 `yaml:"price_cap" default:"3000" validate:"gtfield=PriceFloor"`
		Workers      int     `yaml:"workers" validate:"gte=0"`
	} `yaml:"simulation"`

	Symbols []string `yaml:"symbols"`
}

// Default returns a config with every field at its default value.
func Default() (*Config, error) {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a YAML configuration file, fills unset fields with defaults,
// and validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := &Config{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}
