package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the settings of the HTTP server.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"`

	DefaultLength       int    `env:"PASSGEN_LENGTH" envDefault:"12"`
	MaxLength           int    `env:"PASSGEN_MAX_LENGTH" envDefault:"128"`
	DefaultSpecialChars string `env:"PASSGEN_SPECIAL_CHARS" envDefault:"!@#$%^&*"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// CLI holds the only environment setting the passgen command reads.
type CLI struct {
	SpecialChars string `env:"PASSGEN_SPECIAL_CHARS" envDefault:"!@#$%^&*"`
}

// ParseCLI reads the CLI settings from the process environment. Server
// settings and .env files are ignored.
func ParseCLI() (CLI, error) {
	cfg, err := env.ParseAs[CLI]()
	if err != nil {
		return CLI{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()
	return Parse()
}

// Parse builds a Config from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DefaultLength <= 0 || c.MaxLength < c.DefaultLength {
		return errors.New("PASSGEN_LENGTH must be positive and not above PASSGEN_MAX_LENGTH")
	}
	if c.DefaultSpecialChars == "" {
		return errors.New("PASSGEN_SPECIAL_CHARS must not be empty")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}
