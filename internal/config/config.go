package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const insecureJWTSecret = "supersecretkey"

type Config struct {
	Addr         string        `yaml:"addr"`
	JWTSecret    string        `yaml:"jwt_secret"`
	APITimeout   time.Duration `yaml:"timeout"`
	DatabasePath string        `yaml:"database_path"`
}

// LoadConfig builds a config from environment defaults, optionally
// overridden by a YAML file.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:         getEnv("BUILDSITE_ADDR", ":8080"),
		JWTSecret:    getEnv("BUILDSITE_JWT_SECRET", insecureJWTSecret),
		APITimeout:   15 * time.Second,
		DatabasePath: getEnv("BUILDSITE_DATABASE_PATH", "buildsite.db"),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that cannot run safely. The built-in
// JWT secret is only acceptable when BUILDSITE_ENV=development.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if c.JWTSecret == insecureJWTSecret && os.Getenv("BUILDSITE_ENV") != "development" {
		return fmt.Errorf("refusing to run with the default jwt_secret outside development")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
