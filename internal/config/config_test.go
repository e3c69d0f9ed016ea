package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/garnizeh/buildsite/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Ensure environment does not interfere
	_ = os.Unsetenv("BUILDSITE_ADDR")
	_ = os.Unsetenv("BUILDSITE_JWT_SECRET")
	_ = os.Unsetenv("BUILDSITE_DATABASE_PATH")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error for empty path: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":8080")
	}
	if cfg.DatabasePath != "buildsite.db" {
		t.Fatalf("unexpected DatabasePath: got %q want %q", cfg.DatabasePath, "buildsite.db")
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("unexpected APITimeout: got %v want %v", cfg.APITimeout, 15*time.Second)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	os.Setenv("BUILDSITE_ADDR", ":7070")
	os.Setenv("BUILDSITE_DATABASE_PATH", "env.db")
	defer os.Unsetenv("BUILDSITE_ADDR")
	defer os.Unsetenv("BUILDSITE_DATABASE_PATH")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Addr != ":7070" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":7070")
	}
	if cfg.DatabasePath != "env.db" {
		t.Fatalf("unexpected DatabasePath: got %q want %q", cfg.DatabasePath, "env.db")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	f, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(f.Name())
	f.Close()

	content := []byte("addr: \":9090\"\njwt_secret: \"filekey\"\ntimeout: \"30s\"\ndatabase_path: \"test.db\"\n")
	if err := os.WriteFile(f.Name(), content, 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := config.LoadConfig(f.Name())
	if err != nil {
		t.Fatalf("LoadConfig returned error for file: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Fatalf("unexpected Addr: got %q want %q", cfg.Addr, ":9090")
	}
	if cfg.JWTSecret != "filekey" {
		t.Fatalf("unexpected JWTSecret: got %q want %q", cfg.JWTSecret, "filekey")
	}
	if cfg.DatabasePath != "test.db" {
		t.Fatalf("unexpected DatabasePath: got %q want %q", cfg.DatabasePath, "test.db")
	}
	if cfg.APITimeout != 30*time.Second {
		t.Fatalf("unexpected APITimeout: got %v want %v", cfg.APITimeout, 30*time.Second)
	}
}

func TestLoadConfig_BadPath(t *testing.T) {
	if _, err := config.LoadConfig("/path/that/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent path, got nil")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	f, err := os.CreateTemp("", "bad-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(f.Name())
	f.Close()

	if err := os.WriteFile(f.Name(), []byte("::: not yaml :::"), 0o600); err != nil {
		t.Fatalf("failed to write bad yaml: %v", err)
	}

	if _, err := config.LoadConfig(f.Name()); err == nil {
		t.Fatalf("expected YAML decode error, got nil")
	}
}

func TestValidate_InsecureJWT_FailsWhenNotDevelopment(t *testing.T) {
	os.Setenv("BUILDSITE_ENV", "production")
	defer os.Unsetenv("BUILDSITE_ENV")

	cfg := &config.Config{
		Addr:         ":8080",
		JWTSecret:    "supersecretkey",
		APITimeout:   5 * time.Second,
		DatabasePath: "buildsite.db",
	}

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for insecure JWT in non-development env")
	}
}

func TestValidate_InsecureJWT_AllowsDevelopment(t *testing.T) {
	os.Setenv("BUILDSITE_ENV", "development")
	defer os.Unsetenv("BUILDSITE_ENV")

	cfg := &config.Config{
		Addr:         ":8080",
		JWTSecret:    "supersecretkey",
		APITimeout:   5 * time.Second,
		DatabasePath: "buildsite.db",
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to succeed in development env, got: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	os.Setenv("BUILDSITE_ENV", "development")
	defer os.Unsetenv("BUILDSITE_ENV")

	base := config.Config{
		Addr:         ":8080",
		JWTSecret:    "strongsecret",
		APITimeout:   5 * time.Second,
		DatabasePath: "buildsite.db",
	}

	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{name: "EmptyAddr", mutate: func(c *config.Config) { c.Addr = "" }},
		{name: "EmptyDatabasePath", mutate: func(c *config.Config) { c.DatabasePath = "" }},
		{name: "EmptySecret", mutate: func(c *config.Config) { c.JWTSecret = "" }},
		{name: "ZeroTimeout", mutate: func(c *config.Config) { c.APITimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected Validate to fail")
			}
		})
	}
}
