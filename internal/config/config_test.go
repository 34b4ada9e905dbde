// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, defaults, and duration parsing

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

database:
  path: "./test.db"

auth:
  jwt_secret: "config-test-secret-value-32-bytes"
  cookie_name: "calibra_session"
  token_ttl: "12h"
  environment: "production"

storage:
  endpoint: "http://localhost:9000"
  region: "us-east-1"
  bucket: "calibra-attachments"
  access_key: "minio"
  secret_key: "minio123"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8080")
	}
	if cfg.Database.Path != "./test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "./test.db")
	}
	if cfg.Auth.CookieName != "calibra_session" {
		t.Errorf("Auth.CookieName = %q, want %q", cfg.Auth.CookieName, "calibra_session")
	}
	if cfg.Auth.TokenTTL != 12*time.Hour {
		t.Errorf("Auth.TokenTTL = %v, want %v", cfg.Auth.TokenTTL, 12*time.Hour)
	}
	if !cfg.Auth.IsProduction() {
		t.Error("Auth.IsProduction() = false, want true")
	}
	if cfg.Storage.Bucket != "calibra-attachments" {
		t.Errorf("Storage.Bucket = %q, want %q", cfg.Storage.Bucket, "calibra-attachments")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_Defaults(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "localhost:8080"

database:
  path: "./test.db"

auth:
  jwt_secret: "config-test-secret-value-32-bytes"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.CookieName != DefaultCookieName {
		t.Errorf("Auth.CookieName = %q, want default %q", cfg.Auth.CookieName, DefaultCookieName)
	}
	if cfg.Auth.TokenTTL != DefaultTokenTTL {
		t.Errorf("Auth.TokenTTL = %v, want default %v", cfg.Auth.TokenTTL, DefaultTokenTTL)
	}
	if cfg.Auth.Environment != EnvDevelopment {
		t.Errorf("Auth.Environment = %q, want default %q", cfg.Auth.Environment, EnvDevelopment)
	}
	if cfg.Auth.IsProduction() {
		t.Error("Auth.IsProduction() = true, want false")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("CALIBRA_TEST_SECRET", "env-expanded-secret-value-32-byte")

	configPath := writeConfig(t, `
server:
  http_addr: "localhost:8080"

database:
  path: "./test.db"

auth:
  jwt_secret: "${CALIBRA_TEST_SECRET}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.JWTSecret != "env-expanded-secret-value-32-byte" {
		t.Errorf("Auth.JWTSecret = %q, want expanded env value", cfg.Auth.JWTSecret)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "localhost:8080"

database:
  path: "./test.db"

auth:
  jwt_secret: "config-test-secret-value-32-bytes"
  token_ttl: "not-a-duration"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for invalid duration, got nil")
	}
	if !strings.Contains(err.Error(), "token_ttl") {
		t.Errorf("error %q should mention token_ttl", err.Error())
	}
}

func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing http addr",
			content: `
database:
  path: "./test.db"
auth:
  jwt_secret: "config-test-secret-value-32-bytes"
`,
			wantErr: "server.http_addr",
		},
		{
			name: "missing database path",
			content: `
server:
  http_addr: "localhost:8080"
auth:
  jwt_secret: "config-test-secret-value-32-bytes"
`,
			wantErr: "database.path",
		},
		{
			name: "missing jwt secret",
			content: `
server:
  http_addr: "localhost:8080"
database:
  path: "./test.db"
`,
			wantErr: "auth.jwt_secret",
		},
		{
			name: "invalid environment",
			content: `
server:
  http_addr: "localhost:8080"
database:
  path: "./test.db"
auth:
  jwt_secret: "config-test-secret-value-32-bytes"
  environment: "staging"
`,
			wantErr: "auth.environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeConfig(t, tt.content)

			_, err := Load(configPath)
			if err == nil {
				t.Fatal("Load() expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}
