package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// unsetenv clears key for the duration of the test
func unsetenv(t *testing.T, key string) {
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "BLOGLY_DB_DRIVER", "BLOGLY_DB_DSN", "BLOGLY_SQL_ECHO",
		"BLOGLY_LOG_LEVEL", "BLOGLY_LOG_FORMAT", "GIN_MODE",
		"BLOGLY_READ_TIMEOUT", "BLOGLY_WRITE_TIMEOUT", "BLOGLY_IDLE_TIMEOUT", "BLOGLY_SHUTDOWN_TIMEOUT",
	} {
		unsetenv(t, key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Port)
	}
	if cfg.DBDriver != DriverSQLite {
		t.Errorf("Expected sqlite driver, got %s", cfg.DBDriver)
	}
	if cfg.DBDSN != "blogly.db" {
		t.Errorf("Expected blogly.db, got %s", cfg.DBDSN)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected 30s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Expected :8080, got %s", cfg.Addr())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("BLOGLY_DB_DRIVER", "postgres")
	t.Setenv("BLOGLY_DB_DSN", "host=localhost dbname=blogly")
	t.Setenv("BLOGLY_SQL_ECHO", "true")
	t.Setenv("BLOGLY_READ_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" || cfg.DBDriver != DriverPostgres || !cfg.SQLEcho {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Errorf("Expected 5s read timeout, got %s", cfg.ReadTimeout)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7070")

	path := filepath.Join(t.TempDir(), ".env")
	content := "BLOGLY_DB_DSN=from-file.db\nPORT=1111\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBDSN != "from-file.db" {
		t.Errorf("Expected DSN from file, got %s", cfg.DBDSN)
	}
	// Existing environment variables are not overridden
	if cfg.Port != "7070" {
		t.Errorf("Expected port 7070, got %s", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "BLOGLY_DB_DRIVER", "mysql"},
		{"bad log level", "BLOGLY_LOG_LEVEL", "loud"},
		{"bad log format", "BLOGLY_LOG_FORMAT", "xml"},
		{"bad gin mode", "GIN_MODE", "fast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}
