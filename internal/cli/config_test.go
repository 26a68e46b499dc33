package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/scenegraph/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Server.ShutdownTimeout.Duration != 10*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 10s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Redis.Prefix != "scenegraph:" {
		t.Errorf("Redis.Prefix = %q, want %q", cfg.Redis.Prefix, "scenegraph:")
	}
	if !reflect.DeepEqual(cfg.Render.Formats, []string{"svg"}) {
		t.Errorf("Render.Formats = %v, want [svg]", cfg.Render.Formats)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[cache]
scope = "team-a"

[redis]
addr = "localhost:6379"

[server]
addr             = ":9090"
shutdown_timeout = "3s"

[render]
formats = ["svg", "json"]
shadows = true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Cache.Scope != "team-a" {
		t.Errorf("Cache.Scope = %q, want %q", cfg.Cache.Scope, "team-a")
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Redis.Addr, "localhost:6379")
	}
	if cfg.Redis.Prefix != "scenegraph:" {
		t.Errorf("Redis.Prefix = %q, want default kept", cfg.Redis.Prefix)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9090")
	}
	if cfg.Server.ShutdownTimeout.Duration != 3*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 3s", cfg.Server.ShutdownTimeout)
	}
	if !reflect.DeepEqual(cfg.Render.Formats, []string{"svg", "json"}) {
		t.Errorf("Render.Formats = %v, want [svg json]", cfg.Render.Formats)
	}
	if !cfg.Render.Shadows {
		t.Error("Render.Shadows = false, want true")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"unknown key", "[server]\nport = 8080\n", errors.ErrCodeInvalidInput},
		{"bad format", "[render]\nformats = [\"png\"]\n", errors.ErrCodeInvalidInput},
		{"bad duration", "[server]\nshutdown_timeout = \"soon\"\n", errors.ErrCodeInvalidFormat},
		{"bad toml", "[server\n", errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("LoadConfig() error = nil")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := LoadConfig(""); err != nil {
		t.Errorf("LoadConfig(\"\") with no default file error = %v, want nil", err)
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if got := errors.GetCode(err); got != errors.ErrCodeFileNotFound {
		t.Errorf("explicit missing file code = %q, want %q", got, errors.ErrCodeFileNotFound)
	}
}
