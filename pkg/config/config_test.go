package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Provider.Timeout.Std() != 10*time.Second {
		t.Errorf("Provider.Timeout = %v, want 10s", cfg.Provider.Timeout.Std())
	}
	if cfg.Auth.TokenTTL.Std() != time.Hour {
		t.Errorf("Auth.TokenTTL = %v, want 1h", cfg.Auth.TokenTTL.Std())
	}
	if cfg.Render.Width != 1400 || cfg.Render.FontSize != 48 || cfg.Render.LineHeight != 60 || cfg.Render.Margin != 20 {
		t.Errorf("Render defaults = %+v", cfg.Render)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults().Validate() = %v", err)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "penman.toml")
	content := `
[server]
port = 8080

[provider]
timeout = "3s"
email = "ops@example.com"

[auth]
secret = "from-file"

[redis]
addr = "localhost:6379"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "9090")
	t.Setenv("PENMAN_AUTH_SECRET", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("PORT should override file: got %d", cfg.Server.Port)
	}
	if cfg.Auth.Secret != "from-env" {
		t.Errorf("Auth.Secret = %q, want from-env", cfg.Auth.Secret)
	}
	if cfg.Provider.Timeout.Std() != 3*time.Second {
		t.Errorf("Provider.Timeout = %v, want 3s", cfg.Provider.Timeout.Std())
	}
	if cfg.Provider.Email != "ops@example.com" {
		t.Errorf("Provider.Email = %q", cfg.Provider.Email)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Redis.Addr)
	}
	if cfg.Mongo.Database != "penman" {
		t.Errorf("unset file keys must keep defaults, Mongo.Database = %q", cfg.Mongo.Database)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alt.toml")
	if err := os.WriteFile(path, []byte("[cache]\nttl = \"1h\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvFile, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.TTL.Std() != time.Hour {
		t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL.Std())
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		os.WriteFile(path, []byte("[provider]\ntimeout = \"soon\"\n"), 0o644)
		if _, err := Load(path); err == nil {
			t.Error("expected error for bad duration")
		}
	})

	t.Run("bad env", func(t *testing.T) {
		t.Setenv("PORT", "not-a-number")
		if _, err := Load(""); err == nil {
			t.Error("expected error for non-numeric PORT")
		}
	})

	t.Run("too many provider attempts", func(t *testing.T) {
		t.Setenv("PENMAN_PROVIDER_ATTEMPTS", "10")
		if _, err := Load(""); err == nil {
			t.Error("expected error for more than four attempts")
		}
	})

	t.Run("zero provider backoff", func(t *testing.T) {
		t.Setenv("PENMAN_PROVIDER_BACKOFF", "0s")
		if _, err := Load(""); err == nil {
			t.Error("expected error for a zero backoff")
		}
	})

	t.Run("invalid render", func(t *testing.T) {
		t.Setenv("PENMAN_RENDER_WIDTH", "30")
		if _, err := Load(""); err == nil {
			t.Error("expected error when width does not fit the margin")
		}
	})
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 5000}
	if got := s.Addr(); got != "127.0.0.1:5000" {
		t.Errorf("Addr() = %q", got)
	}
}
