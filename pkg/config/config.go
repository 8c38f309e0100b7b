// Package config loads penman's runtime configuration.
//
// Values are layered: built-in defaults, then an optional TOML file, then
// environment variables. Later layers override earlier ones field by field.
//
//	[server]
//	port = 5000
//
//	[provider]
//	base_url = "https://api.mymemory.translated.net/get"
//	timeout = "10s"
//
//	[auth]
//	secret = "change-me"
//
// The bare PORT variable is honored for the listen port; every other
// variable is prefixed with PENMAN_, e.g. PENMAN_AUTH_SECRET.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// EnvFile names the variable that points at a TOML config file.
const EnvFile = "PENMAN_CONFIG"

// MaxProviderAttempts caps provider.attempts: one call plus three retries.
const MaxProviderAttempts = 4

// Config is the complete runtime configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Provider ProviderConfig `toml:"provider" envPrefix:"PENMAN_PROVIDER_"`
	Auth     AuthConfig     `toml:"auth" envPrefix:"PENMAN_AUTH_"`
	Mongo    MongoConfig    `toml:"mongo" envPrefix:"PENMAN_MONGO_"`
	Redis    RedisConfig    `toml:"redis" envPrefix:"PENMAN_REDIS_"`
	Cache    CacheConfig    `toml:"cache" envPrefix:"PENMAN_CACHE_"`
	Render   RenderConfig   `toml:"render" envPrefix:"PENMAN_RENDER_"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string   `toml:"host" env:"PENMAN_HOST"`
	Port            int      `toml:"port" env:"PORT"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" env:"PENMAN_SHUTDOWN_TIMEOUT"`
	CORSOrigins     []string `toml:"cors_origins" env:"PENMAN_CORS_ORIGINS" envSeparator:","`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ProviderConfig configures the upstream translation provider.
type ProviderConfig struct {
	BaseURL  string   `toml:"base_url" env:"BASE_URL"`
	Timeout  Duration `toml:"timeout" env:"TIMEOUT"`
	Email    string   `toml:"email" env:"EMAIL"`
	Attempts int      `toml:"attempts" env:"ATTEMPTS"`
	Backoff  Duration `toml:"backoff" env:"BACKOFF"`
}

// AuthConfig configures token signing.
type AuthConfig struct {
	Secret     string   `toml:"secret" env:"SECRET"`
	TokenTTL   Duration `toml:"token_ttl" env:"TOKEN_TTL"`
	BcryptCost int      `toml:"bcrypt_cost" env:"BCRYPT_COST"`
}

// MongoConfig configures the user store. An empty URI selects the
// in-memory store.
type MongoConfig struct {
	URI        string `toml:"uri" env:"URI"`
	Database   string `toml:"database" env:"DATABASE"`
	Collection string `toml:"collection" env:"COLLECTION"`
}

// RedisConfig configures the shared translation cache. An empty address
// disables caching on the server.
type RedisConfig struct {
	Addr     string `toml:"addr" env:"ADDR"`
	Password string `toml:"password" env:"PASSWORD"`
	DB       int    `toml:"db" env:"DB"`
}

// CacheConfig configures translation caching.
type CacheConfig struct {
	TTL Duration `toml:"ttl" env:"TTL"`
	Dir string   `toml:"dir" env:"DIR"`
}

// RenderConfig holds handwriting canvas defaults.
type RenderConfig struct {
	Width      int     `toml:"width" env:"WIDTH"`
	FontSize   float64 `toml:"font_size" env:"FONT_SIZE"`
	LineHeight int     `toml:"line_height" env:"LINE_HEIGHT"`
	Margin     int     `toml:"margin" env:"MARGIN"`
	FontPath   string  `toml:"font" env:"FONT"`
	MaxUpload  int64   `toml:"max_upload" env:"MAX_UPLOAD"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            5000,
			ShutdownTimeout: Duration(10 * time.Second),
			CORSOrigins:     []string{"*"},
		},
		Provider: ProviderConfig{
			BaseURL:  "https://api.mymemory.translated.net/get",
			Timeout:  Duration(10 * time.Second),
			Attempts: 4,
			Backoff:  Duration(time.Second),
		},
		Auth: AuthConfig{
			TokenTTL:   Duration(time.Hour),
			BcryptCost: 10,
		},
		Mongo: MongoConfig{
			Database:   "penman",
			Collection: "users",
		},
		Cache: CacheConfig{
			TTL: Duration(24 * time.Hour),
		},
		Render: RenderConfig{
			Width:      1400,
			FontSize:   48,
			LineHeight: 60,
			Margin:     20,
			MaxUpload:  10 << 20,
		},
	}
}

// Load builds a Config from defaults, the TOML file at path (or the file
// named by PENMAN_CONFIG when path is empty), and the environment.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv(EnvFile)
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks for values no component can run with.
func (c Config) Validate() error {
	switch {
	case c.Server.Port < 0 || c.Server.Port > 65535:
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	case c.Provider.BaseURL == "":
		return fmt.Errorf("provider.base_url is required")
	case c.Provider.Attempts < 1 || c.Provider.Attempts > MaxProviderAttempts:
		return fmt.Errorf("provider.attempts %d out of range [1, %d]", c.Provider.Attempts, MaxProviderAttempts)
	case c.Provider.Backoff <= 0:
		return fmt.Errorf("provider.backoff must be positive")
	case c.Render.Width <= 2*c.Render.Margin:
		return fmt.Errorf("render.width %d too small for margin %d", c.Render.Width, c.Render.Margin)
	case c.Render.FontSize <= 0 || c.Render.LineHeight <= 0:
		return fmt.Errorf("render.font_size and render.line_height must be positive")
	}
	return nil
}

// Duration is a time.Duration that decodes from strings like "10s" in
// TOML and the environment.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
