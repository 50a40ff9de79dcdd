package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Auth      AuthConfig      `toml:"auth"`
	Uploads   UploadsConfig   `toml:"uploads"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Email     EmailConfig     `toml:"email"`
	Log       LogConfig       `toml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	TrustProxy   bool     `toml:"trust_proxy"`
	CORSOrigins  []string `toml:"cors_origins"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	Name         string `toml:"name"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// AuthConfig contains token signing and admin seed settings.
type AuthConfig struct {
	JWTSecret     string   `toml:"jwt_secret"`
	TokenTTL      Duration `toml:"token_ttl"`
	AdminEmail    string   `toml:"admin_email"`
	AdminPassword string   `toml:"admin_password"`
	BcryptCost    int      `toml:"bcrypt_cost"`
}

// UploadsConfig contains resume storage settings.
type UploadsConfig struct {
	Dir               string   `toml:"dir"`
	AllowedExtensions []string `toml:"allowed_extensions"`
	MaxFileSize       int64    `toml:"max_file_size"`
}

// RateLimitConfig contains the public submission limiter settings.
type RateLimitConfig struct {
	Limit         int      `toml:"limit"`
	Window        Duration `toml:"window"`
	SweepSchedule string   `toml:"sweep_schedule"`
}

// EmailConfig contains notification delivery settings.
type EmailConfig struct {
	Provider          string   `toml:"provider"`
	APIKey            string   `toml:"api_key"`
	From              string   `toml:"from"`
	To                string   `toml:"to"`
	BaseURL           string   `toml:"base_url"`
	Timeout           Duration `toml:"timeout"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a [time.Duration] that decodes from strings such as "24h" or "10m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q", ErrInvalidConfig, text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load resolves the runtime configuration: the TOML file at path when it exists (defaults otherwise),
// then a .env file in the working directory, then environment variable overrides.
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			config = loaded
		}
	}

	// .env is optional; values already present in the environment win
	_ = godotenv.Load()

	if err := ApplyEnv(config, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides config values from environment variables found through lookup.
func ApplyEnv(c *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	list := func(key string, dst *[]string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = splitList(v)
		}
	}

	str("HOST", &c.Server.Host)
	str("DATABASE_PATH", &c.Database.Path)
	str("DB_NAME", &c.Database.Name)
	str("JWT_SECRET", &c.Auth.JWTSecret)
	str("ADMIN_EMAIL", &c.Auth.AdminEmail)
	str("ADMIN_PASSWORD", &c.Auth.AdminPassword)
	str("UPLOAD_DIR", &c.Uploads.Dir)
	str("EMAIL_PROVIDER", &c.Email.Provider)
	str("RESEND_API_KEY", &c.Email.APIKey)
	str("EMAIL_FROM", &c.Email.From)
	str("EMAIL_TO", &c.Email.To)
	str("LOG_LEVEL", &c.Log.Level)
	list("ALLOWED_EXTENSIONS", &c.Uploads.AllowedExtensions)
	list("CORS_ORIGINS", &c.Server.CORSOrigins)

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PORT=%q", ErrInvalidConfig, v)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("JWT_EXPIRATION_HOURS"); ok && v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: JWT_EXPIRATION_HOURS=%q", ErrInvalidConfig, v)
		}
		c.Auth.TokenTTL = Duration{time.Duration(hours) * time.Hour}
	}
	if v, ok := lookup("MAX_FILE_SIZE"); ok && v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: MAX_FILE_SIZE=%q", ErrInvalidConfig, v)
		}
		c.Uploads.MaxFileSize = size
	}
	if v, ok := lookup("RATE_LIMIT_MAX"); ok && v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: RATE_LIMIT_MAX=%q", ErrInvalidConfig, v)
		}
		c.RateLimit.Limit = limit
	}
	if v, ok := lookup("RATE_LIMIT_WINDOW"); ok && v != "" {
		if err := c.RateLimit.Window.UnmarshalText([]byte(v)); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	switch {
	case c.Auth.JWTSecret == "":
		return fmt.Errorf("%w: auth.jwt_secret is empty", ErrInvalidConfig)
	case c.Auth.TokenTTL.Duration <= 0:
		return fmt.Errorf("%w: auth.token_ttl must be positive", ErrInvalidConfig)
	case c.Uploads.MaxFileSize <= 0:
		return fmt.Errorf("%w: uploads.max_file_size must be positive", ErrInvalidConfig)
	case len(c.Uploads.AllowedExtensions) == 0:
		return fmt.Errorf("%w: uploads.allowed_extensions is empty", ErrInvalidConfig)
	case c.RateLimit.Limit <= 0 || c.RateLimit.Window.Duration <= 0:
		return fmt.Errorf("%w: rate_limit.limit and rate_limit.window must be positive", ErrInvalidConfig)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
