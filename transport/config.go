package transport

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/casualjim/apacai/pkg/slogx"
	"github.com/joho/godotenv"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
)

const (
	// DefaultAPIBase is used when no base URL is configured.
	DefaultAPIBase = "https://api.apacai.com/v1"
	// DefaultAzureAPIVersion is used for azure variants when no version is configured.
	DefaultAzureAPIVersion = "2023-05-15"
	// DefaultMaxRetries is the number of retries the HTTP requestor performs.
	DefaultMaxRetries = 2
)

var (
	// ErrNoAPIKey is returned when neither a key nor a key file is configured.
	ErrNoAPIKey = errors.New("no API key provided; set APACAI_API_KEY or point APACAI_API_KEY_PATH at a key file")
	// ErrMalformedAPIKey is returned when the key file does not contain an "sk-" key.
	ErrMalformedAPIKey = errors.New("malformed API key")
)

// Config holds the process level settings used to build requestors.
//
// A Config is assembled once at start-up (LoadConfig, LoadConfigFile or by hand) and
// treated as read-only afterwards. Objects overlay their own identity fields on top of it
// when they issue requests.
type Config struct {
	APIKey       string        `toml:"api_key"`
	APIKeyPath   string        `toml:"api_key_path"`
	APIBase      string        `toml:"api_base"`
	APIType      APIType       `toml:"api_type"`
	APIVersion   string        `toml:"api_version"`
	Organization string        `toml:"organization"`
	MaxRetries   int           `toml:"max_retries"`
	// Timeout bounds each request made by the HTTP requestor, zero means no timeout.
	Timeout time.Duration `toml:"timeout"`
	// Log enables console logging, "debug" or "info".
	Log string `toml:"log"`
	// LogOutput receives console logs, stderr when nil.
	LogOutput io.Writer `toml:"-"`
}

// LoadConfig loads the given dotenv files (".env" when none are given) into the
// environment and builds a Config from it. Missing dotenv files are not an error.
func LoadConfig(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env files: %w", err)
	}
	return ConfigFromEnv()
}

// ConfigFromEnv builds a Config from APACAI_* environment variables.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		APIKey:       os.Getenv("APACAI_API_KEY"),
		APIKeyPath:   os.Getenv("APACAI_API_KEY_PATH"),
		APIBase:      os.Getenv("APACAI_API_BASE"),
		APIVersion:   os.Getenv("APACAI_API_VERSION"),
		Organization: os.Getenv("APACAI_ORGANIZATION"),
		Log:          os.Getenv("APACAI_LOG"),
		MaxRetries:   -1,
	}

	apiType, err := ParseAPIType(os.Getenv("APACAI_API_TYPE"))
	if err != nil {
		return Config{}, err
	}
	cfg.APIType = apiType

	if v := os.Getenv("APACAI_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid APACAI_MAX_RETRIES %q: %w", v, err)
		}
		cfg.MaxRetries = n
	}
	if v := os.Getenv("APACAI_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid APACAI_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	return cfg.WithDefaults(), nil
}

// LoadConfigFile decodes a TOML configuration file.
func LoadConfigFile(path string) (Config, error) {
	cfg := Config{MaxRetries: -1}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return cfg.WithDefaults(), nil
}

// WithDefaults fills in the base URL, API variant, azure API version and retry count
// when they are not set. A negative MaxRetries means "not set".
func (c Config) WithDefaults() Config {
	if c.APIBase == "" {
		c.APIBase = DefaultAPIBase
	}
	c.APIType = c.APIType.Or(APITypeOpenAI)
	if c.APIType.IsAzure() && c.APIVersion == "" {
		c.APIVersion = DefaultAzureAPIVersion
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	return c
}

// ResolveAPIKey returns the key read from APIKeyPath when set, APIKey otherwise.
// Keys read from a file must start with "sk-".
func (c Config) ResolveAPIKey() (string, error) {
	if c.APIKeyPath != "" {
		b, err := os.ReadFile(c.APIKeyPath)
		if err != nil {
			return "", fmt.Errorf("failed to read API key file: %w", err)
		}
		key := strings.TrimSpace(string(b))
		if !strings.HasPrefix(key, "sk-") {
			return "", fmt.Errorf("%w in %s", ErrMalformedAPIKey, c.APIKeyPath)
		}
		return key, nil
	}
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	return "", ErrNoAPIKey
}

// Logger returns the logger requestors write to.
//
// When Log is "debug" or "info" a zerolog console writer is installed at that level,
// otherwise the default slog logger is used.
func (c Config) Logger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Log) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	default:
		return slog.Default().With(slogx.LoggerName("apacai"))
	}

	out := c.LogOutput
	if out == nil {
		out = os.Stderr
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Stamp, NoColor: c.LogOutput != nil}).
		With().Timestamp().Logger()
	return slog.New(zeroslog.NewHandler(zl, &zeroslog.HandlerOptions{Level: level})).
		With(slogx.LoggerName("apacai"))
}
