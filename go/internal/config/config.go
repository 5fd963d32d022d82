package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the binaries look for a config file.
const DefaultPath = "config.yml"

type Config struct {
	LogLevel       string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	GameServerURL  string        `yaml:"game-server-url" env:"GAME_SERVER_URL" env-default:"http://localhost"`
	PollInterval   time.Duration `yaml:"poll-interval" env:"POLL_INTERVAL" env-default:"1s"`
	RequestTimeout time.Duration `yaml:"request-timeout" env:"REQUEST_TIMEOUT" env-default:"5s"`
	HTTPPort       int           `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	NATS           NATS          `yaml:"nats" env-prefix:"NATS_"`
	TUI            TUI           `yaml:"tui" env-prefix:"TUI_"`
}

type NATS struct {
	// Empty disables publishing to NATS; events are only logged.
	URL           string `yaml:"url" env:"URL" env-default:""`
	SubjectPrefix string `yaml:"subject-prefix" env:"SUBJECT_PREFIX" env-default:"catan.events"`
}

type TUI struct {
	LogFile string `yaml:"log-file" env:"LOG_FILE" env-default:"smart-catan.log"`
}

// Load reads path when it exists and the environment in every case. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path != "" && fileExists(path) {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load configuration or panic.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

func (that *Config) Validate() error {
	u, err := url.Parse(that.GameServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid game-server-url %q", that.GameServerURL)
	}
	if that.PollInterval <= 0 {
		return fmt.Errorf("poll-interval must be positive, got %s", that.PollInterval)
	}
	if that.RequestTimeout <= 0 {
		return fmt.Errorf("request-timeout must be positive, got %s", that.RequestTimeout)
	}
	if that.HTTPPort <= 0 || that.HTTPPort > 65535 {
		return fmt.Errorf("invalid http-port %d", that.HTTPPort)
	}
	if _, err := that.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses the configured log level.
func (that *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(that.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log-level %q: %w", that.LogLevel, err)
	}
	return level, nil
}

// Dump writes the effective configuration as YAML.
func (that *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(that); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

// Usage prints the environment variables the config understands.
func Usage(w io.Writer) {
	cleanenv.FUsage(w, &Config{}, nil)()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
