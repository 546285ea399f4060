// Package config loads the tour's settings. Values come, from lowest to
// highest precedence, from field defaults, .env files, the process environment
// and an optional YAML file. Command-line flags are applied by the caller,
// which then calls Validate.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/charmingruby/decor/validated"
)

// Config holds everything the tour can be tuned with.
type Config struct {
	Name      string `env:"DECOR_NAME"       envDefault:"Bora"           mapstructure:"name"`
	Guest     string `env:"DECOR_GUEST"      envDefault:"eren"           mapstructure:"guest"`
	Text      string `env:"DECOR_TEXT"       envDefault:"Bora Tutumluer" mapstructure:"text"`
	SumLimit  int    `env:"DECOR_SUM_LIMIT"  envDefault:"10000"          mapstructure:"sum_limit"`
	LogLevel  string `env:"DECOR_LOG_LEVEL"  envDefault:"warn"           mapstructure:"log_level"`
	LogFormat string `env:"DECOR_LOG_FORMAT" envDefault:"console"        mapstructure:"log_format"`
	Metrics   bool   `env:"DECOR_METRICS"    envDefault:"false"          mapstructure:"metrics"`
}

// Options selects where Load reads from.
type Options struct {
	// EnvFiles are loaded with godotenv; missing files are ignored. Empty
	// means ".env".
	EnvFiles []string
	// File is an optional YAML file read with viper.
	File string
}

// Load resolves the configuration. It only fails on sources it cannot read or
// decode; field values are checked by Validate.
func Load(opts Options) (Config, error) {
	files := opts.EnvFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}

	if opts.File != "" {
		v := viper.New()
		v.SetConfigFile(opts.File)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", opts.File, err)
		}
		if err := v.Unmarshal(&cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", opts.File, err)
		}
	}

	return cfg, nil
}

var (
	// ErrLogFormat reports a log format other than console or json.
	ErrLogFormat = errors.New("config: log format must be console or json")
	// ErrSumLimit reports a negative sum limit.
	ErrSumLimit = errors.New("config: sum limit must not be negative")
)

var checks = []func(Config) error{
	func(c Config) error {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
		}
		return nil
	},
	func(c Config) error {
		if c.LogFormat != "console" && c.LogFormat != "json" {
			return fmt.Errorf("%w, got %q", ErrLogFormat, c.LogFormat)
		}
		return nil
	},
	func(c Config) error {
		if c.SumLimit < 0 {
			return fmt.Errorf("%w, got %d", ErrSumLimit, c.SumLimit)
		}
		return nil
	},
}

// Validate checks field values that the type system cannot. Every invalid
// field is reported; the returned error matches each failure under errors.Is.
func (c Config) Validate() error {
	return validated.Join(validated.Traverse(checks, func(check func(Config) error) validated.Validated[error, Config] {
		return validated.Check(c, check)
	}))
}
