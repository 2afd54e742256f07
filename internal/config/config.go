package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	inerr "github.com/vango-dev/inertia/internal/errors"
	"github.com/vango-dev/inertia/pkg/progress"
)

const (
	// ConfigName is the base name of the configuration file.
	ConfigName = "inertia"

	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "INERTIA"

	DefaultAddr     = ":8080"
	DefaultID       = "app"
	DefaultLivePath = "/_inertia/live"
)

// Config is the host configuration.
type Config struct {
	// Addr is the listen address.
	Addr string `mapstructure:"addr"`

	// ID is the mount element id.
	ID string `mapstructure:"id"`

	// Title is a fmt pattern applied to page titles, e.g. "%s - Acme".
	Title string `mapstructure:"title"`

	// Version overrides the asset version derived from the manifest.
	Version string `mapstructure:"version"`

	// Pages is the YAML page table used by `inertia serve`.
	Pages string `mapstructure:"pages"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	Assets   AssetsConfig   `mapstructure:"assets"`
	Progress ProgressConfig `mapstructure:"progress"`
	Live     LiveConfig     `mapstructure:"live"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`

	path string
}

// AssetsConfig locates the asset manifest.
type AssetsConfig struct {
	// Manifest is a local manifest path.
	Manifest string `mapstructure:"manifest"`

	// S3Bucket and S3Key locate a manifest in S3 when Manifest is empty.
	S3Bucket string `mapstructure:"s3_bucket"`
	S3Key    string `mapstructure:"s3_key"`
	S3Region string `mapstructure:"s3_region"`

	// Prefix is prepended to resolved asset paths.
	Prefix string `mapstructure:"prefix"`

	// Entrypoints are the assets linked from every document.
	Entrypoints []string `mapstructure:"entrypoints"`

	// Watch reloads a local manifest on change.
	Watch bool `mapstructure:"watch"`
}

// ProgressConfig configures the visit progress bar.
type ProgressConfig struct {
	Delay       time.Duration `mapstructure:"delay"`
	Color       string        `mapstructure:"color"`
	IncludeCSS  bool          `mapstructure:"include_css"`
	ShowSpinner bool          `mapstructure:"show_spinner"`
	Disabled    bool          `mapstructure:"disabled"`
}

// LiveConfig configures live sessions.
type LiveConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Path         string        `mapstructure:"path"`
	ReadLimit    int64         `mapstructure:"read_limit"`
	PingInterval time.Duration `mapstructure:"ping_interval"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// New returns a viper instance with defaults and environment overrides bound.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("id", DefaultID)
	v.SetDefault("title", "")
	v.SetDefault("version", "")
	v.SetDefault("pages", "")
	v.SetDefault("log_level", "info")

	v.SetDefault("assets.manifest", "")
	v.SetDefault("assets.s3_bucket", "")
	v.SetDefault("assets.s3_key", "")
	v.SetDefault("assets.s3_region", "us-east-1")
	v.SetDefault("assets.prefix", "/build/")
	v.SetDefault("assets.entrypoints", []string{})
	v.SetDefault("assets.watch", false)

	d := progress.DefaultConfig()
	v.SetDefault("progress.delay", d.Delay)
	v.SetDefault("progress.color", d.Color)
	v.SetDefault("progress.include_css", d.IncludeCSS)
	v.SetDefault("progress.show_spinner", d.ShowSpinner)
	v.SetDefault("progress.disabled", false)

	v.SetDefault("live.enabled", true)
	v.SetDefault("live.path", DefaultLivePath)
	v.SetDefault("live.read_limit", 64*1024)
	v.SetDefault("live.ping_interval", 30*time.Second)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "inertia")
}

// Load reads the configuration. An empty path searches the working
// directory for inertia.{yaml,json,toml}; a missing file there is not an
// error and yields the defaults.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, inerr.New("E080").WithDetail(err.Error()).Wrap(err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, inerr.New("E080").WithDetail(err.Error()).Wrap(err)
	}
	c.path = v.ConfigFileUsed()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Path returns the file the configuration was read from, if any.
func (c *Config) Path() string {
	return c.path
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.ID == "" {
		return inerr.New("E080").WithDetail("id must not be empty")
	}
	if c.Title != "" && strings.Count(c.Title, "%s") != 1 {
		return inerr.New("E080").
			WithDetail(fmt.Sprintf("title %q must contain exactly one %%s", c.Title)).
			WithSuggestion(`use a pattern like "%s - Acme"`)
	}
	if c.Live.Enabled && !strings.HasPrefix(c.Live.Path, "/") {
		return inerr.New("E080").WithDetail("live.path must start with /")
	}
	if (c.Assets.S3Bucket == "") != (c.Assets.S3Key == "") {
		return inerr.New("E080").WithDetail("assets.s3_bucket and assets.s3_key must be set together")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return inerr.New("E080").WithDetail(err.Error())
	}
	return nil
}

// TitleFunc returns the title callback described by Title.
func (c *Config) TitleFunc() func(string) string {
	if c.Title == "" {
		return nil
	}
	pattern := c.Title
	return func(t string) string {
		if t == "" {
			return strings.TrimSpace(strings.Trim(strings.Replace(pattern, "%s", "", 1), " -|"))
		}
		return strings.Replace(pattern, "%s", t, 1)
	}
}

// ProgressConfig converts the progress section.
func (c *Config) ProgressConfig() progress.Config {
	return progress.Config{
		Delay:       c.Progress.Delay,
		Color:       c.Progress.Color,
		IncludeCSS:  c.Progress.IncludeCSS,
		ShowSpinner: c.Progress.ShowSpinner,
		Disabled:    c.Progress.Disabled,
	}
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q", s)
	}
	return l, nil
}
