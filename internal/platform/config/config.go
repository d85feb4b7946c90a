// Package config loads runtime configuration from defaults, an optional
// config file, KIWA_* environment variables and explicit overrides.
package config

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "KIWA"

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Site      SiteConfig      `mapstructure:"site"`
	Content   ContentConfig   `mapstructure:"content"`
	Menu      MenuConfig      `mapstructure:"menu"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SiteConfig describes the restaurant as shown on every page.
type SiteConfig struct {
	Name          string   `mapstructure:"name"`
	BaseURL       string   `mapstructure:"base_url"`
	Currency      string   `mapstructure:"currency"`
	DefaultLocale string   `mapstructure:"default_locale"`
	Locales       []string `mapstructure:"locales"`
}

// ContentConfig points at catalog and locale files. An empty Dir serves the embedded content.
type ContentConfig struct {
	Dir        string `mapstructure:"dir"`
	ItemsFile  string `mapstructure:"items_file"`
	TagsFile   string `mapstructure:"tags_file"`
	LocalesDir string `mapstructure:"locales_dir"`
}

// MenuConfig tunes the menu engine.
type MenuConfig struct {
	Collation bool `mapstructure:"collation"`
}

// LoggingConfig selects log level and encoding ("json" or "console").
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig names the trace project and service.
type TelemetryConfig struct {
	ProjectID   string `mapstructure:"project_id"`
	ServiceName string `mapstructure:"service_name"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	file         string
	envMap       map[string]string
	useSystemEnv bool
	overrides    map[string]any
}

// WithConfigFile reads the given YAML, JSON or TOML file after defaults.
func WithConfigFile(path string) Option {
	return func(o *loaderOptions) {
		o.file = path
	}
}

// WithEnvMap injects environment values; they take precedence over the process environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv stops Load from reading the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// WithOverrides sets keys such as "server.port" last, e.g. from CLI flags.
func WithOverrides(values map[string]any) Option {
	return func(o *loaderOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]any, len(values))
		}
		for k, v := range values {
			o.overrides[k] = v
		}
	}
}

// Load assembles the configuration. Precedence, lowest first: defaults,
// config file, environment, overrides.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{useSystemEnv: true}
	for _, opt := range opts {
		opt(&options)
	}

	v := viper.New()
	setDefaults(v)

	if options.file != "" {
		v.SetConfigFile(options.file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", options.file, err)
		}
	}

	for _, key := range v.AllKeys() {
		if value, ok := options.lookupEnv(EnvKey(key)); ok {
			v.Set(key, value)
		}
	}
	for key, value := range options.overrides {
		v.Set(key, value)
	}

	if err := ctx.Err(); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	normalize(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EnvKey maps a config key such as "site.default_locale" to KIWA_SITE_DEFAULT_LOCALE.
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func (o loaderOptions) lookupEnv(key string) (string, bool) {
	if o.envMap != nil {
		if value, ok := o.envMap[key]; ok {
			return value, true
		}
	}
	if o.useSystemEnv {
		return os.LookupEnv(key)
	}
	return "", false
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("site.name", "Kiwa")
	v.SetDefault("site.base_url", "http://localhost:8080")
	v.SetDefault("site.currency", "EUR")
	v.SetDefault("site.default_locale", "en")
	v.SetDefault("site.locales", []string{"en", "it"})

	v.SetDefault("content.dir", "")
	v.SetDefault("content.items_file", "catalog/menu.yaml")
	v.SetDefault("content.tags_file", "catalog/tags.yaml")
	v.SetDefault("content.locales_dir", "locales")

	v.SetDefault("menu.collation", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("telemetry.project_id", "")
	v.SetDefault("telemetry.service_name", "kiwa")
}

func normalize(cfg *Config) {
	cfg.Server.Port = strings.TrimSpace(cfg.Server.Port)
	cfg.Site.Currency = strings.ToUpper(strings.TrimSpace(cfg.Site.Currency))
	cfg.Site.DefaultLocale = strings.ToLower(strings.TrimSpace(cfg.Site.DefaultLocale))
	cfg.Site.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Site.BaseURL), "/")

	locales := make([]string, 0, len(cfg.Site.Locales))
	seen := map[string]struct{}{}
	for _, entry := range cfg.Site.Locales {
		for _, lang := range strings.Split(entry, ",") {
			lang = strings.ToLower(strings.TrimSpace(lang))
			if lang == "" {
				continue
			}
			if _, ok := seen[lang]; ok {
				continue
			}
			seen[lang] = struct{}{}
			locales = append(locales, lang)
		}
	}
	cfg.Site.Locales = locales
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
}

func validate(cfg Config) error {
	var fields []string

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port <= 0 || port > 65535 {
		fields = append(fields, "server.port")
	}
	for name, d := range map[string]time.Duration{
		"server.read_timeout":     cfg.Server.ReadTimeout,
		"server.write_timeout":    cfg.Server.WriteTimeout,
		"server.idle_timeout":     cfg.Server.IdleTimeout,
		"server.shutdown_timeout": cfg.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			fields = append(fields, name)
		}
	}
	if strings.TrimSpace(cfg.Site.Name) == "" {
		fields = append(fields, "site.name")
	}
	if cfg.Site.Currency != "" {
		if _, err := currency.ParseISO(cfg.Site.Currency); err != nil {
			fields = append(fields, "site.currency")
		}
	}
	if len(cfg.Site.Locales) == 0 {
		fields = append(fields, "site.locales")
	}
	for _, lang := range cfg.Site.Locales {
		if _, err := language.Parse(lang); err != nil {
			fields = append(fields, "site.locales")
			break
		}
	}
	if !contains(cfg.Site.Locales, cfg.Site.DefaultLocale) {
		fields = append(fields, "site.default_locale")
	}
	if cfg.Content.ItemsFile == "" {
		fields = append(fields, "content.items_file")
	}
	if cfg.Content.TagsFile == "" {
		fields = append(fields, "content.tags_file")
	}
	if cfg.Content.LocalesDir == "" {
		fields = append(fields, "content.locales_dir")
	}
	if cfg.Logging.Format != "json" && cfg.Logging.Format != "console" {
		fields = append(fields, "logging.format")
	}

	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)
	return &ValidationError{fields: fields}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
