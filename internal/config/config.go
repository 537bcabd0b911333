// Package config loads application settings from an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Env       string          `mapstructure:"env" validate:"oneof=development production staging"`
	Server    ServerConfig    `mapstructure:"server"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	History   HistoryConfig   `mapstructure:"history"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Gateway   GatewayConfig   `mapstructure:"gateway"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"min=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"min=0"`
	// RateLimit caps inbound translation requests; rate_limit at the top
	// level caps outbound model calls.
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type ProviderConfig struct {
	Name    string        `mapstructure:"name" validate:"oneof=gemini openai mock"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"min=0"`
	Burst             int `mapstructure:"burst" validate:"min=0"`
}

// Enabled reports whether a limit is configured.
func (r RateLimitConfig) Enabled() bool {
	return r.RequestsPerMinute > 0
}

type CacheConfig struct {
	Backend string        `mapstructure:"backend" validate:"oneof=none memory redis"`
	TTL     time.Duration `mapstructure:"ttl" validate:"min=0"`
}

type HistoryConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file memory redis"`
	Path    string `mapstructure:"path" validate:"required_if=Backend file"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type GatewayConfig struct {
	// URL of a remote gateway. Empty runs the gateway in process.
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

var validate = validator.New()

// Init loads configs/<CONFIG_NAME>.yaml (default name "default") when it
// exists, then applies environment overrides.
func Init() (*Config, error) {
	configName := os.Getenv("CONFIG_NAME")
	if configName == "" {
		configName = "default"
	}
	return Load(configName, "configs")
}

// Load reads the named config from the first matching path. A missing file
// is not an error; defaults and the environment still apply.
func Load(configName string, paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("INGLIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range map[string]string{
		"env":         "ENV",
		"server.port": "PORT",
		"redis.url":   "REDIS_URL",
	} {
		if err := v.BindEnv(key, "INGLIFY_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = apiKeyFromEnv(cfg.Provider.Name)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and cross-field rules.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validation failed: %w", err)
		}
		var errMsgs []string
		for _, e := range verrs {
			errMsgs = append(errMsgs, fmt.Sprintf(
				"Field: %s, Tag: %s, Param: %s", e.Namespace(), e.Tag(), e.Param(),
			))
		}
		return fmt.Errorf("validation failed: %s", strings.Join(errMsgs, "; "))
	}

	if cfg.Redis.URL == "" && (cfg.Cache.Backend == "redis" || cfg.History.Backend == "redis") {
		return errors.New("validation failed: redis.url is required for the redis backend")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("provider.name", "gemini")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.model", "")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.timeout", 60*time.Second)
	v.SetDefault("rate_limit.requests_per_minute", 0)
	v.SetDefault("rate_limit.burst", 0)
	v.SetDefault("server.rate_limit.requests_per_minute", 0)
	v.SetDefault("server.rate_limit.burst", 0)
	v.SetDefault("cache.backend", "none")
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("history.backend", "file")
	v.SetDefault("history.path", defaultHistoryPath())
	v.SetDefault("redis.url", "")
	v.SetDefault("gateway.url", "")
}

// apiKeyFromEnv reads the conventional key variable for provider.
func apiKeyFromEnv(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	}
	return ""
}

func defaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "inglify-history.json"
	}
	return dir + string(os.PathSeparator) + "inglify" + string(os.PathSeparator) + "history.json"
}
