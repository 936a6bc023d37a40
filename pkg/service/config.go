package service

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/romashorodok/salon-platform/pkg/variables"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

type LivekitConfig struct {
	URL       string `mapstructure:"url"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
}

func (c LivekitConfig) HasCredentials() bool {
	return c.APIKey != "" && c.APISecret != ""
}

type HTTPConfig struct {
	Port string `mapstructure:"port"`
}

type TokenConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type StoreConfig struct {
	Seed          bool          `mapstructure:"seed"`
	ReapInterval  time.Duration `mapstructure:"reap_interval"`
	IdleThreshold time.Duration `mapstructure:"idle_threshold"`
	ReapMode      string        `mapstructure:"reap_mode"`
	SyncInterval  time.Duration `mapstructure:"sync_interval"`
}

type CacheConfig struct {
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
}

type TracingConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	Livekit LivekitConfig `mapstructure:"livekit"`
	Token   TokenConfig   `mapstructure:"token"`
	Store   StoreConfig   `mapstructure:"store"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

type configOptions struct {
	file string
}

type ConfigOption func(*configOptions)

// WithRuntimeConfigFile overrides the legacy runtime config file location.
func WithRuntimeConfigFile(path string) ConfigOption {
	return func(o *configOptions) {
		o.file = path
	}
}

// LoadConfig resolves the configuration from the environment first, then the
// legacy runtime config file, then defaults.
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	o := &configOptions{
		file: variables.Env(variables.RUNTIME_CONFIG_FILE_NAME, variables.RUNTIME_CONFIG_FILE_DEFAULT),
	}
	for _, opt := range opts {
		opt(o)
	}

	v := viper.New()
	v.SetConfigFile(o.file)
	v.SetConfigType("json")

	v.SetDefault("http.port", variables.HTTP_PORT_DEFAULT)
	v.SetDefault("livekit.url", "")
	v.SetDefault("livekit.api_key", "")
	v.SetDefault("livekit.api_secret", "")
	v.SetDefault("token.ttl", "6h")
	v.SetDefault("store.seed", true)
	v.SetDefault("store.reap_interval", "1m")
	v.SetDefault("store.idle_threshold", "60m")
	v.SetDefault("store.reap_mode", "deactivate")
	v.SetDefault("store.sync_interval", "0s")
	v.SetDefault("cache.ttl", "0s")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "salon-server")

	bindings := map[string]string{
		"http.port":            variables.HTTP_PORT_NAME,
		"livekit.url":          variables.LIVEKIT_URL_NAME,
		"livekit.api_key":      variables.LIVEKIT_API_KEY_NAME,
		"livekit.api_secret":   variables.LIVEKIT_API_SECRET_NAME,
		"token.ttl":            "TOKEN_TTL",
		"store.seed":           "STORE_SEED",
		"store.reap_interval":  "STORE_REAP_INTERVAL",
		"store.idle_threshold": "STORE_IDLE_THRESHOLD",
		"store.reap_mode":      "STORE_REAP_MODE",
		"store.sync_interval":  "STORE_SYNC_INTERVAL",
		"cache.ttl":            "CACHE_TTL",
		"cache.redis_url":      variables.REDIS_URL_NAME,
		"tracing.endpoint":     variables.OTEL_ENDPOINT_NAME,
		"tracing.service_name": "OTEL_SERVICE_NAME",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read runtime config %s: %w", o.file, err)
		}
		slog.Debug("runtime config not found, using environment", slog.String("file", o.file))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadDotenv loads .env.local then .env into the process environment without
// overriding variables that are already set.
func LoadDotenv(log *slog.Logger) {
	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err == nil {
			log.Info("loaded env file", slog.String("file", file))
			return
		}
	}
	log.Debug(".env not found, using environment variables")
}

func config(log *slog.Logger) (*Config, error) {
	LoadDotenv(log)
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Livekit.HasCredentials() {
		log.Warn("livekit credentials not configured, token issuance will fail")
	}
	log.Info("config loaded",
		slog.String("port", cfg.HTTP.Port),
		slog.String("livekit_url", cfg.Livekit.URL),
		slog.Bool("seed", cfg.Store.Seed),
		slog.String("reap_mode", cfg.Store.ReapMode),
	)
	return cfg, nil
}

var ConfigModule = fx.Module("config", fx.Provide(
	config,
))
