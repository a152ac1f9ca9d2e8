// Package config loads application settings and builds the logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultUserAgent is sent with page fetches; many company sites refuse bot agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Config holds the full application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Ticker TickerConfig `yaml:"ticker" mapstructure:"ticker"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the dashboard server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// FetchConfig configures how company pages are retrieved.
type FetchConfig struct {
	Mode         string `yaml:"mode" mapstructure:"mode"`
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool   `yaml:"insecure_tls" mapstructure:"insecure_tls"`
}

// TickerConfig selects and configures the market data service.
type TickerConfig struct {
	Provider    string `yaml:"provider" mapstructure:"provider"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	CookieURL   string `yaml:"cookie_url" mapstructure:"cookie_url"`
}

// StoreConfig configures where finished records are persisted.
type StoreConfig struct {
	Driver        string `yaml:"driver" mapstructure:"driver"`
	DataDir       string `yaml:"data_dir" mapstructure:"data_dir"`
	RedisAddr     string `yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisPassword string `yaml:"redis_password" mapstructure:"redis_password"`
	RedisDB       int    `yaml:"redis_db" mapstructure:"redis_db"`
	SQLitePath    string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	SaveLogos     bool   `yaml:"save_logos" mapstructure:"save_logos"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("COMPANYINTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "COMPANYINTEL_SERVER_PORT", "PORT"); err != nil {
		return nil, eris.Wrap(err, "config: bind port")
	}

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8051)
	v.SetDefault("fetch.mode", "http")
	v.SetDefault("fetch.timeout_secs", 15)
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("fetch.max_body_bytes", 5*1024*1024)
	v.SetDefault("fetch.insecure_tls", false)
	v.SetDefault("ticker.provider", "yahoo")
	v.SetDefault("ticker.timeout_secs", 10)
	v.SetDefault("ticker.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("ticker.cookie_url", "https://fc.yahoo.com")
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.data_dir", "data")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.sqlite_path", "data/companies.db")
	v.SetDefault("store.save_logos", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
