package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// APIConfig points at the payment API the dashboard reads from and writes to.
type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	HealthPath     string        `mapstructure:"health_path"`
	HealthInterval time.Duration `mapstructure:"health_interval"`
}

type RedisConfig struct {
	URL      string        `mapstructure:"url"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	JaegerURL   string `mapstructure:"jaeger_url"`
}

type DisplayConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	Server    *ServerConfig    `mapstructure:"server"`
	API       *APIConfig       `mapstructure:"api"`
	Redis     *RedisConfig     `mapstructure:"redis"`
	Telemetry *TelemetryConfig `mapstructure:"telemetry"`
	Display   *DisplayConfig   `mapstructure:"display"`
	Log       *LogConfig       `mapstructure:"log"`
}

// Location resolves the display time zone. Validate has already checked it.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Addr is the listen address of the dashboard server.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func LoadConfig() (*AppConfig, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("server.port", 3001)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("api.base_url", "http://localhost:3000")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.health_path", "/health")
	v.SetDefault("api.health_interval", 30*time.Second)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.token_ttl", 30*time.Minute)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "multipay-dashboard")
	v.SetDefault("telemetry.jaeger_url", "http://jaeger:14268/api/traces")
	v.SetDefault("display.timezone", "America/Sao_Paulo")
	v.SetDefault("log.level", "info")

	_ = v.BindEnv("server.port", "SERVER_PORT")
	_ = v.BindEnv("server.host", "SERVER_HOST")
	_ = v.BindEnv("api.base_url", "PAYMENTS_API_URL")
	_ = v.BindEnv("api.timeout", "PAYMENTS_API_TIMEOUT")
	_ = v.BindEnv("api.health_path", "PAYMENTS_API_HEALTH_PATH")
	_ = v.BindEnv("api.health_interval", "PAYMENTS_API_HEALTH_INTERVAL")
	_ = v.BindEnv("redis.url", "REDIS_URL")
	_ = v.BindEnv("redis.token_ttl", "FORM_TOKEN_TTL")
	_ = v.BindEnv("telemetry.enabled", "TELEMETRY_ENABLED")
	_ = v.BindEnv("telemetry.service_name", "TELEMETRY_SERVICE_NAME")
	_ = v.BindEnv("telemetry.jaeger_url", "JAEGER_URL")
	_ = v.BindEnv("display.timezone", "DISPLAY_TIMEZONE")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("config_file", "CONFIG_FILE")

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.API.BaseURL = strings.TrimRight(config.API.BaseURL, "/")

	return &config, nil
}

func (c *AppConfig) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid payments api url %q: %w", c.API.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("invalid payments api url %q: need an absolute http(s) url", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
		return fmt.Errorf("invalid display timezone %q: %w", c.Display.Timezone, err)
	}
	return nil
}
