// Package config reads server settings from defaults, an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Ri-Verma/portfolio/internal/contact"
)

// EnvPrefix namespaces every setting in the environment.
const EnvPrefix = "PORTFOLIO"

// Config is every server setting.
type Config struct {
	Addr      string             `mapstructure:"addr"`
	Port      string             `mapstructure:"port"`
	Content   string             `mapstructure:"content"`
	Watch     bool               `mapstructure:"watch"`
	Debug     bool               `mapstructure:"debug"`
	Database  string             `mapstructure:"database"`
	Retention time.Duration      `mapstructure:"retention"`
	Redis     Redis              `mapstructure:"redis"`
	Views     Views              `mapstructure:"views"`
	Admin     Admin              `mapstructure:"admin"`
	SMTP      contact.SMTPConfig `mapstructure:"smtp"`
}

// Redis locates the optional stats cache.
type Redis struct {
	URL      string        `mapstructure:"url"`
	StatsTTL time.Duration `mapstructure:"statsTTL"`
}

// Views bounds the in-memory view sessions.
type Views struct {
	TTL   time.Duration `mapstructure:"ttl"`
	Sweep time.Duration `mapstructure:"sweep"`
	Max   int           `mapstructure:"max"`
}

// Admin holds the dashboard login.
type Admin struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ListenAddr is Addr when set, otherwise all interfaces on Port.
func (c Config) ListenAddr() string {
	if c.Addr != "" {
		return c.Addr
	}
	return ":" + c.Port
}

// legacy names from the .env files the site has always used.
var legacyEnv = map[string]string{
	"port":           "PORT",
	"debug":          "DEBUG",
	"smtp.host":      "SMTP_HOST",
	"smtp.port":      "SMTP_PORT",
	"smtp.user":      "SMTP_USER",
	"smtp.pass":      "SMTP_PASS",
	"smtp.to":        "TO_EMAIL",
	"admin.username": "ADMIN_USERNAME",
	"admin.password": "ADMIN_PASSWORD",
	"redis.url":      "REDIS_URL",
}

// SetDefaults installs the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", "")
	v.SetDefault("port", "8080")
	v.SetDefault("content", "")
	v.SetDefault("watch", false)
	v.SetDefault("debug", false)
	v.SetDefault("database", "portfolio.db")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.statsTTL", time.Minute)
	v.SetDefault("views.ttl", 30*time.Minute)
	v.SetDefault("views.sweep", time.Minute)
	v.SetDefault("views.max", 1000)
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "")
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.to", "")
	v.SetDefault("retention", 365*24*time.Hour)
}

// Load fills a Config from v. file may be empty, in which case
// ./portfolio.yaml is used if present.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("portfolio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, name := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, name); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || file != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
