package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"shift-tracker/internal/domain"
)

type Config struct {
	TelegramToken string
	DBPath        string
	ServerURL     string
	FallbackFile  string
	HTTPAddr      string
	LogLevel      string
	Settings      domain.Settings
}

// fileConfig is the optional YAML file named by SETTINGS_FILE.
type fileConfig struct {
	ServerURL       string             `yaml:"server_url"`
	FallbackFile    string             `yaml:"fallback_file"`
	DBPath          string             `yaml:"db_path"`
	HTTPAddr        string             `yaml:"http_addr"`
	Timezone        string             `yaml:"timezone"`
	Rates           map[string]float64 `yaml:"rates"`
	TakeHomePercent float64            `yaml:"take_home_percent"`
}

// LoadConfig reads .env, then the settings file, then the environment.
// Later layers win. A missing token is not an error here; see RequireToken.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("SETTINGS_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		DBPath:       "shift-tracker.db",
		FallbackFile: "combined_schedule.json",
		LogLevel:     "info",
		Settings:     domain.DefaultSettings(),
	}
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse settings file %s: %w", path, err)
	}
	setIf(&c.ServerURL, fc.ServerURL)
	setIf(&c.FallbackFile, fc.FallbackFile)
	setIf(&c.DBPath, fc.DBPath)
	setIf(&c.HTTPAddr, fc.HTTPAddr)
	for source, rate := range fc.Rates {
		if rate != 0 {
			c.Settings.Rates[domain.Source(strings.ToLower(source))] = rate
		}
	}
	if fc.TakeHomePercent != 0 {
		c.Settings.TakeHomePercent = fc.TakeHomePercent
	}
	if fc.Timezone != "" {
		loc, err := time.LoadLocation(fc.Timezone)
		if err != nil {
			return fmt.Errorf("settings file timezone: %w", err)
		}
		c.Settings.Location = loc
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	setIf(&c.TelegramToken, os.Getenv("TELEGRAM_TOKEN"))
	setIf(&c.DBPath, os.Getenv("DB_PATH"))
	setIf(&c.ServerURL, os.Getenv("SERVER_URL"))
	setIf(&c.FallbackFile, os.Getenv("FALLBACK_FILE"))
	setIf(&c.HTTPAddr, os.Getenv("HTTP_ADDR"))
	setIf(&c.LogLevel, os.Getenv("LOG_LEVEL"))

	if v, ok := envFloat("WALMART_RATE"); ok {
		c.Settings.Rates[domain.SourceWalmart] = v
	}
	if v, ok := envFloat("CANES_RATE"); ok {
		c.Settings.Rates[domain.SourceCanes] = v
	}
	if v, ok := envFloat("TAKE_HOME_PERCENT"); ok {
		c.Settings.TakeHomePercent = v
	}
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("TIMEZONE: %w", err)
		}
		c.Settings.Location = loc
	}
	return nil
}

// RequireToken fails when the bot cannot start.
func (c *Config) RequireToken() error {
	if c.TelegramToken == "" {
		return ErrNoToken{}
	}
	return nil
}

// envFloat ignores unset, unparseable and zero values, so a bad value
// leaves the default in place.
func envFloat(key string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

type ErrNoToken struct{}

func (e ErrNoToken) Error() string {
	return "TELEGRAM_TOKEN is not set"
}
