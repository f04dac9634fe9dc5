package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerURL = "http://localhost:8080"
	defaultEnv       = "local"
	defaultTimeout   = 60 * time.Second
	defaultConfigDir = ".formular230"
	configName       = "config"
	tokenFile        = "token"
)

type Config struct {
	Env       string
	ServerURL string
	Timeout   time.Duration
	ConfigDir string
	TokenPath string
	OutputDir string
}

// Load читает .env, ~/.formular230/config.yaml и переменные FORMULAR230_*.
// configFile, если задан, заменяет поиск конфигурации.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	v := viper.New()
	v.SetEnvPrefix("FORMULAR230")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", defaultEnv)
	v.SetDefault("server_url", defaultServerURL)
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("config_dir", filepath.Join(home, defaultConfigDir))
	v.SetDefault("output_dir", ".")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(filepath.Join(home, defaultConfigDir))
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
		}
	}

	configDir := v.GetString("config_dir")
	cfg := &Config{
		Env:       v.GetString("env"),
		ServerURL: strings.TrimRight(v.GetString("server_url"), "/"),
		Timeout:   v.GetDuration("timeout"),
		ConfigDir: configDir,
		TokenPath: filepath.Join(configDir, tokenFile),
		OutputDir: v.GetString("output_dir"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server_url должен быть абсолютным URL, получено %q", c.ServerURL)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout должен быть положительным")
	}
	return nil
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == defaultEnv || c.Env == ""
}
