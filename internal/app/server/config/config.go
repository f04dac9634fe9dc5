package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath = ".env"

	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	SessionStoreSQLite   = "sqlite"
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"

	defaultRunAddress     = ":8080"
	defaultGithubAPI      = "https://api.github.com"
	defaultBranch         = "main"
	defaultGithubTimeout  = 30 * time.Second
	defaultBootstrapDelay = 2 * time.Second
	defaultMasterPassword = "6942"
	defaultSessionTTL     = 24 * time.Hour
	defaultSQLitePath     = "formular230.db"
)

type Config struct {
	Env     string
	Server  server
	Github  github
	Admin   admin
	Session session
	Logger  logger
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

// github - параметры удаленного хранилища (репозиторий с JSON файлами)
type github struct {
	Token          string        `env:"GITHUB_TOKEN"`
	Owner          string        `env:"GITHUB_OWNER"`
	Repo           string        `env:"GITHUB_REPO"`
	Branch         string        `env:"GITHUB_BRANCH"`
	APIURL         string        `env:"GITHUB_API_URL"`
	OwnerIsOrg     bool          `env:"GITHUB_OWNER_IS_ORG"`
	Timeout        time.Duration `env:"GITHUB_TIMEOUT"`
	BootstrapDelay time.Duration `env:"BOOTSTRAP_DELAY"`
}

type admin struct {
	MasterPassword string `env:"MASTER_PASSWORD"`
}

type session struct {
	Store       string        `env:"SESSION_STORE"`
	TTL         time.Duration `env:"SESSION_TTL"`
	SQLitePath  string        `env:"SQLITE_PATH"`
	DatabaseURI string        `env:"DATABASE_URI"`
	RedisAddr   string        `env:"REDIS_ADDR"`
	RedisPass   string        `env:"REDIS_PASSWORD"`
	RedisDB     int           `env:"REDIS_DB"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL"`
}

// MustLoad читает .env и переменные окружения и падает, если конфигурация неполная
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// Load собирает конфигурацию один раз при старте процесса
func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("failed to load %s: %v", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", defaultRunAddress)
	v.SetDefault("github_api_url", defaultGithubAPI)
	v.SetDefault("github_branch", defaultBranch)
	v.SetDefault("github_timeout", defaultGithubTimeout)
	v.SetDefault("bootstrap_delay", defaultBootstrapDelay)
	v.SetDefault("master_password", defaultMasterPassword)
	v.SetDefault("session_store", SessionStoreSQLite)
	v.SetDefault("session_ttl", defaultSessionTTL)
	v.SetDefault("sqlite_path", defaultSQLitePath)

	cfg := &Config{
		Env:    v.GetString("app_env"),
		Server: server{RunAddress: v.GetString("run_address")},
		Github: github{
			Token:          v.GetString("github_token"),
			Owner:          v.GetString("github_owner"),
			Repo:           v.GetString("github_repo"),
			Branch:         v.GetString("github_branch"),
			APIURL:         strings.TrimRight(v.GetString("github_api_url"), "/"),
			OwnerIsOrg:     v.GetBool("github_owner_is_org"),
			Timeout:        v.GetDuration("github_timeout"),
			BootstrapDelay: v.GetDuration("bootstrap_delay"),
		},
		Admin: admin{MasterPassword: v.GetString("master_password")},
		Session: session{
			Store:       strings.ToLower(v.GetString("session_store")),
			TTL:         v.GetDuration("session_ttl"),
			SQLitePath:  v.GetString("sqlite_path"),
			DatabaseURI: v.GetString("database_uri"),
			RedisAddr:   v.GetString("redis_addr"),
			RedisPass:   v.GetString("redis_password"),
			RedisDB:     v.GetInt("redis_db"),
		},
		Logger: logger{LogLevel: v.GetString("log_level")},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var errs []error
	if c.Github.Token == "" {
		errs = append(errs, errors.New("GITHUB_TOKEN is required"))
	}
	if c.Github.Owner == "" {
		errs = append(errs, errors.New("GITHUB_OWNER is required"))
	}
	if c.Github.Repo == "" {
		errs = append(errs, errors.New("GITHUB_REPO is required"))
	}
	if c.Admin.MasterPassword == "" {
		errs = append(errs, errors.New("MASTER_PASSWORD must not be empty"))
	}

	switch c.Session.Store {
	case SessionStoreSQLite:
		if c.Session.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for sqlite session store"))
		}
	case SessionStorePostgres:
		if c.Session.DatabaseURI == "" {
			errs = append(errs, errors.New("DATABASE_URI is required for postgres session store"))
		}
	case SessionStoreRedis:
		if c.Session.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for redis session store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store))
	}

	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	return errors.Join(errs...)
}
