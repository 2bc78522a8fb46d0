package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Env     string
	Storage string
	DB      DB
	Server  Server
	Logger  Logger
	JWT     JWT
	CORS    CORS
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT_SECONDS"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT_SECONDS"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT_SECONDS"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type JWT struct {
	Secret string        `env:"JWT_SECRET"`
	TTL    time.Duration `env:"JWT_TTL_HOURS"`
}

type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("storage", StoragePostgres)
	v.SetDefault("run_address", ":5000")
	v.SetDefault("migrations_path", "migrations")
	v.SetDefault("log_level", "info")
	v.SetDefault("read_timeout_seconds", 10)
	v.SetDefault("write_timeout_seconds", 10)
	v.SetDefault("shutdown_timeout_seconds", 15)
	v.SetDefault("jwt_ttl_hours", 24)
	v.SetDefault("cors_allowed_origins", "*")

	config := Config{
		Env:     v.GetString("app_env"),
		Storage: strings.ToLower(v.GetString("storage")),
		DB: DB{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Server: Server{
			RunAddress:      v.GetString("run_address"),
			ReadTimeout:     time.Duration(v.GetInt("read_timeout_seconds")) * time.Second,
			WriteTimeout:    time.Duration(v.GetInt("write_timeout_seconds")) * time.Second,
			ShutdownTimeout: time.Duration(v.GetInt("shutdown_timeout_seconds")) * time.Second,
		},
		Logger: Logger{LogLevel: v.GetString("log_level")},
		JWT: JWT{
			Secret: v.GetString("jwt_secret"),
			TTL:    time.Duration(v.GetInt("jwt_ttl_hours")) * time.Hour,
		},
		CORS: CORS{AllowedOrigins: splitList(v.GetString("cors_allowed_origins"))},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case StoragePostgres:
		if c.DB.DatabaseURI == "" {
			return fmt.Errorf("DATABASE_URI is required for %s storage", StoragePostgres)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Env == EnvProd && len(c.CORS.AllowedOrigins) == 1 && c.CORS.AllowedOrigins[0] == "*" {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must be set explicitly in %s", EnvProd)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
