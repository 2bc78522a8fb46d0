package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress  = "localhost:5000"
	defaultLogLevel       = "info"
	defaultEnv            = "prod"
	defaultConfigDir      = ".payanam"
	defaultCurrency       = "INR"
	defaultRequestTimeout = 15
)

type Config struct {
	Env                string             `mapstructure:"app_env"`
	ServerAddress      string             `mapstructure:"server_address"`
	LogLevel           string             `mapstructure:"log_level"`
	ConfigDir          string             `mapstructure:"config_dir"`
	TokenPath          string             `mapstructure:"token_path"`
	StatePath          string             `mapstructure:"state_path"`
	DataPath           string             `mapstructure:"data_path"`
	EnableTLS          bool               `mapstructure:"enable_tls"`
	Currency           string             `mapstructure:"currency"`
	Rates              map[string]float64 `mapstructure:"currency_rates"`
	ReconcileOnSuccess bool               `mapstructure:"reconcile_on_success"`
	RequestTimeout     time.Duration      `mapstructure:"request_timeout_seconds"`
}

// MustLoad загружает конфигурацию клиента
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom дополнительно читает конфигурационный файл (yaml, json, toml).
// Переменные окружения имеют приоритет над файлом.
func LoadFrom(file string) (*Config, error) {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("ошибка чтения %s: %w", file, err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("ENABLE_TLS", false)
	v.SetDefault("CURRENCY", defaultCurrency)
	v.SetDefault("RECONCILE_ON_SUCCESS", false)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout)

	configDir := v.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}

	rates, err := ParseRates(v.GetString("CURRENCY_RATES"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Env:                v.GetString("APP_ENV"),
		ServerAddress:      v.GetString("SERVER_ADDRESS"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		ConfigDir:          configDir,
		TokenPath:          filepath.Join(configDir, "token.json"),
		StatePath:          filepath.Join(configDir, "state.json"),
		DataPath:           filepath.Join(configDir, "trips.db"),
		EnableTLS:          v.GetBool("ENABLE_TLS"),
		Currency:           strings.ToUpper(v.GetString("CURRENCY")),
		Rates:              rates,
		ReconcileOnSuccess: v.GetBool("RECONCILE_ON_SUCCESS"),
		RequestTimeout:     time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ParseRates разбирает переопределения курсов вида "USD=0.012,EUR=0.011"
func ParseRates(raw string) (map[string]float64, error) {
	rates := map[string]float64{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		code, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("currency_rates: ожидается CODE=RATE, получено %q", pair)
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("currency_rates: курс %q: %w", code, err)
		}
		rates[strings.ToUpper(strings.TrimSpace(code))] = rate
	}
	return rates, nil
}

// EnsureDir создает директорию конфигурации
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.ConfigDir, 0700)
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.ConfigDir == "" {
		return fmt.Errorf("config_dir не может быть пустым")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds должен быть положительным")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == "dev"
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
