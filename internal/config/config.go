package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for DBConfig.Driver.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
	DriverOracle   = "oracle"
)

// Supported values for LLMConfig.Provider.
const (
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Scraper ScraperConfig
	LLM     LLMConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
}

type DBConfig struct {
	Driver       string
	URL          string
	MaxOpenConns int
	// AutoMigrate runs pending migrations when the API starts.
	AutoMigrate bool
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	QuizTTL  time.Duration
}

// Enabled reports whether a redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type LoggerConfig struct {
	Level string
	Env   string
}

type ScraperConfig struct {
	Timeout   time.Duration
	UserAgent string
}

type LLMConfig struct {
	Provider    string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	// ServerURL is the ollama endpoint, or an OpenAI-compatible base URL.
	ServerURL string
	APIKey    string
}

// DefaultUserAgent is sent with every article fetch; Wikipedia rejects some default client agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.5993.90 Safari/537.36"

var defaultModels = map[string]string{
	ProviderGemini:    "gemini-2.5-flash",
	ProviderOllama:    "qwen3:0.6b",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-haiku-4-5-20251001",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "90s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.idle_timeout", "30s")
	v.SetDefault("server.body_limit", 1024*1024)

	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.auto_migrate", true)

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.quiz_ttl", "24h")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("scraper.timeout", "10s")
	v.SetDefault("scraper.user_agent", DefaultUserAgent)

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 8192)
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.server_url", "http://localhost:11434")
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	// db.url -> DB_URL, llm.api_key -> LLM_API_KEY, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names used by the original deployment.
	_ = v.BindEnv("db.url", "DB_URL", "DATABASE_URL")
	_ = v.BindEnv("logger.env", "LOGGER_ENV", "ENV")
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		DB: DBConfig{
			Driver:       strings.ToLower(v.GetString("db.driver")),
			URL:          v.GetString("db.url"),
			MaxOpenConns: v.GetInt("db.max_open_conns"),
			AutoMigrate:  v.GetBool("db.auto_migrate"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			QuizTTL:  v.GetDuration("redis.quiz_ttl"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Scraper: ScraperConfig{
			Timeout:   v.GetDuration("scraper.timeout"),
			UserAgent: v.GetString("scraper.user_agent"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			Model:       v.GetString("llm.model"),
			Temperature: v.GetFloat64("llm.temperature"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
			Timeout:     v.GetDuration("llm.timeout"),
			ServerURL:   v.GetString("llm.server_url"),
			APIKey:      v.GetString("llm.api_key"),
		},
	}

	// Provider-specific key names win over the generic LLM_API_KEY.
	if key := ProviderAPIKey(cfg.LLM.Provider); key != "" {
		cfg.LLM.APIKey = key
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel(cfg.LLM.Provider)
	}

	return cfg, nil
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// ProviderAPIKey reads the provider's own API key variable.
func ProviderAPIKey(provider string) string {
	switch provider {
	case ProviderGemini:
		return os.Getenv("GEMINI_API_KEY")
	case ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return ""
}

// Validate checks the settings the API cannot start without.
func (c *Config) Validate() error {
	if err := c.ValidateLLM(); err != nil {
		return err
	}
	switch c.DB.Driver {
	case DriverPostgres, DriverOracle:
		if c.DB.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", c.DB.Driver)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unknown database driver: %q", c.DB.Driver)
	}
	return nil
}

// ValidateLLM checks that the selected provider has what it needs.
func (c *Config) ValidateLLM() error {
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider (set %s_API_KEY)", c.LLM.Provider, strings.ToUpper(c.LLM.Provider))
		}
	case ProviderOllama:
		if c.LLM.ServerURL == "" {
			return fmt.Errorf("llm.server_url is required for the ollama provider")
		}
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be within [0, 2], got %v", c.LLM.Temperature)
	}
	return nil
}

// GetDSN returns the connection string for the configured driver.
func (c *Config) GetDSN() string {
	if c.DB.URL == "" && c.DB.Driver == DriverSQLite {
		return "file:wikiquiz.db?_pragma=busy_timeout(5000)"
	}
	return c.DB.URL
}
