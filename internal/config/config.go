package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort      int    `mapstructure:"APP_PORT"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`

	DefaultModel          string `mapstructure:"DEFAULT_MODEL"`
	OpenAIAPIKey          string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL         string `mapstructure:"OPENAI_BASE_URL"`
	AzureOpenAIAPIKey     string `mapstructure:"AZURE_OPENAI_API_KEY"`
	AzureOpenAIEndpoint   string `mapstructure:"AZURE_OPENAI_ENDPOINT"`
	AzureOpenAIDeployment string `mapstructure:"AZURE_OPENAI_DEPLOYMENT"`
	AWSRegion             string `mapstructure:"AWS_REGION"`
	OllamaURL             string `mapstructure:"OLLAMA_URL"`

	// Summaries are cached in Redis when RedisAddr is set, otherwise in SQLite.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisDB              int    `mapstructure:"REDIS_DB"`
	SummaryCacheTTLHours int    `mapstructure:"SUMMARY_CACHE_TTL_HOURS"`

	GenerationTimeoutSeconds int `mapstructure:"GENERATION_TIMEOUT_SECONDS"`
	HistoryWindow            int `mapstructure:"HISTORY_WINDOW"`

	RateLimitReply         int `mapstructure:"RATE_LIMIT_REPLY"`
	RateLimitRegenerate    int `mapstructure:"RATE_LIMIT_REGENERATE"`
	RateLimitSummary       int `mapstructure:"RATE_LIMIT_SUMMARY"`
	RateLimitWindowSeconds int `mapstructure:"RATE_LIMIT_WINDOW_SECONDS"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/tutorflow.db")
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetDefault("DEFAULT_MODEL", "gpt-4o-mini")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_BASE_URL", "")
	viper.SetDefault("AZURE_OPENAI_API_KEY", "")
	viper.SetDefault("AZURE_OPENAI_ENDPOINT", "")
	viper.SetDefault("AZURE_OPENAI_DEPLOYMENT", "")
	viper.SetDefault("AWS_REGION", "")
	viper.SetDefault("OLLAMA_URL", "")

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SUMMARY_CACHE_TTL_HOURS", 0)

	viper.SetDefault("GENERATION_TIMEOUT_SECONDS", 120)
	viper.SetDefault("HISTORY_WINDOW", 15)

	viper.SetDefault("RATE_LIMIT_REPLY", 20)
	viper.SetDefault("RATE_LIMIT_REGENERATE", 10)
	viper.SetDefault("RATE_LIMIT_SUMMARY", 10)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GenerationTimeout bounds every provider call.
func (c *Config) GenerationTimeout() time.Duration {
	return time.Duration(c.GenerationTimeoutSeconds) * time.Second
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// SummaryCacheTTL is zero when cached summaries never expire.
func (c *Config) SummaryCacheTTL() time.Duration {
	return time.Duration(c.SummaryCacheTTLHours) * time.Hour
}
