package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server  ServerConfig
	OpenAI  OpenAIConfig
	Storage StorageConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port    int `env:"VENDA_PORT" env-default:"4000"`
	MCPPort int `env:"VENDA_MCP_PORT" env-default:"4001"`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	Model   string `env:"VENDA_MODEL" env-default:"gpt-4o-mini"`
}

type StorageConfig struct {
	DBPath string `env:"VENDA_DB_PATH" env-default:"ecommerce.db"`
}

type LogConfig struct {
	Level string `env:"VENDA_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from environment variables. The OpenAI API key is
// the only required value; everything else has a usable default.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}

	if cfg.OpenAI.APIKey == "" {
		return Config{}, fmt.Errorf("missing required config: OpenAI API key. Set it via environment variable OPENAI_API_KEY")
	}

	return cfg, nil
}

// LoadStorage reads only the storage configuration. Commands that touch the
// database without calling a model use this so they work without an API key.
func LoadStorage() (StorageConfig, error) {
	var cfg StorageConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return StorageConfig{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}
