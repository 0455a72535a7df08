package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	LLM     LLMConfig     `mapstructure:"llm"`
	Storage StorageConfig `mapstructure:"storage"`
	Chat    ChatConfig    `mapstructure:"chat"`
	Log     LogConfig     `mapstructure:"log"`
	Models  []ModelInfo   `mapstructure:"models"`
}

// LLMConfig holds the completion endpoint configuration
type LLMConfig struct {
	Provider string `mapstructure:"provider"`
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
}

// StorageConfig holds the SQLite configuration
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// ChatConfig holds the per-turn defaults; the REPL copies these into its
// mutable settings and they travel with each request from there.
type ChatConfig struct {
	Personality   string  `mapstructure:"personality"`
	HistoryWindow int     `mapstructure:"history_window"`
	Temperature   float32 `mapstructure:"temperature"`
	TopP          float32 `mapstructure:"top_p"`
	MaxTokens     int     `mapstructure:"max_tokens"`
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ModelInfo describes one selectable upstream model.
type ModelInfo struct {
	Name          string `mapstructure:"name"`
	ID            string `mapstructure:"id"`
	Description   string `mapstructure:"description"`
	ContextLength int    `mapstructure:"context_length"`
}

// DefaultModels is the built-in registry used when the config file lists none.
var DefaultModels = []ModelInfo{
	{Name: "llama3-8b", ID: "llama3-8b-8192", Description: "Fast LLaMA3 8B model", ContextLength: 8192},
	{Name: "mixtral-8x7b", ID: "mixtral-8x7b-32768", Description: "Powerful Mixtral 8x7B model", ContextLength: 32768},
	{Name: "gemma-7b", ID: "gemma-7b-it", Description: "Google's Gemma 7B model", ContextLength: 8192},
}

// Load loads the configuration from config.yaml in the working directory, or
// from the file named by SOLACE_CONFIG. A missing file is not an error; the
// defaults describe a working Groq setup except for the API key, which falls
// back to the GROQ_API_KEY environment variable.
func Load() (*Config, error) {
	v := viper.New()
	if path := os.Getenv("SOLACE_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.model", "llama3-8b-8192")
	v.SetDefault("storage.path", "chat_history.db")
	v.SetDefault("chat.personality", "friendly")
	v.SetDefault("chat.history_window", 5)
	v.SetDefault("chat.temperature", 0.7)
	v.SetDefault("chat.top_p", 0.9)
	v.SetDefault("chat.max_tokens", 256)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if config.LLM.APIKey == "" {
		config.LLM.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if len(config.Models) == 0 {
		config.Models = DefaultModels
	}

	return &config, nil
}

// Model returns the registry entry whose short name or upstream id matches.
func (c *Config) Model(name string) (ModelInfo, bool) {
	for _, m := range c.Models {
		if m.Name == name || m.ID == name {
			return m, true
		}
	}
	return ModelInfo{}, false
}
