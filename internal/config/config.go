// Package config resolves learnpad settings from flags, environment, an
// optional .env file and an optional YAML config file, in that priority.
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
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/learnpad/internal/llm"
	"github.com/abhisek/learnpad/internal/store"
)

// EnvPrefix is prepended to every environment key: LEARNPAD_DB,
// LEARNPAD_LLM_PROVIDER, LEARNPAD_LLM_ANTHROPIC_API_KEY, ...
const EnvPrefix = "LEARNPAD"

// Config is the resolved application configuration.
type Config struct {
	DB         string
	ContentDir string
	LogFile    string
	LLM        llm.Config

	// LLMDiscovered is set when the provider was picked from a standard
	// API key variable rather than explicit configuration.
	LLMDiscovered bool
}

// Load resolves configuration. flags may be nil; when given, its "db",
// "content" and "config" flags override every other source.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, name := range []string{"db", "content", "config"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, fmt.Errorf("bind --%s: %w", name, err)
				}
			}
		}
	}

	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	configFile := v.GetString("config")
	if configFile == "" {
		configFile = defaultConfigFile()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		DB:         v.GetString("db"),
		ContentDir: v.GetString("content"),
		LogFile:    v.GetString("log_file"),
		LLM:        llmConfig(v),
	}

	if cfg.DB == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		cfg.DB = p
	}
	if cfg.ContentDir == "" {
		cfg.ContentDir = filepath.Join(dataHome(), "learnpad", "topics")
	}

	if v.GetString("llm.provider") == "" {
		if found, ok := discoverLLM(cfg.LLM); ok {
			cfg.LLM = found
			cfg.LLMDiscovered = true
		}
	}
	return cfg, nil
}

func llmConfig(v *viper.Viper) llm.Config {
	cfg := llm.DefaultConfig()
	if p := v.GetString("llm.provider"); p != "" {
		cfg.Provider = p
	}
	if d := v.GetDuration("llm.timeout"); d > 0 {
		cfg.Timeout = d
	}
	if n := v.GetInt("llm.retry.max_attempts"); n > 0 {
		cfg.Retry.MaxAttempts = n
	}

	for _, name := range []string{llm.ProviderAnthropic, llm.ProviderOpenAI, llm.ProviderGemini, llm.ProviderOpenRouter} {
		ep := cfg.Endpoints[name]
		prefix := "llm." + name + "."
		if s := v.GetString(prefix + "api_key"); s != "" {
			ep.APIKey = s
		}
		if s := v.GetString(prefix + "model"); s != "" {
			ep.Model = s
		}
		if s := v.GetString(prefix + "base_url"); s != "" {
			ep.BaseURL = s
		}
		cfg.Endpoints[name] = ep
	}
	return cfg
}

// standardKeys lists the vendor API key variables probed when no provider
// is configured, in priority order.
var standardKeys = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", llm.ProviderGemini},
	{"OPENAI_API_KEY", llm.ProviderOpenAI},
	{"ANTHROPIC_API_KEY", llm.ProviderAnthropic},
	{"OPENROUTER_API_KEY", llm.ProviderOpenRouter},
}

func discoverLLM(cfg llm.Config) (llm.Config, bool) {
	// An explicitly configured key for the default provider wins.
	if cfg.Endpoint().APIKey != "" {
		return cfg, false
	}
	for _, k := range standardKeys {
		if key := os.Getenv(k.env); key != "" {
			cfg.Provider = k.provider
			ep := cfg.Endpoints[k.provider]
			ep.APIKey = key
			cfg.Endpoints[k.provider] = ep
			return cfg, true
		}
	}
	return cfg, false
}

func defaultConfigFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "learnpad", "config.yaml")
}

func dataHome() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// LLMTimeout returns the configured per-request deadline.
func (c *Config) LLMTimeout() time.Duration {
	if c.LLM.Timeout <= 0 {
		return llm.DefaultConfig().Timeout
	}
	return c.LLM.Timeout
}
