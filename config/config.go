package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to environment overrides, e.g.
// LEDGER_STORE_DB_PATH or LEDGER_ACCOUNT_STARTING_BALANCE.
const EnvPrefix = "LEDGER"

// Config is the complete ledger configuration.
type Config struct {
	Account     AccountConfig      `json:"account" yaml:"account" mapstructure:"account"`
	Instruments map[string]float64 `json:"instruments,omitempty" yaml:"instruments,omitempty" mapstructure:"instruments"`
	Store       StoreConfig        `json:"store" yaml:"store" mapstructure:"store"`
	PromptState PromptStateConfig  `json:"prompt_state" yaml:"prompt_state" mapstructure:"prompt_state"`
	Server      ServerConfig       `json:"server" yaml:"server" mapstructure:"server"`
	Log         LogConfig          `json:"log" yaml:"log" mapstructure:"log"`
	Trace       TraceConfig        `json:"trace" yaml:"trace" mapstructure:"trace"`
}

// AccountConfig identifies the journal owner. ID keys the prompt
// rotation state.
type AccountConfig struct {
	ID              string  `json:"id" yaml:"id" mapstructure:"id"`
	Currency        string  `json:"currency" yaml:"currency" mapstructure:"currency"`
	StartingBalance float64 `json:"starting_balance" yaml:"starting_balance" mapstructure:"starting_balance"`
}

type StoreConfig struct {
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`
}

// PromptStateConfig selects where the reflection rotation state lives:
// "sqlite" (next to the journal), "redis" or "memory".
type PromptStateConfig struct {
	Backend        string `json:"backend" yaml:"backend" mapstructure:"backend"`
	RedisAddr      string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty" mapstructure:"redis_addr"`
	RedisPassword  string `json:"redis_password,omitempty" yaml:"redis_password,omitempty" mapstructure:"redis_password"`
	RedisDB        int    `json:"redis_db,omitempty" yaml:"redis_db,omitempty" mapstructure:"redis_db"`
	RedisKeyPrefix string `json:"redis_key_prefix,omitempty" yaml:"redis_key_prefix,omitempty" mapstructure:"redis_key_prefix"`
}

type ServerConfig struct {
	HTTPAddr string `json:"http_addr" yaml:"http_addr" mapstructure:"http_addr"`
	Mode     string `json:"mode" yaml:"mode" mapstructure:"mode"` // gin mode: "release", "debug" or "test"
}

type LogConfig struct {
	Level       string `json:"level" yaml:"level" mapstructure:"level"`
	Encoding    string `json:"encoding" yaml:"encoding" mapstructure:"encoding"` // "json" or "console"
	Development bool   `json:"development" yaml:"development" mapstructure:"development"`
}

// TraceConfig turns on OpenTelemetry spans, written to stderr.
type TraceConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	ServiceName string `json:"service_name" yaml:"service_name" mapstructure:"service_name"`
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:              "default",
			Currency:        "USD",
			StartingBalance: 10000,
		},
		Store: StoreConfig{
			DBPath: "./ledger.sqlite",
		},
		PromptState: PromptStateConfig{
			Backend:        "sqlite",
			RedisKeyPrefix: "ledger:prompt_state:",
		},
		Server: ServerConfig{
			HTTPAddr: ":8080",
			Mode:     "release",
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
		Trace: TraceConfig{
			ServiceName: "ledger",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("account.id", d.Account.ID)
	v.SetDefault("account.currency", d.Account.Currency)
	v.SetDefault("account.starting_balance", d.Account.StartingBalance)
	v.SetDefault("store.db_path", d.Store.DBPath)
	v.SetDefault("prompt_state.backend", d.PromptState.Backend)
	v.SetDefault("prompt_state.redis_addr", "")
	v.SetDefault("prompt_state.redis_password", "")
	v.SetDefault("prompt_state.redis_db", 0)
	v.SetDefault("prompt_state.redis_key_prefix", d.PromptState.RedisKeyPrefix)
	v.SetDefault("server.http_addr", d.Server.HTTPAddr)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.encoding", d.Log.Encoding)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("trace.enabled", d.Trace.Enabled)
	v.SetDefault("trace.service_name", d.Trace.ServiceName)
}

// Load reads path (YAML or JSON, by extension) over the defaults and then
// applies LEDGER_* environment overrides. An empty path loads defaults and
// environment only. The result is validated.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile is Load for a required file.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}
	return Load(path)
}

// normalize uppercases instrument symbols; viper lowercases map keys.
func (c *Config) normalize() {
	if len(c.Instruments) == 0 {
		return
	}
	out := make(map[string]float64, len(c.Instruments))
	for k, v := range c.Instruments {
		out[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	c.Instruments = out
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Account.ID) == "" {
		return fmt.Errorf("account.id is required")
	}
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.StartingBalance <= 0 {
		return fmt.Errorf("account.starting_balance must be positive")
	}
	for sym, pv := range c.Instruments {
		if strings.TrimSpace(sym) == "" {
			return fmt.Errorf("instruments: empty symbol")
		}
		if pv <= 0 {
			return fmt.Errorf("instruments.%s: point value must be positive", sym)
		}
	}
	if c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path is required")
	}
	switch c.PromptState.Backend {
	case "sqlite", "memory":
	case "redis":
		if c.PromptState.RedisAddr == "" {
			return fmt.Errorf("prompt_state.redis_addr required for redis backend")
		}
		if c.PromptState.RedisKeyPrefix == "" {
			return fmt.Errorf("prompt_state.redis_key_prefix required for redis backend")
		}
	default:
		return fmt.Errorf("prompt_state.backend must be 'sqlite', 'redis' or 'memory'")
	}
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}
	switch c.Server.Mode {
	case "", "release", "debug", "test":
	default:
		return fmt.Errorf("server.mode must be 'release', 'debug' or 'test'")
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("log.encoding must be 'json' or 'console'")
	}
	return nil
}
