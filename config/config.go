package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inference-gateway/toolgate/internal/logger"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the per-workspace configuration directory
	ConfigDirName = ".toolgate"
	// DefaultConfigPath is the default config file location relative to the workspace
	DefaultConfigPath = ".toolgate/config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. TOOLGATE_GATEWAY_API_KEY
	EnvPrefix = "TOOLGATE"
)

// Config represents the toolgate configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
	Gateway   GatewayConfig   `yaml:"gateway" mapstructure:"gateway"`
	Agent     AgentConfig     `yaml:"agent" mapstructure:"agent"`
	Policy    PolicyConfig    `yaml:"policy" mapstructure:"policy"`
	Integrity IntegrityConfig `yaml:"integrity" mapstructure:"integrity"`
	Hooks     HooksConfig     `yaml:"hooks" mapstructure:"hooks"`
	Scheduler SchedulerConfig `yaml:"scheduler" mapstructure:"scheduler"`
	Steering  SteeringConfig  `yaml:"steering" mapstructure:"steering"`
	Storage   StorageConfig   `yaml:"storage" mapstructure:"storage"`
	Tools     ToolsConfig     `yaml:"tools" mapstructure:"tools"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Debug bool   `yaml:"debug" mapstructure:"debug"`
	Dir   string `yaml:"dir" mapstructure:"dir"`
}

// GatewayConfig contains gateway connection settings
type GatewayConfig struct {
	URL     string `yaml:"url" mapstructure:"url"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	Timeout int    `yaml:"timeout" mapstructure:"timeout"`
}

// AgentConfig contains turn loop settings
type AgentConfig struct {
	Model        string `yaml:"model" mapstructure:"model"`
	SystemPrompt string `yaml:"system_prompt" mapstructure:"system_prompt"`
	MaxTurns     int    `yaml:"max_turns" mapstructure:"max_turns"`
}

// PolicyConfig contains policy rule sources and workspace trust
type PolicyConfig struct {
	Rules          []RuleConfig `yaml:"rules" mapstructure:"rules"`
	GlobalDir      string       `yaml:"global_dir" mapstructure:"global_dir"`
	WorkspaceDir   string       `yaml:"workspace_dir" mapstructure:"workspace_dir"`
	ExtensionDirs  []string     `yaml:"extension_dirs,omitempty" mapstructure:"extension_dirs"`
	TrustedFolders []string     `yaml:"trusted_folders,omitempty" mapstructure:"trusted_folders"`
}

// RuleConfig is an inline policy rule from the settings file
type RuleConfig struct {
	Tool     string `yaml:"tool" mapstructure:"tool"`
	Server   string `yaml:"server,omitempty" mapstructure:"server"`
	Decision string `yaml:"decision" mapstructure:"decision"`
}

// IntegrityConfig contains policy integrity settings
type IntegrityConfig struct {
	// AutoAcceptNonInteractive accepts new or changed policies without a prompt
	// when no interactive front-end is attached. A warning is always logged.
	AutoAcceptNonInteractive bool `yaml:"auto_accept_non_interactive" mapstructure:"auto_accept_non_interactive"`
	Watch                    bool `yaml:"watch" mapstructure:"watch"`
	WatchDebounceMs          int  `yaml:"watch_debounce_ms" mapstructure:"watch_debounce_ms"`
}

// HooksConfig contains config-sourced hook definitions keyed by event
type HooksConfig struct {
	BeforeTool []HookConfig `yaml:"before_tool" mapstructure:"before_tool"`
	AfterTool  []HookConfig `yaml:"after_tool" mapstructure:"after_tool"`
}

// HookConfig is a single external-process hook
type HookConfig struct {
	Matcher string   `yaml:"matcher" mapstructure:"matcher"`
	Command string   `yaml:"command" mapstructure:"command"`
	Args    []string `yaml:"args,omitempty" mapstructure:"args"`
	Timeout int      `yaml:"timeout,omitempty" mapstructure:"timeout"`
}

// SchedulerConfig contains wave scheduler settings
type SchedulerConfig struct {
	Interactive         bool     `yaml:"interactive" mapstructure:"interactive"`
	MaxParallel         int      `yaml:"max_parallel" mapstructure:"max_parallel"`
	ConfirmationTimeout int      `yaml:"confirmation_timeout" mapstructure:"confirmation_timeout"`
	PreApprovedTools    []string `yaml:"pre_approved_tools,omitempty" mapstructure:"pre_approved_tools"`
}

// SteeringConfig contains steering settings
type SteeringConfig struct {
	InterruptPendingConfirmation bool `yaml:"interrupt_pending_confirmation" mapstructure:"interrupt_pending_confirmation"`
}

// StorageConfig selects the integrity store backend
type StorageConfig struct {
	Type     string         `yaml:"type" mapstructure:"type"`
	Jsonl    JsonlConfig    `yaml:"jsonl" mapstructure:"jsonl"`
	SQLite   SQLiteConfig   `yaml:"sqlite" mapstructure:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
	Redis    RedisConfig    `yaml:"redis" mapstructure:"redis"`
}

// JsonlConfig contains file-backed store settings
type JsonlConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// SQLiteConfig contains SQLite-specific configuration
type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// PostgresConfig contains Postgres-specific configuration
type PostgresConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Database string `yaml:"database" mapstructure:"database"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	SSLMode  string `yaml:"ssl_mode" mapstructure:"ssl_mode"`
}

// RedisConfig contains Redis-specific configuration
type RedisConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Database int    `yaml:"database" mapstructure:"database"`
	Password string `yaml:"password,omitempty" mapstructure:"password"`
	Username string `yaml:"username,omitempty" mapstructure:"username"`
	Prefix   string `yaml:"prefix,omitempty" mapstructure:"prefix"`
}

// ToolsConfig contains settings for the reference tool executors
type ToolsConfig struct {
	WorkspaceRoot string `yaml:"workspace_root" mapstructure:"workspace_root"`
	ShellTimeout  int    `yaml:"shell_timeout" mapstructure:"shell_timeout"`
	MaxReadBytes  int64  `yaml:"max_read_bytes" mapstructure:"max_read_bytes"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Debug: false,
			Dir:   "",
		},
		Gateway: GatewayConfig{
			URL:     "http://localhost:8080",
			APIKey:  "",
			Timeout: 200,
		},
		Agent: AgentConfig{
			Model:    "",
			MaxTurns: 50,
		},
		Policy: PolicyConfig{
			Rules: []RuleConfig{
				{Tool: "write_file", Decision: "ask_user"},
				{Tool: "run_shell_command", Decision: "ask_user"},
			},
			GlobalDir:    "~/.toolgate/policies",
			WorkspaceDir: ".toolgate/policies",
		},
		Integrity: IntegrityConfig{
			AutoAcceptNonInteractive: true,
			Watch:                    false,
			WatchDebounceMs:          500,
		},
		Scheduler: SchedulerConfig{
			Interactive:         true,
			MaxParallel:         8,
			ConfirmationTimeout: 300,
		},
		Steering: SteeringConfig{
			InterruptPendingConfirmation: false,
		},
		Storage: StorageConfig{
			Type: "jsonl",
			Jsonl: JsonlConfig{
				Path: "~/.toolgate/integrity",
			},
			SQLite: SQLiteConfig{
				Path: "~/.toolgate/integrity.db",
			},
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				Database: "toolgate",
				SSLMode:  "disable",
			},
			Redis: RedisConfig{
				Host:   "localhost",
				Port:   6379,
				Prefix: "toolgate",
			},
		},
		Tools: ToolsConfig{
			WorkspaceRoot: ".",
			ShellTimeout:  120,
			MaxReadBytes:  1 << 20,
		},
	}
}

// GetConfigPath returns the config path from the flag value, falling back to the default
func GetConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return DefaultConfigPath
}

// NewViper creates a viper instance bound to the config file and TOOLGATE_* env overrides
func NewViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"logging.debug",
		"logging.dir",
		"gateway.url",
		"gateway.api_key",
		"agent.model",
		"scheduler.interactive",
		"integrity.auto_accept_non_interactive",
		"storage.type",
	} {
		_ = v.BindEnv(key)
	}

	return v
}

// Load loads configuration from file, applying TOOLGATE_* environment overrides.
// A missing file yields the default configuration.
func Load(configPath string) (*Config, *viper.Viper, error) {
	configPath = GetConfigPath(configPath)
	v := NewViper(configPath)
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); err == nil {
		logger.Debug("Loading config file", "path", configPath)
		if err := v.ReadInConfig(); err != nil {
			logger.Error("Failed to read config file", "path", configPath, "error", err)
			return nil, nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		logger.Debug("Config file not found, using default configuration", "path", configPath)
	}

	if err := v.Unmarshal(cfg); err != nil {
		logger.Error("Failed to parse config file", "path", configPath, "error", err)
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, v, nil
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "memory", "jsonl", "sqlite", "postgres", "redis":
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	if c.Scheduler.MaxParallel < 0 {
		return fmt.Errorf("scheduler.max_parallel must not be negative")
	}
	for i, h := range append(append([]HookConfig{}, c.Hooks.BeforeTool...), c.Hooks.AfterTool...) {
		if strings.TrimSpace(h.Command) == "" {
			return fmt.Errorf("hook %d has no command", i)
		}
	}
	return nil
}

// Save saves configuration to file
func (c *Config) Save(configPath string) error {
	configPath = GetConfigPath(configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("Failed to create config directory", "dir", dir, "error", err)
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		logger.Error("Failed to marshal config", "error", err)
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to close YAML encoder: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		logger.Error("Failed to write config file", "path", configPath, "error", err)
		return fmt.Errorf("failed to write config file: %w", err)
	}

	logger.Debug("Successfully saved config", "path", configPath)
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// WorkspacePolicyDir resolves the workspace policy directory against root
func (c *Config) WorkspacePolicyDir(root string) string {
	dir := ExpandPath(c.Policy.WorkspaceDir)
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}
