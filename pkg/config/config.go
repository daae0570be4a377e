package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/viper"
)

const (
	EnvPrefix           = "TADABBUR"
	DefaultSettingsDir  = ".tadabbur"
	DefaultSettingsFile = "settings.yaml"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Headless HeadlessConfig `mapstructure:"headless"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	LogFile  string `mapstructure:"log_file"`
	Preserve bool   `mapstructure:"preserve"`
	Level    string `mapstructure:"level"`
}

// ServerConfig holds the chat backend connection settings
type ServerConfig struct {
	URL              string        `mapstructure:"url"`
	HandshakeTimeout time.Duration `mapstructure:"handshake_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
}

// ChatConfig holds compose and display settings
type ChatConfig struct {
	Model         string `mapstructure:"model"`
	Agent         string `mapstructure:"agent"`
	HistoryWindow int    `mapstructure:"history_window"`
	Markdown      bool   `mapstructure:"markdown"`
}

// HeadlessConfig holds settings for one-shot prompts
type HeadlessConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

var cfg *Config

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}

// Load loads configuration from file and environment
func Load(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			xdgConfigHome = filepath.Join(home, ".config")
		}

		viper.AddConfigPath("./" + DefaultSettingsDir)
		viper.AddConfigPath(filepath.Join(xdgConfigHome, DefaultSettingsDir))
		viper.SetConfigType("yaml")
		viper.SetConfigName(strings.TrimSuffix(DefaultSettingsFile, filepath.Ext(DefaultSettingsFile)))
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	bindEnvironmentVariables()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit file that cannot be read is an error, a missing default is not
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	loaded := &Config{}
	if err := viper.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := loaded.Validate(); err != nil {
		return nil, err
	}

	cfg = loaded
	return cfg, nil
}

// setDefaults sets all default configuration values
func setDefaults() {
	for key, value := range defaults() {
		viper.SetDefault(key, value)
	}
}

func defaults() map[string]any {
	return map[string]any{
		"logging.log_file": "./" + DefaultSettingsDir + "/system.log",
		"logging.preserve": false,
		"logging.level":    "info",

		"server.url":               "ws://localhost:8000/ws/chat",
		"server.handshake_timeout": "10s",
		"server.write_timeout":     "10s",

		"chat.model":          "kimi-k2-instruct-0905",
		"chat.agent":          "tafseer",
		"chat.history_window": 10,
		"chat.markdown":       true,

		"headless.timeout": "2m",
	}
}

// bindEnvironmentVariables binds TADABBUR_ prefixed environment variables
// to their keys explicitly so Unmarshal sees them.
func bindEnvironmentVariables() {
	for key := range defaults() {
		viper.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	}
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("%w: server.url: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("%w: server.url must use ws or wss, got %q", ErrInvalidConfig, c.Server.URL)
	}
	if c.Chat.HistoryWindow <= 0 {
		return fmt.Errorf("%w: chat.history_window must be positive, got %d", ErrInvalidConfig, c.Chat.HistoryWindow)
	}
	if c.Headless.Timeout <= 0 {
		return fmt.Errorf("%w: headless.timeout must be positive, got %s", ErrInvalidConfig, c.Headless.Timeout)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("%w: unknown logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}

// GetConfigFileUsed returns the path to the config file being used
func GetConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// InitializeDefaults creates .tadabbur/settings.yaml after asking the user,
// if it does not exist yet.
func InitializeDefaults() error {
	path := filepath.Join(DefaultSettingsDir, DefaultSettingsFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if !promptUserForSettingsCreation(path) {
		return nil
	}

	return WriteDefaults(path)
}

// WriteDefaults writes the default settings to path. An existing file is
// left untouched.
func WriteDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write default configuration: %w", err)
	}
	return nil
}

// promptUserForSettingsCreation asks whether to create a settings file
func promptUserForSettingsCreation(path string) bool {
	if isTestEnvironment() {
		return false
	}

	confirm := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("No %s file found. Create one with default settings?", path),
	}
	if err := survey.AskOne(prompt, &confirm); err != nil {
		return false
	}
	return confirm
}

// isTestEnvironment checks if we're running in a test environment
func isTestEnvironment() bool {
	if flag.CommandLine.Lookup("test.v") != nil {
		return true
	}
	return os.Getenv("GO_TEST") == "1" || os.Getenv("TESTING") == "1"
}
