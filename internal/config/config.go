package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxTableEntry = 100
	defaultHTTPTimeout   = "30s"
)

type Config struct {
	ProjectNames []string      `yaml:"project_names"`
	Users        []string      `yaml:"users"`
	APIURL       string        `yaml:"api_url"`
	APIToken     string        `yaml:"api_token"`
	AppOptions   AppOptions    `yaml:"app_options"`
	HTTPTimeout  time.Duration `yaml:"-"`
	RawTimeout   string        `yaml:"http_timeout,omitempty"`
	LogFile      string        `yaml:"log_file,omitempty"`
	Log          LogConfig     `yaml:"log,omitempty"`
	TUI          TUIConfig     `yaml:"tui,omitempty"`
}

type AppOptions struct {
	MaxTableEntry  int       `yaml:"max_table_entry"`
	NumberTypeMenu bool      `yaml:"number_type_menu,omitempty"`
	AppColors      AppColors `yaml:"app_colors"`
}

// AppColors names the colour of each screen component. Values are ANSI
// colour names ("cyan"), 256-colour numbers or hex codes.
type AppColors struct {
	Table       string `yaml:"table"`
	Menu        string `yaml:"menu"`
	DetailsForm string `yaml:"details_form"`
	Prompts     string `yaml:"prompts"`
}

type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

type TUIConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// ConfigurationError reports required settings that are missing. It is
// fatal: no session is started.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing essential parameters: %s", strings.Join(e.Missing, ", "))
}

// IsConfigurationError reports whether err carries a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func Load(path string) (*Config, error) {
	if path == "" {
		return nil, &ConfigurationError{Missing: []string{"config file"}}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() error {
	if c.RawTimeout == "" {
		c.RawTimeout = defaultHTTPTimeout
	}
	d, err := time.ParseDuration(c.RawTimeout)
	if err != nil {
		return fmt.Errorf("parse http_timeout %q: %w", c.RawTimeout, err)
	}
	if d <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.RawTimeout)
	}
	c.HTTPTimeout = d

	if c.AppOptions.MaxTableEntry <= 0 {
		c.AppOptions.MaxTableEntry = DefaultMaxTableEntry
	}

	colors := &c.AppOptions.AppColors
	if colors.Table == "" {
		colors.Table = "white"
	}
	if colors.Menu == "" {
		colors.Menu = "cyan"
	}
	if colors.DetailsForm == "" {
		colors.DetailsForm = "white"
	}
	if colors.Prompts == "" {
		colors.Prompts = "white"
	}

	if c.LogFile == "" {
		c.LogFile = defaultLogFile()
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.TUI.Enabled == nil {
		defaultTrue := true
		c.TUI.Enabled = &defaultTrue
	}

	c.APIURL = strings.TrimRight(c.APIURL, "/")

	return nil
}

func (c *Config) validate() error {
	var missing []string
	if len(c.ProjectNames) == 0 {
		missing = append(missing, "project_names")
	}
	if c.APIURL == "" {
		missing = append(missing, "api_url")
	}
	if c.APIToken == "" {
		missing = append(missing, "api_token")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}

	for i, p := range c.ProjectNames {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("project_names[%d]: empty project name", i)
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q (debug|info|warn|error)", c.Log.Level)
	}
	return nil
}

func defaultLogFile() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "jiraclui", "jiraclui.log")
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "jiraclui", "jiraclui.log")
}

// GenerateSample writes a starter config to path.
func GenerateSample(path string) error {
	if path == "" {
		path = "config.yaml"
	}

	sample := Config{
		ProjectNames: []string{"PRA", "PRB", "PRC"},
		Users:        []string{},
		APIURL:       "https://jira.example.com",
		APIToken:     "YOUR_API_TOKEN",
		AppOptions: AppOptions{
			MaxTableEntry: 200,
			AppColors: AppColors{
				Table:       "yellow",
				Menu:        "cyan",
				DetailsForm: "yellow",
				Prompts:     "cyan",
			},
		},
	}

	data, err := yaml.Marshal(&sample)
	if err != nil {
		return fmt.Errorf("marshal sample config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
