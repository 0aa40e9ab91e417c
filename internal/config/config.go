package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP surface used by the browser dashboard
type ServerConfig struct {
	Addr             string   `yaml:"addr" validate:"required"`
	AllowOrigins     []string `yaml:"allowOrigins,omitempty" validate:"min=1,dive,required"`
	ActionsPerMinute int      `yaml:"actionsPerMinute" validate:"min=0"` // Per client IP, 0 disables the limit
}

// Config represents the application configuration
type Config struct {
	DatasetPath      string        `yaml:"datasetPath,omitempty"` // Empty means the built-in demo dataset
	Timezone         string        `yaml:"timezone,omitempty"`
	WorkflowSchedule string        `yaml:"workflowSchedule,omitempty"` // RRULE, e.g. FREQ=HOURLY;BYMINUTE=0;BYSECOND=0
	ToggleDelay      time.Duration `yaml:"toggleDelay" validate:"min=0"`
	RefreshDelay     time.Duration `yaml:"refreshDelay" validate:"min=0"`
	ActionTimeout    time.Duration `yaml:"actionTimeout" validate:"gtfield=ToggleDelay,gtfield=RefreshDelay"`
	RecentLimit      int           `yaml:"recentLimit" validate:"min=1"`
	Server           ServerConfig  `yaml:"server"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used for any field a config file leaves out
func Default() *Config {
	return &Config{
		Timezone:      "Local",
		ToggleDelay:   500 * time.Millisecond,
		RefreshDelay:  time.Second,
		ActionTimeout: 5 * time.Second,
		RecentLimit:   5,
		Server: ServerConfig{
			Addr:             ":8080",
			AllowOrigins:     []string{"*"},
			ActionsPerMinute: 30,
		},
	}
}

// Environment variables that override config file values
const (
	EnvDatasetPath = "TECHPLAN_DATASET_PATH"
	EnvTimezone    = "TECHPLAN_TIMEZONE"
	EnvServerAddr  = "TECHPLAN_SERVER_ADDR"
)

// LoadWithEnv loads and validates config/<env>.yaml
// It looks for the config file in the current directory first, then in ~/.techplan.
// Values from ./.env and the process environment override the file.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	overrides, err := envOverrides(".env")
	if err != nil {
		return nil, err
	}

	return load(configPath, overrides)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	return load(path, nil)
}

func load(path string, overrides map[string]string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyOverrides(overrides)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envOverrides merges dotenvPath (if present) with the process environment.
// Process variables win.
func envOverrides(dotenvPath string) (map[string]string, error) {
	values := map[string]string{}
	if _, err := os.Stat(dotenvPath); err == nil {
		values, err = godotenv.Read(dotenvPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", dotenvPath, err)
		}
	}

	for _, key := range []string{EnvDatasetPath, EnvTimezone, EnvServerAddr} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}
	return values, nil
}

func (c *Config) applyOverrides(values map[string]string) {
	if v, ok := values[EnvDatasetPath]; ok {
		c.DatasetPath = v
	}
	if v, ok := values[EnvTimezone]; ok && v != "" {
		c.Timezone = v
	}
	if v, ok := values[EnvServerAddr]; ok && v != "" {
		c.Server.Addr = v
	}
}

// Validate validates the configuration struct, the time zone and the rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return err
	}

	if cfg.WorkflowSchedule != "" {
		if _, err := rrule.StrToRRule(cfg.WorkflowSchedule); err != nil {
			return fmt.Errorf("invalid rrule in workflowSchedule: %w", err)
		}
	}

	return nil
}

// Location resolves the viewer's time zone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Schedule parses the workflow schedule. It returns nil when no schedule is configured.
func (c *Config) Schedule() (*rrule.ROption, error) {
	if c.WorkflowSchedule == "" {
		return nil, nil
	}
	opt, err := rrule.StrToROption(c.WorkflowSchedule)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule in workflowSchedule: %w", err)
	}
	return opt, nil
}

// findConfigFile searches for config/<env>.yaml in the current directory and ~/.techplan/<env>.yaml
func findConfigFile(env string) (string, error) {
	configFileName := env + ".yaml"

	// Check current directory
	localPath := filepath.Join("config", configFileName)
	if _, err := os.Stat(localPath); err == nil {
		return localPath, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, ".techplan", configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in ./config or ~/.techplan", configFileName)
}
