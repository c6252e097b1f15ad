// Package config loads the cpi settings from an optional configuration
// file, the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/log"
	"github.com/etnz/inflation"
	"github.com/etnz/inflation/dataset"
	"github.com/etnz/inflation/narrative"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding configuration keys,
// e.g. CPI_DATA_SOURCE for data.source.
const EnvPrefix = "CPI"

// Config represents the complete cpi configuration.
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Narrative NarrativeConfig `mapstructure:"narrative"`
	Log       LogConfig       `mapstructure:"log"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

// DataConfig locates the CPI dataset.
type DataConfig struct {
	Source   string `mapstructure:"source"`  // file path, URL or sheets://<id>/<range>.
	Sheet    string `mapstructure:"sheet"`   // xlsx sheet name.
	Records  string `mapstructure:"records"` // jsonpath of the records.
	Fields   string `mapstructure:"fields"`  // jsonpath of the column names.
	APIKey   string `mapstructure:"api_key"` // Google API key for sheets.
	Cache    string `mapstructure:"cache"`   // directory of the daily download cache, "off" to disable.
	Currency string `mapstructure:"currency"`
	Region   string `mapstructure:"region"`
	Name     string `mapstructure:"name"`
}

// NarrativeConfig configures the narrative service.
type NarrativeConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
	APIKey  string        `mapstructure:"api_key"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DashboardConfig holds the default inputs of an analysis.
type DashboardConfig struct {
	Amount float64 `mapstructure:"amount"`
}

// Load reads the configuration.
//
// When path is empty, a cpi.yaml (or .toml, .json) file is looked up in the
// current directory and in the user configuration directory, and its absence
// is not an error. A .env file in the current directory is loaded first,
// without overriding variables already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The usual Gemini variables are accepted as well.
	if err := v.BindEnv("narrative.api_key", EnvPrefix+"_NARRATIVE_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("cpi")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "cpi"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}
	if f := v.ConfigFileUsed(); f != "" {
		log.Debug("configuration loaded", "file", f)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("data.source", "cpi.csv")
	v.SetDefault("data.sheet", "")
	v.SetDefault("data.records", dataset.DefaultJSONRecords)
	v.SetDefault("data.fields", dataset.DefaultJSONFields)
	v.SetDefault("data.api_key", "")
	if dir, err := os.UserCacheDir(); err == nil {
		v.SetDefault("data.cache", filepath.Join(dir, "cpi"))
	} else {
		v.SetDefault("data.cache", "off")
	}
	v.SetDefault("data.currency", inflation.DefaultCurrency)
	v.SetDefault("data.region", narrative.DefaultRegion)
	v.SetDefault("data.name", "Government of India (via Kaggle)")

	v.SetDefault("narrative.enabled", true)
	v.SetDefault("narrative.model", narrative.DefaultModel)
	v.SetDefault("narrative.timeout", narrative.DefaultTimeout.String())
	v.SetDefault("narrative.api_key", "")

	v.SetDefault("log.level", "warn")

	v.SetDefault("dashboard.amount", inflation.DefaultAmount)
}

// Validate checks every configuration value and reports all the problems.
func (c *Config) Validate() error {
	var errs []error
	if c.Data.Source == "" {
		errs = append(errs, fmt.Errorf("data.source is required"))
	}
	if money.GetCurrency(c.Data.Currency) == nil {
		errs = append(errs, fmt.Errorf("data.currency %q is not a known currency code", c.Data.Currency))
	}
	if c.Narrative.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("narrative.timeout must be positive"))
	}
	if c.Narrative.Enabled && c.Narrative.Model == "" {
		errs = append(errs, fmt.Errorf("narrative.model is required when the narrative is enabled"))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error"))
	}
	if c.Dashboard.Amount < 1 {
		errs = append(errs, fmt.Errorf("dashboard.amount must be at least 1"))
	}
	return errors.Join(errs...)
}

// Source returns the dataset location.
func (c *Config) Source() dataset.Source {
	return dataset.Source{
		Location: c.Data.Source,
		Sheet:    c.Data.Sheet,
		JSON:     dataset.JSONOptions{Records: c.Data.Records, Fields: c.Data.Fields},
		APIKey:   c.Data.APIKey,
		CacheDir: c.cacheDir(),
	}
}

func (c *Config) cacheDir() string {
	if c.Data.Cache == "off" {
		return ""
	}
	return c.Data.Cache
}

// String prints the configuration, credentials are masked.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "data.source: %s\n", c.Data.Source)
	fmt.Fprintf(&b, "data.sheet: %s\n", c.Data.Sheet)
	fmt.Fprintf(&b, "data.records: %s\n", c.Data.Records)
	fmt.Fprintf(&b, "data.fields: %s\n", c.Data.Fields)
	fmt.Fprintf(&b, "data.api_key: %s\n", mask(c.Data.APIKey))
	fmt.Fprintf(&b, "data.cache: %s\n", c.Data.Cache)
	fmt.Fprintf(&b, "data.currency: %s\n", c.Data.Currency)
	fmt.Fprintf(&b, "data.region: %s\n", c.Data.Region)
	fmt.Fprintf(&b, "data.name: %s\n", c.Data.Name)
	fmt.Fprintf(&b, "narrative.enabled: %t\n", c.Narrative.Enabled)
	fmt.Fprintf(&b, "narrative.model: %s\n", c.Narrative.Model)
	fmt.Fprintf(&b, "narrative.timeout: %s\n", c.Narrative.Timeout)
	fmt.Fprintf(&b, "narrative.api_key: %s\n", mask(c.Narrative.APIKey))
	fmt.Fprintf(&b, "log.level: %s\n", c.Log.Level)
	fmt.Fprintf(&b, "dashboard.amount: %v\n", c.Dashboard.Amount)
	return b.String()
}

// mask hides a secret, only telling whether it is set.
func mask(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	return "********"
}
