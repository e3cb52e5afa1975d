package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/teller-dev/teller/internal/analytics"
)

// FileName is the default config file.
const FileName = "teller.yaml"

// Config represents the top-level teller.yaml configuration.
type Config struct {
	DataDir  string         `yaml:"data_dir"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Salary   SalaryConfig   `yaml:"salary"`
	Server   ServerConfig   `yaml:"server"`
}

// DefaultsConfig holds the default thresholds for the analytical
// queries when the caller does not override them.
type DefaultsConfig struct {
	DaysInactive   int     `yaml:"days_inactive"`
	LargeAmount    float64 `yaml:"large_amount"`
	SalaryMin      float64 `yaml:"salary_min"`
	HighBalanceMin float64 `yaml:"high_balance_min"`
}

// SalaryConfig selects the salary-deposit keyword profile.
type SalaryConfig struct {
	KeywordProfile string `yaml:"keyword_profile"` // "default" or "strict"
}

// ServerConfig controls the HTTP front-end.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// Load reads a teller.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the standard thresholds.
func Default(dataDir string) *Config {
	return &Config{
		DataDir: dataDir,
		Defaults: DefaultsConfig{
			DaysInactive:   180,
			LargeAmount:    1000,
			SalaryMin:      500,
			HighBalanceMin: 100000,
		},
		Salary: SalaryConfig{
			KeywordProfile: "default",
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
	}
}

// Keywords resolves the configured keyword profile to a keyword set.
// Unknown profiles fall back to the default set.
func (c *Config) Keywords() analytics.KeywordSet {
	if c.Salary.KeywordProfile == "strict" {
		return analytics.StrictKeywords
	}
	return analytics.DefaultKeywords
}
