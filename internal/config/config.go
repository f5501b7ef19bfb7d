package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tidysweep/internal/types"
)

//go:embed categories.yaml
var categoriesYAML []byte

// UIConfig tunes the picker display.
type UIConfig struct {
	DefaultDirLimit int  `yaml:"default_dir_limit"`
	DirLimitStep    int  `yaml:"dir_limit_step"`
	PathBudget      int  `yaml:"path_budget"`
	NameBudget      int  `yaml:"name_budget"`
	AbsolutePaths   bool `yaml:"absolute_paths"`
}

// ScanConfig tunes the filesystem scanners.
type ScanConfig struct {
	Roots           []string `yaml:"roots"`
	DownloadAgeDays int      `yaml:"download_age_days"`
	MaxDepth        int      `yaml:"max_depth"`
}

type Config struct {
	UI   UIConfig   `yaml:"ui"`
	Scan ScanConfig `yaml:"scan"`

	// AllFiles forces per-file selection for every category,
	// including ones configured all-or-nothing.
	AllFiles bool `yaml:"-"`
	DryRun   bool `yaml:"-"`
}

func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		UI: UIConfig{
			DefaultDirLimit: 5,
			DirLimitStep:    10,
			PathBudget:      50,
			NameBudget:      40,
		},
		Scan: ScanConfig{
			Roots:           []string{home},
			DownloadAgeDays: 30,
			MaxDepth:        6,
		},
	}
}

// Load reads the user config from ~/.config/tidysweep/config.yaml,
// falling back to defaults when the file does not exist.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(filepath.Join(home, ".config", "tidysweep", "config.yaml"))
}

// LoadFile reads a config file, applying defaults for absent fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.UI.DefaultDirLimit <= 0 {
		cfg.UI.DefaultDirLimit = 5
	}
	if cfg.UI.DirLimitStep <= 0 {
		cfg.UI.DirLimitStep = 10
	}
	if cfg.UI.PathBudget <= 0 {
		cfg.UI.PathBudget = 50
	}
	if cfg.UI.NameBudget <= 0 {
		cfg.UI.NameBudget = 40
	}
	return cfg, nil
}

// Categories returns the built-in category definitions with ~ expanded.
func Categories() ([]types.Category, error) {
	var doc struct {
		Categories []types.Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(categoriesYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	home, _ := os.UserHomeDir()
	for i := range doc.Categories {
		for j, p := range doc.Categories[i].Paths {
			doc.Categories[i].Paths[j] = ExpandHome(p, home)
		}
	}
	return doc.Categories, nil
}

// ExpandHome replaces a leading ~ with the home directory.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
