package config

import (
	"os"
	"path/filepath"
	"strings"

	serr "sxredder/internal/errors"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPreviewLines is the number of file lines shown in the preview pane
	DefaultPreviewLines = 100
	// MaxPreviewLines bounds preview.max_lines
	MaxPreviewLines = 10000
)

// Config represents the application configuration structure.
// The file is optional and only ever read; every default reproduces the
// documented behavior of the browser.
type Config struct {
	Preview struct {
		MaxLines int `yaml:"max_lines"` // Lines read from the head of a file
	} `yaml:"preview"`
	Browser struct {
		Ignore    []string `yaml:"ignore"`     // Glob patterns of names to hide
		ShowSizes bool     `yaml:"show_sizes"` // Show size column in the list
	} `yaml:"browser"`
	Watch struct {
		AutoRefresh bool `yaml:"auto_refresh"` // Re-list the directory on change events
	} `yaml:"watch"`
	Theme struct {
		Name string `yaml:"name"` // default, dark, light or monochrome
	} `yaml:"theme"`
}

// DefaultPath returns ~/.config/sxredder/config.yaml, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sxredder", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return New(), nil
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, serr.NewConfigError("error reading config file", path, serr.ConfigNotFound, err)
	}

	// Unmarshal over the defaults so unset keys keep their default value
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, serr.NewConfigError("error parsing config file", path, serr.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Preview.MaxLines = DefaultPreviewLines
	cfg.Browser.Ignore = []string{}
	cfg.Browser.ShowSizes = true
	cfg.Watch.AutoRefresh = false
	cfg.Theme.Name = "default"
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return serr.NewConfigError("nil config", "", serr.InvalidConfig, nil)
	}

	if c.Preview.MaxLines < 1 || c.Preview.MaxLines > MaxPreviewLines {
		return serr.NewConfigError("preview line budget out of range", "preview.max_lines", serr.InvalidConfig, nil)
	}

	if _, err := c.IgnoreMatchers(); err != nil {
		return err
	}

	if _, ok := themes[c.Theme.Name]; !ok {
		msg := "unknown theme " + c.Theme.Name + " (available: " + strings.Join(ListThemes(), ", ") + ")"
		return serr.NewConfigError(msg, "theme.name", serr.InvalidConfig, nil)
	}

	return nil
}

// IgnoreMatchers compiles browser.ignore
func (c *Config) IgnoreMatchers() ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(c.Browser.Ignore))
	for _, pattern := range c.Browser.Ignore {
		if pattern == "" {
			return nil, serr.NewConfigError("empty ignore pattern", "browser.ignore", serr.InvalidConfig, nil)
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, serr.NewConfigError("invalid ignore pattern "+pattern, "browser.ignore", serr.InvalidConfig, err)
		}
		matchers = append(matchers, g)
	}
	return matchers, nil
}

// Palette is a set of lipgloss color strings
type Palette struct {
	Primary   string
	Directory string
	File      string
	Muted     string
	Success   string
	Warning   string
	Error     string
	Border    string
}

var themes = map[string]Palette{
	"default": {
		Primary:   "#7B61FF",
		Directory: "#81A1C1",
		File:      "#CCCCCC",
		Muted:     "#666666",
		Success:   "#73F59F",
		Warning:   "#EBCB8B",
		Error:     "#FF5F5F",
		Border:    "#626262",
	},
	"dark": {
		Primary:   "105",
		Directory: "33",
		File:      "252",
		Muted:     "241",
		Success:   "78",
		Warning:   "214",
		Error:     "160",
		Border:    "238",
	},
	"light": {
		Primary:   "135",
		Directory: "25",
		File:      "235",
		Muted:     "245",
		Success:   "28",
		Warning:   "130",
		Error:     "124",
		Border:    "250",
	},
	"monochrome": {
		Primary:   "255",
		Directory: "252",
		File:      "248",
		Muted:     "241",
		Success:   "255",
		Warning:   "250",
		Error:     "255",
		Border:    "245",
	},
}

// GetTheme returns a predefined palette by name.
// If the theme doesn't exist, returns the default palette.
func GetTheme(name string) Palette {
	if p, ok := themes[name]; ok {
		return p
	}
	return themes["default"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
