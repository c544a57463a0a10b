package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/skimread/internal/config/loader"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "SKIMREAD_"

// Config is the complete skimread configuration.
type Config struct {
	Log   LogConfig   `toml:"log" yaml:"log"`
	Keys  Bindings    `toml:"keys" yaml:"keys"`
	Theme ThemeConfig `toml:"theme" yaml:"theme"`
	View  ViewConfig  `toml:"view" yaml:"view"`

	// Path is the file the configuration was read from, empty when only
	// defaults and environment were used.
	Path string `toml:"-" yaml:"-"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is the minimum level written ("debug", "info", "warn", "error").
	Level string `toml:"level" yaml:"level"`

	// File is the log destination. Logging is disabled when empty because
	// the terminal belongs to the reader.
	File string `toml:"file" yaml:"file"`
}

// ThemeConfig holds hex colors ("#rrggbb"). An empty value leaves the
// terminal's own color in place.
type ThemeConfig struct {
	Foreground        string `toml:"foreground" yaml:"foreground"`
	Background        string `toml:"background" yaml:"background"`
	MatchForeground   string `toml:"matchForeground" yaml:"matchForeground"`
	MatchBackground   string `toml:"matchBackground" yaml:"matchBackground"`
	CurrentForeground string `toml:"currentForeground" yaml:"currentForeground"`
	CurrentBackground string `toml:"currentBackground" yaml:"currentBackground"`
	StatusForeground  string `toml:"statusForeground" yaml:"statusForeground"`
	StatusBackground  string `toml:"statusBackground" yaml:"statusBackground"`
}

// ViewConfig controls what the reader shows.
type ViewConfig struct {
	// StatusLine reserves the last row for the page counter and messages.
	StatusLine bool `toml:"statusLine" yaml:"statusLine"`

	// Bionic draws the lead-in of every word in bold.
	Bionic bool `toml:"bionic" yaml:"bionic"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := decode(defaultConfig())
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	keys := make(map[string]any, len(defaultBindings))
	for cmd, list := range defaultBindings {
		items := make([]any, len(list))
		for i, k := range list {
			items[i] = k
		}
		keys[string(cmd)] = items
	}

	return map[string]any{
		"log": map[string]any{
			"level": "info",
			"file":  "",
		},
		"keys": keys,
		"theme": map[string]any{
			"foreground":        "#00cd00",
			"background":        "#000000",
			"matchForeground":   "#0000ee",
			"matchBackground":   "#ffffff",
			"currentForeground": "#7f7f7f",
			"currentBackground": "#ffffff",
			"statusForeground":  "#ffffff",
			"statusBackground":  "#00008b",
		},
		"view": map[string]any{
			"statusLine": true,
			"bionic":     true,
		},
	}
}

// DefaultPath returns the configuration file used when none is given:
// $SKIMREAD_CONFIG, else config.toml in the user configuration directory.
func DefaultPath() string {
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p
	}
	return filepath.Join(defaultUserConfigDir(), "config.toml")
}

func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "skimread")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "skimread")
}

// Load reads the file at path (TOML or YAML by extension) over the
// defaults, applies SKIMREAD_* environment variables and validates the
// result. A missing file is not an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	return LoadFrom(loader.DefaultFS(), path, os.Environ())
}

// LoadFrom is Load with an explicit file system and environment.
func LoadFrom(fsys loader.FileSystem, path string, environ []string) (*Config, error) {
	merged := defaultConfig()

	if path != "" {
		l, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		fileData, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, fileData)
	}

	envData, err := loader.NewEnvLoaderFrom(EnvPrefix, environ).Load()
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	merged = loader.DeepMerge(merged, envData)

	cfg, err := decode(merged)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", displayPath(path), err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func displayPath(path string) string {
	if path == "" {
		return "configuration"
	}
	return path
}

// decode turns a merged settings map into a Config by round-tripping it
// through TOML, which gives the struct tags a single source of truth.
func decode(data map[string]any) (*Config, error) {
	normalizeKeys(data)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.NewDecoder(&buf).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalizeKeys lets a binding be written as a single key
// (SKIMREAD_KEYS_QUIT=esc, quit: 1) as well as a list.
func normalizeKeys(data map[string]any) {
	keys, ok := data["keys"].(map[string]any)
	if !ok {
		return
	}
	for cmd, v := range keys {
		switch v := v.(type) {
		case []any:
			for i, item := range v {
				v[i] = keyString(item)
			}
		case nil:
			keys[cmd] = []any{}
		default:
			keys[cmd] = []any{keyString(v)}
		}
	}
}

func keyString(v any) any {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// Validate checks the configuration, returning ValidationErrors listing
// every problem found.
func (c *Config) Validate() error {
	var errs ValidationErrors

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Path: "log.level", Value: c.Log.Level, Err: ErrInvalidLevel})
	}

	for _, f := range c.Theme.fields() {
		if f.value == "" {
			continue
		}
		if !validColor(f.value) {
			errs = append(errs, &ValidationError{Path: "theme." + f.name, Value: f.value, Err: ErrInvalidColor})
		}
	}

	if _, err := c.Keys.compile(); err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			errs = append(errs, verrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type themeField struct {
	name  string
	value string
}

func (t ThemeConfig) fields() []themeField {
	return []themeField{
		{"foreground", t.Foreground},
		{"background", t.Background},
		{"matchForeground", t.MatchForeground},
		{"matchBackground", t.MatchBackground},
		{"currentForeground", t.CurrentForeground},
		{"currentBackground", t.CurrentBackground},
		{"statusForeground", t.StatusForeground},
		{"statusBackground", t.StatusBackground},
	}
}

// validColor accepts "#rgb" and "#rrggbb".
func validColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	_, err := colorful.Hex(s)
	return err == nil
}
