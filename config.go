package console

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMenuPollInterval = 10 * time.Millisecond
	DefaultQuickJumpWindow  = 5 * time.Second
	DefaultWriteDelay       = 10 * time.Millisecond
)

// Config holds the tunables of a Console.
type Config struct {
	HistoryCapacity     int           `yaml:"history_capacity" mapstructure:"history_capacity"`
	MenuPollInterval    time.Duration `yaml:"menu_poll_interval" mapstructure:"menu_poll_interval"`
	QuickJumpWindow     time.Duration `yaml:"quick_jump_window" mapstructure:"quick_jump_window"`
	WriteDelay          time.Duration `yaml:"write_delay" mapstructure:"write_delay"`
	Indent              string        `yaml:"indent" mapstructure:"indent"`
	Prompt              string        `yaml:"prompt,omitempty" mapstructure:"prompt"`
	Commands            []string      `yaml:"commands,omitempty" mapstructure:"commands"`
	CompleteFromHistory bool          `yaml:"complete_from_history" mapstructure:"complete_from_history"`
	Palette             PaletteConfig `yaml:"palette" mapstructure:"palette"`
}

// PaletteConfig names the color used for each role.
type PaletteConfig struct {
	Text       string `yaml:"text" mapstructure:"text"`
	Band       string `yaml:"band" mapstructure:"band"`
	Highlight  string `yaml:"highlight" mapstructure:"highlight"`
	Error      string `yaml:"error" mapstructure:"error"`
	Selection  string `yaml:"selection" mapstructure:"selection"`
	Background string `yaml:"background" mapstructure:"background"`
}

type Palette struct {
	Text       Color
	Band       Color
	Highlight  Color
	Error      Color
	Selection  Color
	Background Color
}

var DefaultPalette = Palette{
	Text:       ColorWhite,
	Band:       ColorCyan,
	Highlight:  ColorYellow,
	Error:      ColorRed,
	Selection:  ColorBlue,
	Background: ColorBlack,
}

func (p Palette) color(mode ColorMode) Color {
	switch mode {
	case ModeAltBand:
		return p.Band
	case ModeNestedHighlight:
		return p.Highlight
	case ModeError:
		return p.Error
	}
	return p.Text
}

func DefaultConfig() *Config {
	return &Config{
		HistoryCapacity:  DefaultHistoryCapacity,
		MenuPollInterval: DefaultMenuPollInterval,
		QuickJumpWindow:  DefaultQuickJumpWindow,
		WriteDelay:       DefaultWriteDelay,
		Indent:           " ",
		Palette: PaletteConfig{
			Text:       DefaultPalette.Text.String(),
			Band:       DefaultPalette.Band.String(),
			Highlight:  DefaultPalette.Highlight.String(),
			Error:      DefaultPalette.Error.String(),
			Selection:  DefaultPalette.Selection.String(),
			Background: DefaultPalette.Background.String(),
		},
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) Validate() error {
	if c.MenuPollInterval < 0 {
		return fmt.Errorf("menu_poll_interval must not be negative, got %s", c.MenuPollInterval)
	}
	if c.QuickJumpWindow < 0 {
		return fmt.Errorf("quick_jump_window must not be negative, got %s", c.QuickJumpWindow)
	}
	if c.WriteDelay < 0 {
		return fmt.Errorf("write_delay must not be negative, got %s", c.WriteDelay)
	}
	roles := []struct {
		name, value string
	}{
		{"text", c.Palette.Text},
		{"band", c.Palette.Band},
		{"highlight", c.Palette.Highlight},
		{"error", c.Palette.Error},
		{"selection", c.Palette.Selection},
		{"background", c.Palette.Background},
	}
	for _, role := range roles {
		if role.value == "" {
			continue
		}
		if _, ok := ParseColor(role.value); !ok {
			return fmt.Errorf("palette.%s: unknown color %q", role.name, role.value)
		}
	}
	return nil
}

// palette resolves color names, falling back to the default for empty or
// unknown names.
func (c *Config) palette() Palette {
	resolve := func(name string, fallback Color) Color {
		if color, ok := ParseColor(name); ok {
			return color
		}
		return fallback
	}
	return Palette{
		Text:       resolve(c.Palette.Text, DefaultPalette.Text),
		Band:       resolve(c.Palette.Band, DefaultPalette.Band),
		Highlight:  resolve(c.Palette.Highlight, DefaultPalette.Highlight),
		Error:      resolve(c.Palette.Error, DefaultPalette.Error),
		Selection:  resolve(c.Palette.Selection, DefaultPalette.Selection),
		Background: resolve(c.Palette.Background, DefaultPalette.Background),
	}
}

func (c *Config) pollInterval() time.Duration {
	if c.MenuPollInterval <= 0 {
		return DefaultMenuPollInterval
	}
	return c.MenuPollInterval
}

func (c *Config) quickJumpWindow() time.Duration {
	if c.QuickJumpWindow <= 0 {
		return DefaultQuickJumpWindow
	}
	return c.QuickJumpWindow
}
