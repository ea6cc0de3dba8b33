package vterm

import (
	"fmt"
	"image/color"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the static terminal configuration: initial geometry,
// scrollback depth, colors, and selection behavior. The core never mutates
// it at runtime.
type Config struct {
	// Rows and Cols are the initial dimensions.
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`

	// Scrollback is the history ring depth in lines.
	Scrollback int `toml:"scrollback"`

	// TabInterval is the default tab stop spacing.
	TabInterval int `toml:"tab_interval"`

	// WordDelimiters is the character set that bounds word selection.
	WordDelimiters string `toml:"word_delimiters"`

	// CursorShape selects the default cursor style: "block", "underline",
	// or "bar"; prefix with "steady-" to disable blinking.
	CursorShape string `toml:"cursor_shape"`

	// BoxDrawing enables the geometric renderer hint for box-drawing and
	// block-element characters.
	BoxDrawing bool `toml:"box_drawing"`

	// Foreground, Background, and Cursor are "#RRGGBB" colors.
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Cursor     string `toml:"cursor"`

	// Palette overrides the 16 base colors as "#RRGGBB" strings. Missing
	// or malformed entries keep their defaults.
	Palette []string `toml:"palette"`
}

// DefaultConfig returns the built-in configuration: 24x80, 1000 lines of
// scrollback, tab stops every 8 columns.
func DefaultConfig() *Config {
	return &Config{
		Rows:           24,
		Cols:           80,
		Scrollback:     1000,
		TabInterval:    8,
		WordDelimiters: ` ,'"()[]{}`,
		CursorShape:    "block",
		BoxDrawing:     true,
		Foreground:     "#e5e5e5",
		Background:     "#000000",
		Cursor:         "#e5e5e5",
	}
}

// LoadConfig reads a TOML configuration file, filling unset values from the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("vterm: parse config %s: %w", path, err)
	}
	if cfg.Rows <= 0 {
		cfg.Rows = 24
	}
	if cfg.Cols <= 0 {
		cfg.Cols = 80
	}
	if cfg.Scrollback < 0 {
		cfg.Scrollback = 0
	}
	if cfg.TabInterval <= 0 {
		cfg.TabInterval = 8
	}
	return cfg, nil
}

// parseHexColor reads a "#RRGGBB" string.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	if c, ok := parseColorSpec(s, nil); ok {
		return c
	}
	return fallback
}

func (c *Config) foreground() color.RGBA {
	return parseHexColor(c.Foreground, color.RGBA{229, 229, 229, 255})
}

func (c *Config) background() color.RGBA {
	return parseHexColor(c.Background, color.RGBA{0, 0, 0, 255})
}

func (c *Config) cursorColor() color.RGBA {
	return parseHexColor(c.Cursor, color.RGBA{229, 229, 229, 255})
}

// baseColors resolves the 16 base palette entries.
func (c *Config) baseColors() [16]color.RGBA {
	base := DefaultBaseColors
	for i := 0; i < len(c.Palette) && i < 16; i++ {
		base[i] = parseHexColor(c.Palette[i], base[i])
	}
	return base
}

func (c *Config) cursorStyle() CursorStyle {
	switch c.CursorShape {
	case "underline":
		return CursorStyleBlinkingUnderline
	case "steady-underline":
		return CursorStyleSteadyUnderline
	case "bar":
		return CursorStyleBlinkingBar
	case "steady-bar":
		return CursorStyleSteadyBar
	case "steady-block":
		return CursorStyleSteadyBlock
	default:
		return CursorStyleBlinkingBlock
	}
}
