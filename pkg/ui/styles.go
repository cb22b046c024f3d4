package ui

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Style names known to the renderers.
const (
	StyleComment = "Comment"
	StyleTarget  = "Target"
	StyleDeps    = "Deps"
	StyleRecipe  = "Recipe"
	StyleError   = "Error"
	StyleInfo    = "Info"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// ThemeConfig is the YAML form of a Theme.
type ThemeConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Theme maps style names to lipgloss styles.
type Theme map[string]lipgloss.Style

//go:embed styles.yaml
var embeddedStyles []byte

// DefaultTheme returns the embedded theme, or unstyled output if it
// cannot be parsed.
func DefaultTheme() Theme {
	theme, err := LoadTheme(embeddedStyles)
	if err != nil {
		return Theme{}
	}
	return theme
}

// LoadTheme parses a YAML theme.
func LoadTheme(data []byte) (Theme, error) {
	var cfg ThemeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse styles data: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	theme := make(Theme, len(cfg.Styles))
	for name, def := range cfg.Styles {
		theme[name] = buildStyle(def, colors)
	}
	return theme, nil
}

// Style returns the named style, or a plain one if it is not defined.
func (t Theme) Style(name string) lipgloss.Style {
	if s, ok := t[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	if def.Foreground != "" {
		if color, ok := colors[def.Foreground]; ok {
			style = style.Foreground(color)
		}
	}
	if def.Background != "" {
		if color, ok := colors[def.Background]; ok {
			style = style.Background(color)
		}
	}

	return style
}
