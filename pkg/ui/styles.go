package ui

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef is an adaptive colour in styles.yaml
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a named style in styles.yaml
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Width      int    `yaml:"width,omitempty"`
}

// StyleConfig is the styles.yaml document
type StyleConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

// Theme maps semantic names to styles bound to one lipgloss renderer
type Theme struct {
	renderer *lipgloss.Renderer
	styles   map[string]lipgloss.Style
}

// LoadTheme parses a style configuration for renderer
func LoadTheme(renderer *lipgloss.Renderer, data []byte) (*Theme, error) {
	var cfg StyleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	theme := &Theme{renderer: renderer, styles: make(map[string]lipgloss.Style, len(cfg.Styles))}
	for name, def := range cfg.Styles {
		style := renderer.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Italic {
			style = style.Italic(true)
		}
		if c, ok := colors[def.Foreground]; ok {
			style = style.Foreground(c)
		}
		if def.Width > 0 {
			style = style.Width(def.Width)
		}
		theme.styles[name] = style
	}
	return theme, nil
}

// DefaultTheme loads the embedded styles, falling back to unstyled text
func DefaultTheme(renderer *lipgloss.Renderer) *Theme {
	theme, err := LoadTheme(renderer, embeddedStyles)
	if err != nil {
		return &Theme{renderer: renderer, styles: map[string]lipgloss.Style{}}
	}
	return theme
}

// Style returns a named style, or a plain one when unknown
func (t *Theme) Style(name string) lipgloss.Style {
	if s, ok := t.styles[name]; ok {
		return s
	}
	return t.renderer.NewStyle()
}

// Render applies a named style to text
func (t *Theme) Render(name, text string) string {
	return t.Style(name).Render(text)
}
