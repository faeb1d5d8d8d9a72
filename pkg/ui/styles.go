package ui

import (
	_ "embed"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/orgrun/pkg/errors"
	"github.com/arthur-debert/orgrun/pkg/types"
)

// Style names that are not event tags
const (
	StyleProgress = "progress"
	StyleTitle    = "title"
)

type colorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

type styleDef struct {
	Foreground string `yaml:"foreground,omitempty"`
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
}

type themeFile struct {
	Colors map[string]colorDef `yaml:"colors"`
	Styles map[string]styleDef `yaml:"styles"`
}

// Theme maps style names, including every event tag, to lipgloss styles
type Theme map[string]lipgloss.Style

//go:embed styles.yaml
var embeddedStyles []byte

// DefaultTheme returns the embedded theme.
func DefaultTheme() Theme {
	theme, err := LoadTheme(embeddedStyles)
	if err != nil {
		panic("embedded styles.yaml is invalid: " + err.Error())
	}
	return theme
}

// LoadTheme builds a theme from YAML. Foregrounds may name an entry of the
// colors table or be a literal color.
func LoadTheme(data []byte) (Theme, error) {
	var file themeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	theme := make(Theme, len(file.Styles))
	for name, def := range file.Styles {
		s := lipgloss.NewStyle().
			Bold(def.Bold).
			Italic(def.Italic).
			Underline(def.Underline)
		if def.Foreground != "" {
			if c, ok := file.Colors[def.Foreground]; ok {
				s = s.Foreground(lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark})
			} else {
				s = s.Foreground(lipgloss.Color(def.Foreground))
			}
		}
		theme[name] = s
	}
	return theme, nil
}

// Render styles s with the named style, leaving it unchanged for unknown names
func (t Theme) Render(name, s string) string {
	if st, ok := t[name]; ok {
		return st.Render(s)
	}
	return s
}

// Tag renders text with the style of an event tag
func (t Theme) Tag(tag types.Tag, s string) string {
	return t.Render(string(tag), s)
}
