package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour/styles"
)

// Markdown theme names accepted in configuration
const (
	ThemeDark       = "dark"
	ThemeLight      = "light"
	ThemeTokyoNight = "tokyonight"
	ThemeDracula    = "dracula"
	ThemePink       = "pink"
	ThemeNoTTY      = "notty"
	ThemeASCII      = "ascii"
	ThemeAuto       = "auto"
)

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
	glamour     string
}

var markdownThemes = []ThemeInfo{
	{Name: ThemeDark, Description: "Dark theme (default)", glamour: styles.DarkStyle},
	{Name: ThemeTokyoNight, Description: "Tokyo Night color scheme", glamour: styles.TokyoNightStyle},
	{Name: ThemeLight, Description: "Light theme for bright terminals", glamour: styles.LightStyle},
	{Name: ThemeDracula, Description: "Dracula color scheme", glamour: styles.DraculaStyle},
	{Name: ThemePink, Description: "Pink accents", glamour: styles.PinkStyle},
	{Name: ThemeAuto, Description: "Pick dark or light from the terminal background", glamour: styles.AutoStyle},
	{Name: ThemeNoTTY, Description: "Plain text (no styling)", glamour: styles.NoTTYStyle},
	{Name: ThemeASCII, Description: "ASCII-only output", glamour: styles.AsciiStyle},
}

// glamourStyle maps a theme name to glamour's standard style name.
// Anything else is treated as a path to a JSON style file.
func glamourStyle(name string) (string, bool) {
	for _, t := range markdownThemes {
		if t.Name == name || t.glamour == name {
			return t.glamour, true
		}
	}
	return "", false
}

// IsBuiltinStyle returns true if the style is a built-in style
func IsBuiltinStyle(style string) bool {
	_, ok := glamourStyle(style)
	return ok
}

// CheckStyle reports whether style can be rendered: empty (the default), a
// built-in theme, or a readable glamour JSON style file.
func CheckStyle(style string) error {
	if style == "" || IsBuiltinStyle(style) {
		return nil
	}
	if _, err := os.Stat(style); err != nil {
		return fmt.Errorf("markdown style %q is neither a theme (%s) nor a style file: %w",
			style, strings.Join(ThemeNames(), ", "), err)
	}
	return nil
}

// AvailableThemes returns a list of all available markdown themes
func AvailableThemes() []ThemeInfo {
	out := make([]ThemeInfo, len(markdownThemes))
	copy(out, markdownThemes)
	return out
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	names := make([]string, len(markdownThemes))
	for i, t := range markdownThemes {
		names[i] = t.Name
	}
	return names
}
