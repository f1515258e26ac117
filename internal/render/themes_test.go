package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsBuiltinStyle(t *testing.T) {
	tests := []struct {
		style string
		want  bool
	}{
		{ThemeDark, true},
		{ThemeLight, true},
		{ThemeTokyoNight, true},
		{"tokyo-night", true},
		{ThemeNoTTY, true},
		{"/home/user/style.json", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsBuiltinStyle(tt.style); got != tt.want {
			t.Errorf("IsBuiltinStyle(%q) = %v, want %v", tt.style, got, tt.want)
		}
	}
}

func TestCheckStyle(t *testing.T) {
	styleFile := filepath.Join(t.TempDir(), "style.json")
	if err := os.WriteFile(styleFile, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		style   string
		wantErr bool
	}{
		{"default", "", false},
		{"theme", ThemeDracula, false},
		{"glamour name", "tokyo-night", false},
		{"style file", styleFile, false},
		{"typo", "drakula", true},
		{"missing file", filepath.Join(t.TempDir(), "missing.json"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckStyle(tt.style)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckStyle(%q) = %v, wantErr %v", tt.style, err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), ThemeDark) {
				t.Errorf("error should list the themes: %v", err)
			}
		})
	}
}

func TestMarkdownWithEveryTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		t.Run(name, func(t *testing.T) {
			output, err := Markdown("**Night operations** need anti-collision lights", DefaultOptions().WithStyle(name))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(output, "operations") {
				t.Errorf("unexpected output: %s", output)
			}
		})
	}
}

func TestAvailableThemes(t *testing.T) {
	themes := AvailableThemes()
	if len(themes) != len(ThemeNames()) {
		t.Fatalf("AvailableThemes() and ThemeNames() disagree: %d vs %d", len(themes), len(ThemeNames()))
	}
	if themes[0].Name != ThemeDark {
		t.Errorf("first theme = %s, want dark", themes[0].Name)
	}
	for _, theme := range themes {
		if theme.Description == "" {
			t.Errorf("theme %s has no description", theme.Name)
		}
	}

	themes[0].Name = "changed"
	if AvailableThemes()[0].Name != ThemeDark {
		t.Error("AvailableThemes() should return a copy")
	}
}
