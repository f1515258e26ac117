package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/regchat/internal/config"
	"github.com/diogo/regchat/internal/render"
)

// stubSave records saved configs instead of writing to disk
func stubSave(t *testing.T, err error) *[]config.Config {
	t.Helper()
	var saved []config.Config
	orig := saveConfig
	saveConfig = func(cfg config.Config) (string, error) {
		saved = append(saved, cfg)
		return "/tmp/regchat/config.toml", err
	}
	t.Cleanup(func() {
		saveConfig = orig
		render.SetTUITheme("tokyonight")
		UpdateTheme()
	})
	return &saved
}

func newTestConfigModel(t *testing.T, cfg config.Config) ConfigModel {
	t.Helper()
	updated, _ := NewConfigModel(cfg).Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(ConfigModel)
}

func pressConfig(m ConfigModel, keys ...tea.KeyMsg) (ConfigModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(k)
		m = updated.(ConfigModel)
	}
	return m, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestNewConfigModel(t *testing.T) {
	stubSave(t, nil)
	cfg := config.DefaultConfig()
	cfg.Markdown.Style = render.ThemeDracula
	cfg.TUITheme = "nord"

	m := NewConfigModel(cfg)

	if m.view != viewMain {
		t.Errorf("Expected view to be viewMain, got %v", m.view)
	}
	if m.cursor != 0 {
		t.Errorf("Expected cursor to be 0, got %d", m.cursor)
	}
	if got := render.ThemeNames()[m.themeCursor]; got != render.ThemeDracula {
		t.Errorf("theme cursor points at %s", got)
	}
	if got := render.TUIThemeNames()[m.tuiThemeCursor]; got != "nord" {
		t.Errorf("TUI theme cursor points at %s", got)
	}
	if render.GetTUITheme().Name != "nord" {
		t.Error("configured TUI theme should be applied")
	}
	if m.configPath == "" {
		t.Error("configPath should fall back to the default location")
	}
	if m.feedbackTimeout != 2*time.Second {
		t.Errorf("Expected feedbackTimeout to be 2s, got %v", m.feedbackTimeout)
	}
	if m.Init() != nil {
		t.Error("Init should return nil command")
	}
}

func TestConfigModel_View(t *testing.T) {
	stubSave(t, nil)
	if !strings.Contains(NewConfigModel(config.DefaultConfig()).View(), "Initializing") {
		t.Error("View should show initializing before the first resize")
	}

	cfg := config.DefaultConfig()
	cfg.BaseURL = "http://regs.test:5000"
	view := newTestConfigModel(t, cfg).View()
	for _, want := range []string{"Configuration", "http://regs.test:5000", "Verbose logging", "Request timeout", "120s"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestConfigModel_ToggleVerbose(t *testing.T) {
	saved := stubSave(t, nil)
	m := newTestConfigModel(t, config.DefaultConfig())

	m, cmd := pressConfig(m, keyEnter)

	if !m.Config().Verbose {
		t.Error("Verbose should be enabled")
	}
	if len(*saved) != 1 || !(*saved)[0].Verbose {
		t.Errorf("saved = %+v", *saved)
	}
	if !strings.Contains(m.feedback, "enabled") {
		t.Errorf("feedback = %q", m.feedback)
	}
	if cmd == nil {
		t.Error("expected a clearFeedback command")
	}
}

func TestConfigModel_CycleTimeout(t *testing.T) {
	stubSave(t, nil)
	m := newTestConfigModel(t, config.DefaultConfig())

	m, _ = pressConfig(m, keyDown, keyDown, keyEnter)
	if got := m.Config().RequestTimeoutSeconds; got != 300 {
		t.Errorf("RequestTimeoutSeconds = %d, want 300", got)
	}

	m, _ = pressConfig(m, keyEnter)
	if got := m.Config().RequestTimeoutSeconds; got != 0 {
		t.Errorf("RequestTimeoutSeconds = %d, want 0", got)
	}
	if !strings.Contains(m.feedback, "none") {
		t.Errorf("feedback = %q", m.feedback)
	}
}

func TestNextTimeout(t *testing.T) {
	tests := []struct{ in, want int }{
		{30, 60},
		{120, 300},
		{0, 30},
		{45, 30},
	}
	for _, tt := range tests {
		if got := nextTimeout(tt.in); got != tt.want {
			t.Errorf("nextTimeout(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestConfigModel_SelectMarkdownTheme(t *testing.T) {
	saved := stubSave(t, nil)
	m := newTestConfigModel(t, config.DefaultConfig())

	// Up from the first item wraps to Exit; two more reach the markdown theme
	m, _ = pressConfig(m, keyUp, keyUp, keyUp, keyEnter)
	if m.view != viewThemeSelect {
		t.Fatalf("view = %v, want theme select", m.view)
	}
	if !strings.Contains(m.View(), "Markdown theme") {
		t.Error("theme list not rendered")
	}

	m, _ = pressConfig(m, keyDown, keyEnter)
	want := render.ThemeNames()[1]
	if m.Config().Markdown.Style != want {
		t.Errorf("Markdown.Style = %s, want %s", m.Config().Markdown.Style, want)
	}
	if m.view != viewMain {
		t.Error("selecting a theme should return to the main menu")
	}
	if len(*saved) != 1 {
		t.Errorf("expected one save, got %d", len(*saved))
	}
}

func TestConfigModel_SelectTUITheme(t *testing.T) {
	stubSave(t, nil)
	m := newTestConfigModel(t, config.DefaultConfig())
	m.cursor = menuTUITheme

	m, _ = pressConfig(m, keyEnter)
	if m.view != viewTUIThemeSelect {
		t.Fatalf("view = %v, want TUI theme select", m.view)
	}

	m, _ = pressConfig(m, keyDown, keyDown, keyEnter)
	want := render.TUIThemeNames()[2]
	if m.Config().TUITheme != want {
		t.Errorf("TUITheme = %s, want %s", m.Config().TUITheme, want)
	}
	if render.GetTUITheme().Name != want {
		t.Error("selected TUI theme should be applied immediately")
	}
}

func TestConfigModel_SaveError(t *testing.T) {
	saved := stubSave(t, errors.New("disk full"))
	m := newTestConfigModel(t, config.DefaultConfig())
	m.cursor = menuCopyToClipboard

	m, _ = pressConfig(m, keyEnter)

	if !strings.HasPrefix(m.feedback, "Error:") {
		t.Errorf("feedback = %q", m.feedback)
	}
	if len(*saved) != 1 {
		t.Error("save should have been attempted")
	}
}

func TestConfigModel_EscNavigation(t *testing.T) {
	stubSave(t, nil)
	m := newTestConfigModel(t, config.DefaultConfig())
	m.view = viewThemeSelect

	m, cmd := pressConfig(m, keyEsc)
	if m.view != viewMain {
		t.Error("Esc should return to the main menu")
	}
	if isQuit(cmd) {
		t.Error("Esc from a sub view must not quit")
	}

	_, cmd = pressConfig(m, keyEsc)
	if !isQuit(cmd) {
		t.Error("Esc from the main menu should quit")
	}
}

func TestConfigModel_ExitItem(t *testing.T) {
	stubSave(t, nil)
	m := newTestConfigModel(t, config.DefaultConfig())
	m.cursor = menuExit

	if _, cmd := pressConfig(m, keyEnter); !isQuit(cmd) {
		t.Error("Exit should quit")
	}
}

func TestConfigModel_FeedbackClears(t *testing.T) {
	stubSave(t, nil)
	m := newTestConfigModel(t, config.DefaultConfig())
	m.feedback = "Test feedback"

	updated, cmd := m.Update(feedbackClearMsg{})
	if updated.(ConfigModel).feedback != "" {
		t.Error("Feedback should be cleared")
	}
	if cmd != nil {
		t.Error("feedbackClearMsg should return nil command")
	}
}
