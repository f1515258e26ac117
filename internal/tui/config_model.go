package tui

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/regchat/internal/config"
	"github.com/diogo/regchat/internal/render"
)

// configView represents the current view in the config menu
type configView int

const (
	viewMain           configView = iota
	viewThemeSelect               // Markdown theme
	viewTUIThemeSelect            // TUI color theme
)

// Menu item indices for main view
const (
	menuVerbose = iota
	menuCopyToClipboard
	menuTimeout
	menuTheme    // Markdown theme
	menuTUITheme // TUI color theme
	menuExit
	menuItemCount
)

// timeoutSteps are the request timeouts the menu cycles through, in seconds
var timeoutSteps = []int{30, 60, 120, 300, 0}

// saveConfig is replaced in tests
var saveConfig = config.SaveConfig

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel represents the config TUI state
type ConfigModel struct {
	config     config.Config
	configPath string

	// Navigation
	view           configView
	cursor         int
	themeCursor    int // Markdown theme cursor
	tuiThemeCursor int // TUI theme cursor

	// Feedback
	feedback        string
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates a config editor for cfg. cfg should come from
// config.LoadStoredConfig so environment overrides are not written back.
func NewConfigModel(cfg config.Config) ConfigModel {
	configPath := cfg.Source
	if configPath == "" {
		configPath, _ = config.GetTOMLConfigPath()
	}

	currentTheme := cfg.Markdown.Style
	if currentTheme == "" {
		currentTheme = render.ThemeDark
	}
	currentTUITheme := cfg.TUITheme
	if currentTUITheme == "" {
		currentTUITheme = "tokyonight"
	}

	// Apply the configured TUI theme at startup
	if render.SetTUITheme(currentTUITheme) {
		UpdateTheme()
	}

	return ConfigModel{
		config:          cfg,
		configPath:      configPath,
		view:            viewMain,
		themeCursor:     indexOf(render.ThemeNames(), currentTheme),
		tuiThemeCursor:  indexOf(render.TUIThemeNames(), currentTUITheme),
		feedbackTimeout: 2 * time.Second,
	}
}

// indexOf returns the position of s in list, or 0
func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return 0
}

// Config returns the configuration as edited so far
func (m ConfigModel) Config() config.Config {
	return m.config
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view != viewMain {
				m.view = viewMain
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			m.moveCursor(-1)

		case "down", "j":
			m.moveCursor(1)

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

// moveCursor moves the cursor of the current view, wrapping around
func (m *ConfigModel) moveCursor(delta int) {
	wrap := func(i, n int) int {
		return ((i+delta)%n + n) % n
	}
	switch m.view {
	case viewMain:
		m.cursor = wrap(m.cursor, menuItemCount)
	case viewThemeSelect:
		m.themeCursor = wrap(m.themeCursor, len(render.ThemeNames()))
	case viewTUIThemeSelect:
		m.tuiThemeCursor = wrap(m.tuiThemeCursor, len(render.TUIThemeNames()))
	}
}

// save persists the config and sets the feedback line
func (m *ConfigModel) save(success string) tea.Cmd {
	path, err := saveConfig(m.config)
	if err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
	} else {
		m.configPath = path
		m.feedback = success
	}
	return clearFeedback(m.feedbackTimeout)
}

// nextTimeout returns the step after current in timeoutSteps
func nextTimeout(current int) int {
	for i, s := range timeoutSteps {
		if s == current {
			return timeoutSteps[(i+1)%len(timeoutSteps)]
		}
	}
	return timeoutSteps[0]
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewMain:
		switch m.cursor {
		case menuVerbose:
			m.config.Verbose = !m.config.Verbose
			return m, m.save(fmt.Sprintf("Verbose logging %s", enabledWord(m.config.Verbose)))

		case menuCopyToClipboard:
			m.config.CopyToClipboard = !m.config.CopyToClipboard
			return m, m.save(fmt.Sprintf("Copy to clipboard %s", enabledWord(m.config.CopyToClipboard)))

		case menuTimeout:
			m.config.RequestTimeoutSeconds = nextTimeout(m.config.RequestTimeoutSeconds)
			return m, m.save(fmt.Sprintf("Request timeout set to %s", timeoutLabel(m.config.RequestTimeoutSeconds)))

		case menuTheme:
			m.view = viewThemeSelect
			return m, nil

		case menuTUITheme:
			m.view = viewTUIThemeSelect
			return m, nil

		case menuExit:
			return m, tea.Quit
		}

	case viewThemeSelect:
		m.config.Markdown.Style = render.ThemeNames()[m.themeCursor]
		m.view = viewMain
		return m, m.save(fmt.Sprintf("Markdown theme set to %s", m.config.Markdown.Style))

	case viewTUIThemeSelect:
		selected := render.TUIThemeNames()[m.tuiThemeCursor]
		m.config.TUITheme = selected

		// Apply the new TUI theme immediately
		render.SetTUITheme(selected)
		UpdateTheme()

		m.view = viewMain
		return m, m.save(fmt.Sprintf("TUI theme set to %s", selected))
	}

	return m, nil
}

func enabledWord(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

func timeoutLabel(seconds int) string {
	if seconds <= 0 {
		return "none"
	}
	return strconv.Itoa(seconds) + "s"
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	// HEADER
	header := configHeaderStyle.Width(contentWidth).Render(configTitleStyle.Render("✦ Configuration"))
	sections = append(sections, header)

	// PATHS PANEL
	pathsContent := lipgloss.JoinVertical(lipgloss.Left,
		configSectionTitleStyle.Render("📁 Paths"),
		fmt.Sprintf("   Config:  %s", configPathStyle.Render(m.configPath)),
		fmt.Sprintf("   Log:     %s", configPathStyle.Render(m.config.LogFile)),
		fmt.Sprintf("   Backend: %s", configValueStyle.Render(m.config.BaseURL)),
	)
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(pathsContent))

	// SETTINGS/MENU PANEL
	var settingsContent string
	switch m.view {
	case viewMain:
		settingsContent = m.renderMainMenu()
	case viewThemeSelect:
		settingsContent = m.renderThemeSelect()
	case viewTUIThemeSelect:
		settingsContent = m.renderTUIThemeSelect()
	}
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(settingsContent))

	// FEEDBACK MESSAGE
	if m.feedback != "" {
		sections = append(sections, configFeedbackStyle.Render("✓ "+m.feedback))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// menuLine renders one selectable line
func menuLine(selected bool, text string) string {
	if selected {
		return configCursorStyle.Render("▸ ") + configMenuSelectedStyle.Render(text)
	}
	return configMenuItemStyle.Render(text)
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu() string {
	items := []struct {
		label string
		value string
	}{
		{"Verbose logging", m.renderBoolValue(m.config.Verbose)},
		{"Copy answers to clipboard", m.renderBoolValue(m.config.CopyToClipboard)},
		{"Request timeout", configValueStyle.Render(timeoutLabel(m.config.RequestTimeoutSeconds))},
		{"Markdown theme", configValueStyle.Render(m.config.Markdown.Style)},
		{"TUI theme", configValueStyle.Render(m.config.TUITheme)},
		{"Exit", ""},
	}

	lines := []string{configSectionTitleStyle.Render("⚙ Settings"), ""}
	for i, item := range items {
		line := menuLine(i == m.cursor, item.label)
		if item.value != "" {
			line += "  " + item.value
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderThemeSelect renders the markdown theme picker
func (m ConfigModel) renderThemeSelect() string {
	lines := []string{configSectionTitleStyle.Render("🎨 Markdown theme"), ""}
	for i, theme := range render.AvailableThemes() {
		line := menuLine(i == m.themeCursor, theme.Name)
		line += "  " + configValueStyle.Render(theme.Description)
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderTUIThemeSelect renders the TUI color theme picker
func (m ConfigModel) renderTUIThemeSelect() string {
	lines := []string{configSectionTitleStyle.Render("🖌 TUI theme"), ""}
	for i, theme := range render.AvailableTUIThemes() {
		line := menuLine(i == m.tuiThemeCursor, theme.Name)
		line += "  " + configValueStyle.Render(theme.Description)
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderBoolValue renders an enabled/disabled value
func (m ConfigModel) renderBoolValue(on bool) string {
	if on {
		return configEnabledStyle.Render("● enabled")
	}
	return configDisabledStyle.Render("○ disabled")
}

// renderStatusBar renders the bottom status bar
func (m ConfigModel) renderStatusBar(width int) string {
	hints := "↑↓ Navigate  │  Enter Select  │  Esc Back"
	return configStatusBarStyle.Width(width).Render(hints)
}

// RunConfig starts the config TUI
func RunConfig(cfg config.Config) error {
	p := tea.NewProgram(NewConfigModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
