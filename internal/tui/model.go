package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/regchat/internal/api"
	"github.com/diogo/regchat/internal/catalog"
	"github.com/diogo/regchat/internal/chat"
	apierrors "github.com/diogo/regchat/internal/errors"
	"github.com/diogo/regchat/internal/logging"
	"github.com/diogo/regchat/internal/models"
	"github.com/diogo/regchat/internal/render"
)

// sidebarWidth is the outer width of the categories panel
const sidebarWidth = 30

// writeClipboard is replaced in tests
var writeClipboard = clipboard.WriteAll

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	outcomeMsg       chat.Outcome
	catalogLoadedMsg catalog.Snapshot
	clipboardMsg     struct {
		err error
	}
)

// focusArea is the part of the screen receiving keys
type focusArea int

const (
	focusInput focusArea = iota
	focusFollowUps
	focusSidebar
	focusPrompt
)

func (f focusArea) String() string {
	switch f {
	case focusFollowUps:
		return "follow-ups"
	case focusSidebar:
		return "categories"
	case focusPrompt:
		return "summary"
	default:
		return "input"
	}
}

// ChatConfig holds what the chat screen needs to run
type ChatConfig struct {
	Client   api.ClientInterface
	Logger   *zap.Logger
	Timeout  time.Duration
	Markdown render.Options
}

// Model represents the TUI state
type Model struct {
	ctx      context.Context
	client   api.ClientInterface
	session  *chat.Session
	input    *chat.Buffer
	logger   *zap.Logger
	markdown render.Options

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	catalog        catalog.Snapshot
	catalogLoaded  bool
	ready          bool
	err            error
	notice         string
	animationFrame int
	revision       uint64

	// answers holds glamour output per log entry; entries never change once appended
	answers map[chat.EntryID]renderedAnswer

	// Selection
	focus          focusArea
	cursor         int
	pickingExample bool
	exampleCursor  int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(ctx context.Context, cfg ChatConfig) Model {
	logger := logging.OrNop(cfg.Logger)

	ta := textarea.New()
	ta.Placeholder = "Ask about drone regulations..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	input := &chat.Buffer{}
	session := chat.NewSession(cfg.Client,
		chat.WithInput(input),
		chat.WithLogger(logger),
		chat.WithTimeout(cfg.Timeout),
	)

	markdown := cfg.Markdown
	if markdown.Style == "" {
		markdown = render.DefaultOptions()
	}

	return Model{
		ctx:      ctx,
		client:   cfg.Client,
		session:  session,
		input:    input,
		logger:   logger,
		markdown: markdown,
		textarea: ta,
		spinner:  s,
		answers:  make(map[chat.EntryID]renderedAnswer),
	}
}

// Init starts the catalog load alongside the cursor blink
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.loadCatalog(),
	)
}

// loadCatalog fetches the sidebar data once
func (m Model) loadCatalog() tea.Cmd {
	ctx, client, logger := m.ctx, m.client, m.logger
	return func() tea.Msg {
		return catalogLoadedMsg(catalog.Load(ctx, client, logger))
	}
}

// waitForOutcome delivers the settled cycle back to Update
func waitForOutcome(ch <-chan chat.Outcome) tea.Cmd {
	return func() tea.Msg {
		outcome, ok := <-ch
		if !ok {
			return nil
		}
		return outcomeMsg(outcome)
	}
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok && m.pickingExample {
		return m.updateExamplePicker(key)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case catalogLoadedMsg:
		m.catalog = catalog.Snapshot(msg)
		m.catalogLoaded = true

	case outcomeMsg:
		m.handleOutcome(chat.Outcome(msg))

	case clipboardMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.notice = "Copied answer to clipboard"
		}

	case spinner.TickMsg:
		if m.session.Busy() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.session.Busy() {
			m.animationFrame++
			m.updateViewport()
			cmds = append(cmds, animationTick())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.focus != focusInput {
				m.setFocus(focusInput)
				return m, nil
			}
			return m, tea.Quit

		case "tab":
			m.cycleFocus()
			return m, nil

		case "ctrl+k":
			m.setFocus(focusInput)
			return m, nil

		case "ctrl+e":
			m.pickingExample = true
			m.exampleCursor = 0
			return m, nil

		case "ctrl+y":
			return m, m.copyLastAnswer()
		}

		if m.focus != focusInput {
			return m.updateSelection(msg)
		}

		switch msg.String() {
		case "alt+enter":
			m.textarea.InsertString("\n")
			return m, nil

		case "enter":
			input := strings.TrimSpace(m.textarea.Value())
			if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
				return m, tea.Quit
			}
			return m.dispatch(chat.Send(m.textarea.Value()))
		}

		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.revision != m.session.Log().Revision() {
		m.updateViewport()
		m.viewport.GotoBottom()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// layout sizes the viewport and textarea for the current window
func (m *Model) layout() {
	headerHeight := 4 // Header panel with border
	inputHeight := 6  // Input panel with border
	statusHeight := 1 // Status bar
	padding := 2      // Extra spacing

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
	if vpHeight < 5 {
		vpHeight = 5
	}

	contentWidth := m.width - 4
	vpWidth := contentWidth - sidebarWidth
	if vpWidth < 30 {
		vpWidth = 30
	}

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 4)
	m.updateViewport()
}

// dispatch routes a command into the session and bridges the input buffer
// back into the textarea
func (m Model) dispatch(cmd chat.Command) (tea.Model, tea.Cmd) {
	m.input.SetText(m.textarea.Value())
	ch, err := m.session.Dispatch(m.ctx, cmd)
	if text := m.input.Text(); text != m.textarea.Value() {
		m.textarea.SetValue(text)
	}

	if err != nil {
		if !apierrors.IsValidationSkip(err) {
			m.err = err
		}
		m.logger.Debug("command not dispatched",
			zap.Stringer("command", cmd.Kind),
			zap.Error(err))
		return m, nil
	}

	m.err = nil
	m.notice = ""
	m.animationFrame = 0
	m.cursor = 0
	m.setFocus(focusInput)
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		waitForOutcome(ch),
		m.spinner.Tick,
		animationTick(),
	)
}

// handleOutcome applies the end of a query cycle
func (m *Model) handleOutcome(outcome chat.Outcome) {
	if m.input.TakeFocus() {
		m.setFocus(focusInput)
	}
	if outcome.State == chat.StateFailed {
		// The log already holds the apology; the detail only goes to the log file.
		m.logger.Debug("query cycle failed", zap.Error(outcome.Err))
	}
	m.updateViewport()
	m.viewport.GotoBottom()
}

// focusTargets lists the focus areas that currently have something to select
func (m Model) focusTargets() []focusArea {
	targets := []focusArea{focusInput}
	if len(m.followUps()) > 0 {
		targets = append(targets, focusFollowUps)
	}
	if len(m.catalog.Categories) > 0 {
		targets = append(targets, focusSidebar)
	}
	if _, ok := m.pendingPrompt(); ok {
		targets = append(targets, focusPrompt)
	}
	return targets
}

// cycleFocus moves focus to the next area with selectable items
func (m *Model) cycleFocus() {
	targets := m.focusTargets()
	next := targets[0]
	for i, t := range targets {
		if t == m.focus {
			next = targets[(i+1)%len(targets)]
			break
		}
	}
	m.setFocus(next)
}

func (m *Model) setFocus(f focusArea) {
	if m.focus != f {
		m.cursor = 0
	}
	m.focus = f
	if f == focusInput {
		m.textarea.Focus()
	} else {
		m.textarea.Blur()
	}
	if m.ready {
		m.updateViewport()
	}
}

// followUps returns the suggestions of the latest answer
func (m Model) followUps() []string {
	last, ok := m.session.Log().LastAssistant()
	if !ok {
		return nil
	}
	return last.Message.FollowUps
}

// pendingPrompt returns the most recent unanswered preference prompt
func (m Model) pendingPrompt() (chat.Entry, bool) {
	prompts := m.session.Log().PendingPrompts()
	if len(prompts) == 0 {
		return chat.Entry{}, false
	}
	return prompts[len(prompts)-1], true
}

// promptChoices are the options offered on a preference prompt, in order
var promptChoices = []models.Preference{models.PreferenceShort, models.PreferenceDetailed}

// updateSelection handles keys while a list has focus
func (m Model) updateSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.selectionCount()
	if count == 0 {
		m.setFocus(focusInput)
		return m, nil
	}

	switch msg.String() {
	case "up", "k", "left", "h":
		m.cursor--
		if m.cursor < 0 {
			m.cursor = count - 1
		}
		m.updateViewport()

	case "down", "j", "right", "l":
		m.cursor++
		if m.cursor >= count {
			m.cursor = 0
		}
		m.updateViewport()

	case "1", "2":
		if m.focus == focusPrompt {
			prompt, _ := m.pendingPrompt()
			choice := promptChoices[msg.String()[0]-'1']
			return m.dispatch(chat.PickPreference(prompt.ID, choice))
		}

	case "enter", " ":
		return m.selectCurrent()
	}

	return m, nil
}

// selectionCount returns how many items the focused list holds
func (m Model) selectionCount() int {
	switch m.focus {
	case focusFollowUps:
		return len(m.followUps())
	case focusSidebar:
		return len(m.catalog.Categories)
	case focusPrompt:
		if _, ok := m.pendingPrompt(); ok {
			return len(promptChoices)
		}
	}
	return 0
}

// selectCurrent dispatches the item under the cursor
func (m Model) selectCurrent() (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusFollowUps:
		followUps := m.followUps()
		if m.cursor < len(followUps) {
			return m.dispatch(chat.Command{Kind: chat.CommandPickFollowUp, Text: followUps[m.cursor]})
		}
	case focusSidebar:
		if m.cursor < len(m.catalog.Categories) {
			return m.dispatch(chat.Command{Kind: chat.CommandPickCategory, Text: m.catalog.Categories[m.cursor]})
		}
	case focusPrompt:
		if prompt, ok := m.pendingPrompt(); ok && m.cursor < len(promptChoices) {
			return m.dispatch(chat.PickPreference(prompt.ID, promptChoices[m.cursor]))
		}
	}
	return m, nil
}

// updateExamplePicker handles keys while the example picker is open
func (m Model) updateExamplePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "ctrl+e":
		m.pickingExample = false

	case "up", "k":
		m.exampleCursor--
		if m.exampleCursor < 0 {
			m.exampleCursor = len(models.ExampleQueries) - 1
		}

	case "down", "j":
		m.exampleCursor++
		if m.exampleCursor >= len(models.ExampleQueries) {
			m.exampleCursor = 0
		}

	case "enter":
		m.pickingExample = false
		return m.dispatch(chat.Command{
			Kind: chat.CommandPickExample,
			Text: models.ExampleQueries[m.exampleCursor],
		})
	}

	return m, nil
}

// copyLastAnswer copies the plain text of the latest answer
func (m Model) copyLastAnswer() tea.Cmd {
	last, ok := m.session.Log().LastAssistant()
	if !ok {
		return nil
	}
	text := last.Document.PlainText()
	return func() tea.Msg {
		return clipboardMsg{err: writeClipboard(text)}
	}
}

// RunChat starts the chat TUI and waits for any in-flight query before returning
func RunChat(ctx context.Context, cfg ChatConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewChatModel(ctx, cfg)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	cancel()
	m.session.Wait()
	return err
}
