package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/regchat/internal/catalog"
	"github.com/diogo/regchat/internal/chat"
	"github.com/diogo/regchat/internal/models"
	"github.com/diogo/regchat/internal/render"
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.pickingExample {
		return m.renderExamplePicker()
	}

	var sections []string
	contentWidth := m.width - 4

	// HEADER
	headerParts := []string{
		titleStyle.Render("✈ Drone Regulations"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render("Queries: "),
		statValueStyle.Render(strconv.Itoa(m.session.CompletedQueries())),
		hintStyle.Render("  •  "),
		subtitleStyle.Render("Rules: "),
		statValueStyle.Render(m.ruleCountLabel()),
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	header := headerStyle.Width(contentWidth).Render(headerContent)
	sections = append(sections, header)

	// MESSAGES AREA + SIDEBAR
	var messagesContent string
	if m.session.Log().Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}

	messagesPanel := messagesAreaStyle.
		Width(m.viewport.Width).
		Height(m.viewport.Height).
		Render(messagesContent)
	sidebar := m.renderSidebar(lipgloss.Height(messagesPanel))
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, messagesPanel, sidebar))

	// INPUT AREA
	label := inputLabelStyle.Render("You")
	if m.session.Busy() {
		label = lipgloss.JoinHorizontal(lipgloss.Center, label, m.spinner.View())
	}
	inputContent := lipgloss.JoinVertical(
		lipgloss.Left,
		label,
		m.textarea.View(),
	)
	inputPanel := inputPanelStyle.Width(contentWidth).Render(inputContent)
	sections = append(sections, inputPanel)

	// STATUS BAR
	sections = append(sections, m.renderStatusBar(contentWidth))

	// ERROR / NOTICE
	if m.err != nil {
		sections = append(sections, FormatError(m.err))
	} else if m.notice != "" {
		sections = append(sections, noticeStyle.Render("✓ "+m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// ruleCountLabel shows a placeholder until the catalog has loaded
func (m Model) ruleCountLabel() string {
	if !m.catalogLoaded {
		return "…"
	}
	return m.catalog.RuleCountLabel()
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	lines := []string{
		"",
		welcomeIconStyle.Width(width).Render("✈"),
		"",
		welcomeTitleStyle.Width(width).Render("Drone Regulation Assistant"),
		"",
		welcomeStyle.Width(width).Render("Ask anything about drone rules, or try an example (Ctrl+E):"),
		"",
	}
	for _, q := range models.ExampleQueries {
		lines = append(lines, welcomeStyle.Width(width).Render("• "+q))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)

	// Center vertically
	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderSidebar renders the categories panel
func (m Model) renderSidebar(height int) string {
	var b strings.Builder
	b.WriteString(sidebarTitleStyle.Render("📁 Categories"))
	b.WriteString("\n")

	switch {
	case !m.catalogLoaded:
		b.WriteString(hintStyle.Render("Loading..."))
	case m.catalog.CategoriesErr != nil:
		b.WriteString(hintStyle.Render(catalog.CategoriesUnavailable))
	case len(m.catalog.Categories) == 0:
		b.WriteString(hintStyle.Render("No categories"))
	default:
		for i, name := range m.catalog.CategoryNames() {
			if m.focus == focusSidebar && i == m.cursor {
				b.WriteString(sidebarSelectedStyle.Render("▸ " + name))
			} else {
				b.WriteString(sidebarItemStyle.Render(name))
			}
			b.WriteString("\n")
		}
	}

	style := sidebarStyle
	if m.focus == focusSidebar {
		style = sidebarFocusedStyle
	}
	// Border adds two rows
	inner := height - 2
	if inner < 1 {
		inner = 1
	}
	return style.Width(sidebarWidth - 2).Height(inner).Render(strings.TrimRight(b.String(), "\n"))
}

// renderLoadingAnimation renders a colorful animated typing indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	// Animated dots
	var dots strings.Builder
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dotColor := gradientColors[(frame+i)%len(gradientColors)]
		dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
	}
	for i := numDots; i < 3; i++ {
		dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Looking up regulations ")

	return fmt.Sprintf("%s%s%s", spin, text, dots.String())
}

// shortcut is one key hint in the status bar
type shortcut struct {
	key  string
	desc string
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []shortcut{
		{"Enter", "Send"},
		{"Tab", "Focus: " + m.focus.String()},
		{"Ctrl+E", "Examples"},
		{"Ctrl+Y", "Copy"},
		{"Esc", "Quit"},
	}
	if m.focus == focusPrompt {
		shortcuts[0] = shortcut{"1/2", "Short/Detailed"}
	} else if m.focus != focusInput {
		shortcuts[0] = shortcut{"Enter", "Ask"}
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content from the session log
func (m *Model) updateViewport() {
	log := m.session.Log()
	m.revision = log.Revision()
	if !m.ready {
		return
	}

	entries := log.Snapshot()
	bubbleWidth := m.viewport.Width - 6

	var lastAssistant chat.EntryID
	if last, ok := log.LastAssistant(); ok {
		lastAssistant = last.ID
	}
	var activePrompt chat.EntryID
	if prompt, ok := m.pendingPrompt(); ok {
		activePrompt = prompt.ID
	}

	var content strings.Builder
	for i, e := range entries {
		if i > 0 {
			content.WriteString("\n")
		}

		switch e.Kind {
		case chat.EntryTyping:
			label := assistantLabelStyle.Render("✦ Assistant")
			content.WriteString(label + "\n" + m.renderLoadingAnimation())

		case chat.EntryPreferencePrompt:
			content.WriteString(m.renderPrompt(e, bubbleWidth, e.ID == activePrompt))

		default:
			if e.Message.Role == models.RoleUser {
				label := userLabelStyle.Render("⬤ You")
				bubble := userBubbleStyle.Width(bubbleWidth).Render(e.Message.Content)
				content.WriteString(label + "\n" + bubble)
			} else {
				content.WriteString(m.renderAnswer(e, bubbleWidth, e.ID == lastAssistant))
			}
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// renderAnswer renders an assistant message with its citations and follow-ups
func (m Model) renderAnswer(e chat.Entry, width int, latest bool) string {
	var b strings.Builder
	b.WriteString(assistantLabelStyle.Render("✦ Assistant"))
	b.WriteString("\n")

	rendered := m.answerMarkdown(e, width)
	if e.Message.HasCitations() {
		rendered += "\n\n" + renderCitations(e.Message.CitedRules)
	}
	b.WriteString(assistantBubbleStyle.Width(width).Render(rendered))

	if e.Message.HasFollowUps() {
		b.WriteString("\n")
		b.WriteString(followUpHeaderStyle.Render("💡 Suggested follow-ups:"))
		for i, f := range e.Message.FollowUps {
			b.WriteString("\n")
			if latest && m.focus == focusFollowUps && i == m.cursor {
				b.WriteString(followUpSelectedStyle.Render("▸ " + f))
			} else {
				b.WriteString(followUpStyle.Render(f))
			}
		}
	}
	return b.String()
}

// renderedAnswer is the glamour output of one answer at a bubble width
type renderedAnswer struct {
	width int
	text  string
}

// answerMarkdown renders the answer body, reusing the last result while the
// bubble width stays the same
func (m Model) answerMarkdown(e chat.Entry, width int) string {
	if cached, ok := m.answers[e.ID]; ok && cached.width == width {
		return cached.text
	}

	rendered, err := render.Terminal(e.Document, m.markdown.WithWidth(width-4))
	if err != nil {
		m.logger.Debug("markdown render failed", zap.Uint64("entry", uint64(e.ID)), zap.Error(err))
		rendered = e.Document.PlainText()
	}
	// Trim trailing newlines from glamour
	rendered = strings.TrimRight(rendered, "\n")

	if m.answers != nil {
		m.answers[e.ID] = renderedAnswer{width: width, text: rendered}
	}
	return rendered
}

// renderCitations lists the regulations an answer referenced
func renderCitations(rules []models.RuleCitation) string {
	lines := []string{citationHeaderStyle.Render("📋 Referenced Regulations:")}
	for _, r := range rules {
		line := citationRuleStyle.Render("Rule "+r.RuleNumber) + " - " + r.Title
		if r.Category != "" {
			line += " " + citationCategoryStyle.Render(r.Category)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderPrompt renders a summary preference prompt with its two options
func (m Model) renderPrompt(e chat.Entry, width int, active bool) string {
	var options []string
	for i, choice := range promptChoices {
		label := fmt.Sprintf("%d %s", i+1, choice.Label())
		if active && m.focus == focusPrompt && i == m.cursor {
			options = append(options, promptSelectedStyle.Render(label))
		} else {
			options = append(options, promptOptionStyle.Render(label))
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("How would you like your answer?"),
		hintStyle.Render("Choose your preferred summary length:"),
		lipgloss.JoinHorizontal(lipgloss.Top, options...),
	)
	if !active {
		body = lipgloss.JoinVertical(lipgloss.Left, body, hintStyle.Render("(earlier question: "+e.Query+")"))
	} else if m.focus != focusPrompt {
		body = lipgloss.JoinVertical(lipgloss.Left, body, hintStyle.Render("Press Tab to choose"))
	}

	return assistantLabelStyle.Render("✦ Assistant") + "\n" + promptStyle.Width(width).Render(body)
}

// renderExamplePicker renders the example query overlay
func (m Model) renderExamplePicker() string {
	width := m.width - 8
	if width < 40 {
		width = 40
	}

	var content strings.Builder
	content.WriteString(configTitleStyle.Render("💬 Example questions"))
	content.WriteString("\n\n")

	for i, q := range models.ExampleQueries {
		if i == m.exampleCursor {
			content.WriteString(configCursorStyle.Render("▸ ") + configMenuSelectedStyle.Render(q))
		} else {
			content.WriteString(configMenuItemStyle.Render(q))
		}
		content.WriteString("\n")
	}
	content.WriteString("\n")

	shortcuts := []string{
		statusKeyStyle.Render("↑↓") + statusDescStyle.Render(" Navigate"),
		statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Ask"),
		statusKeyStyle.Render("Esc") + statusDescStyle.Render(" Cancel"),
	}
	content.WriteString(strings.Join(shortcuts, "  │  "))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2).
		Width(width)

	return boxStyle.Render(content.String())
}
