package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/regchat/internal/chat"
	apierrors "github.com/diogo/regchat/internal/errors"
	"github.com/diogo/regchat/internal/models"
	"github.com/diogo/regchat/internal/render"
	"github.com/diogo/regchat/internal/tui"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"), // Red
	lipgloss.Color("#feca57"), // Yellow
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#5f27cd"), // Purple
	lipgloss.Color("#00d2d3"), // Teal
	lipgloss.Color("#1dd1a1"), // Green
}

var (
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorWarning  = lipgloss.Color("#e0af68")
	colorPrimary  = lipgloss.Color("#7aa2f7")
)

// Styles matching the chat TUI
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)

	headingStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)
)

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	spinIdx := s.frame % len(chars)
	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 16
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + s.frame) % len(gradientColors)
		charIdx := (i + s.frame/2) % len(barChars)
		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)

	fmt.Fprintf(s.out, "\r\033[K%s %s %s %s", spinnerChar, bar.String(), msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner and shows error
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// askOptions holds the flags of the ask command
type askOptions struct {
	summary string
	raw     bool
	copy    bool
}

func newAskCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	var ask askOptions

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question",
		Long: `Ask one question and print the answer.

The question is taken from the arguments, or from stdin when no arguments are
given. When the backend wants to know how long the answer should be, --summary
answers for you; without it the choice is printed and nothing else happens.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if len(args) == 0 && !deps.IsTTY() {
				data, err := io.ReadAll(deps.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				query = string(data)
			}
			return runAsk(cmd.Context(), deps, opts, ask, query)
		},
	}

	cmd.Flags().StringVarP(&ask.summary, "summary", "s", "", "Answer length if asked: short or detailed")
	cmd.Flags().BoolVarP(&ask.raw, "raw", "r", false, "Print only the answer text, without styling")
	cmd.Flags().BoolVarP(&ask.copy, "copy", "c", false, "Copy the answer to the clipboard")
	return cmd
}

// runAsk runs one query cycle, resolving a preference prompt with --summary
func runAsk(ctx context.Context, deps *Dependencies, opts *rootOptions, ask askOptions, query string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return apierrors.ErrEmptyQuery
	}
	pref, err := models.ParsePreference(ask.summary)
	if err != nil {
		return err
	}

	a, err := deps.newApp(opts)
	if err != nil {
		return err
	}
	defer a.close()

	decorated := !ask.raw && deps.IsTTY()
	session := chat.NewSession(a.client,
		chat.WithLogger(a.logger),
		chat.WithTimeout(a.cfg.RequestTimeout()),
	)

	outcome, err := awaitCycle(deps, decorated, "Looking up regulations", func() (<-chan chat.Outcome, error) {
		return session.Submit(ctx, query, models.PreferenceNone)
	})
	if err != nil {
		return err
	}

	if outcome.State == chat.StateAwaitingPreference {
		if !pref.IsChoice() {
			printPreferencePrompt(deps, session, outcome)
			return nil
		}
		outcome, err = awaitCycle(deps, decorated, "Writing a "+string(pref)+" answer", func() (<-chan chat.Outcome, error) {
			return session.ResolvePreference(ctx, outcome.Entry, pref)
		})
		if err != nil {
			return err
		}
	}

	if outcome.State == chat.StateFailed {
		return fmt.Errorf("query failed: %w", outcome.Err)
	}

	entry, ok := session.Log().Get(outcome.Entry)
	if !ok {
		return apierrors.ErrInvalidResponse
	}

	if ask.copy || a.cfg.CopyToClipboard {
		copyAnswer(deps, entry.Document.PlainText(), decorated)
	}

	switch {
	case ask.raw:
		fmt.Fprint(deps.Stdout, entry.Message.Content)
		if !strings.HasSuffix(entry.Message.Content, "\n") {
			fmt.Fprintln(deps.Stdout)
		}
	case decorated:
		printDecorated(deps, a, entry)
	default:
		printPlain(deps, entry)
	}
	return nil
}

// awaitCycle starts a cycle and waits for it, animating on a terminal
func awaitCycle(deps *Dependencies, decorated bool, message string, start func() (<-chan chat.Outcome, error)) (chat.Outcome, error) {
	var spin *spinner
	if decorated {
		spin = newSpinner(deps.Stderr, message)
		spin.start()
	}

	ch, err := start()
	if err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		return chat.Outcome{}, err
	}

	outcome := <-ch
	if spin != nil {
		if outcome.State == chat.StateFailed {
			spin.stopWithError()
		} else {
			spin.stopWithSuccess("Done")
		}
	}
	return outcome, nil
}

// printPreferencePrompt shows the length choice and how to make it
func printPreferencePrompt(deps *Dependencies, session *chat.Session, outcome chat.Outcome) {
	out := deps.Stdout
	fmt.Fprintln(out, "How would you like your answer?")
	fmt.Fprintln(out, "Choose your preferred summary length:")
	fmt.Fprintf(out, "  %s   --summary %s\n", models.PreferenceShort.Label(), models.PreferenceShort)
	fmt.Fprintf(out, "  %s   --summary %s\n", models.PreferenceDetailed.Label(), models.PreferenceDetailed)

	if prompt, ok := session.Log().Get(outcome.Entry); ok && len(prompt.Preview) > 0 {
		fmt.Fprintln(out)
		fmt.Fprint(out, citationsText(prompt.Preview))
	}

	fmt.Fprintf(deps.Stderr, "\nHint: regchat ask --summary short %q\n", outcome.Query)
}

// copyAnswer copies text, reporting the result on a terminal
func copyAnswer(deps *Dependencies, text string, decorated bool) {
	err := deps.Clipboard(text)
	if !decorated {
		return
	}
	if err != nil {
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Render(
			fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
		)
		fmt.Fprintln(deps.Stderr, warn)
		return
	}
	fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
}

// citationsText lists referenced rules as plain lines
func citationsText(rules []models.RuleCitation) string {
	var b strings.Builder
	b.WriteString("📋 Referenced Regulations:\n")
	for _, r := range rules {
		fmt.Fprintf(&b, "  Rule %s - %s", r.RuleNumber, r.Title)
		if r.Category != "" {
			fmt.Fprintf(&b, " [%s]", r.Category)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// followUpsText lists suggested follow-ups as plain lines
func followUpsText(followUps []string) string {
	var b strings.Builder
	b.WriteString("💡 Suggested follow-ups:\n")
	for _, f := range followUps {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	return b.String()
}

// printPlain writes the answer as CommonMark for pipes and files
func printPlain(deps *Dependencies, entry chat.Entry) {
	out := deps.Stdout
	fmt.Fprintln(out, entry.Document.Markdown())
	if entry.Message.HasCitations() {
		fmt.Fprintln(out)
		fmt.Fprint(out, citationsText(entry.Message.CitedRules))
	}
	if entry.Message.HasFollowUps() {
		fmt.Fprintln(out)
		fmt.Fprint(out, followUpsText(entry.Message.FollowUps))
	}
}

// printDecorated writes the answer the way the chat shows it
func printDecorated(deps *Dependencies, a *app, entry chat.Entry) {
	bubbleWidth := deps.TermWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	fmt.Fprintln(deps.Stdout, assistantLabelStyle.Render("✦ Assistant"))

	rendered, err := render.Terminal(entry.Document, render.OptionsFromConfigWithWidth(a.cfg, contentWidth))
	if err != nil {
		rendered = entry.Document.PlainText()
	}
	// Trim trailing newlines from glamour
	rendered = strings.TrimRight(rendered, "\n")
	if entry.Message.HasCitations() {
		rendered += "\n\n" + strings.TrimRight(citationsText(entry.Message.CitedRules), "\n")
	}
	fmt.Fprintln(deps.Stdout, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))

	if entry.Message.HasFollowUps() {
		lines := strings.Split(strings.TrimRight(followUpsText(entry.Message.FollowUps), "\n"), "\n")
		fmt.Fprintln(deps.Stdout, headingStyle.Render(lines[0]))
		for _, l := range lines[1:] {
			fmt.Fprintln(deps.Stdout, dimStyle.Render(l))
		}
	}
}

// formatErrorMessage prefixes err with what was being done and styles it the
// way the chat shows errors
func formatErrorMessage(err error, action string) string {
	if err == nil {
		return ""
	}
	return tui.FormatError(fmt.Errorf("%s: %w", action, err))
}
