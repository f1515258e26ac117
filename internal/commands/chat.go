package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/diogo/regchat/internal/render"
	"github.com/diogo/regchat/internal/tui"
)

func newChatCmd(deps *Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat with the regulation lookup backend.

Enter sends, Alt+Enter adds a new line, Tab moves between the input, the
suggested follow-ups, the category list and a pending summary prompt.
Type 'exit', 'quit', or press Esc to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), deps, opts)
		},
	}
}

func runChat(ctx context.Context, deps *Dependencies, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := deps.newApp(opts)
	if err != nil {
		return err
	}
	defer a.close()

	if render.SetTUITheme(a.cfg.TUITheme) {
		tui.UpdateTheme()
	}

	a.logger.Info("chat started")
	return deps.TUI.RunChat(ctx, tui.ChatConfig{
		Client:   a.client,
		Logger:   a.logger,
		Timeout:  a.cfg.RequestTimeout(),
		Markdown: render.OptionsFromConfig(a.cfg),
	})
}
