// Package commands provides CLI commands for regchat.
package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/regchat/internal/api"
	"github.com/diogo/regchat/internal/config"
	"github.com/diogo/regchat/internal/logging"
	"github.com/diogo/regchat/internal/models"
	"github.com/diogo/regchat/internal/render"
)

var (
	// Version info (set at build time)
	Version   = models.Version
	BuildTime = "unknown"
)

// rootOptions holds the persistent flags
type rootOptions struct {
	baseURL string
}

// app is what every command runs with
type app struct {
	deps   *Dependencies
	opts   *rootOptions
	cfg    config.Config
	logger *zap.Logger
	client api.ClientInterface
}

// close releases the client and flushes the logger
func (a *app) close() {
	if a.client != nil {
		a.client.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// effectiveConfig loads the configuration and applies the --base-url flag
func (d *Dependencies) effectiveConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := d.LoadConfig()
	if err != nil {
		fmt.Fprintf(d.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if opts.baseURL != "" {
		cfg.BaseURL = strings.TrimSpace(opts.baseURL)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := render.CheckStyle(cfg.Markdown.Style); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newApp builds the config, logger and client for one command run
func (d *Dependencies) newApp(opts *rootOptions) (*app, error) {
	cfg, err := d.effectiveConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, err := d.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(d.Stderr, "Warning: logging disabled: %v\n", err)
		logger = logging.Nop()
	}
	logger = logger.With(zap.String("base_url", cfg.BaseURL))

	client, err := d.NewClient(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &app{deps: d, opts: opts, cfg: cfg, logger: logger, client: client}, nil
}

// NewRootCmd creates the command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "regchat [question]",
		Short: "Chat with a drone regulation lookup service",
		Long: `regchat is a terminal client for a drone regulation lookup backend.
Ask questions in an interactive chat or one at a time from the shell.

Examples:
  regchat                                   Start interactive chat
  regchat "Do I need to register my drone?"  Ask a single question
  regchat ask --summary short "BVLOS rules?"
  regchat categories                        List rule categories
  regchat rules --category remote_id        Count rules in a category
  regchat config                            Show the effective configuration`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "regchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if len(args) > 0 {
				return runAsk(cmd.Context(), deps, opts, askOptions{}, strings.Join(args, " "))
			}
			return runChat(cmd.Context(), deps, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "",
		"Backend URL (overrides base_url and "+config.EnvBaseURL+")")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(newChatCmd(deps, opts))
	cmd.AddCommand(newAskCmd(deps, opts))
	cmd.AddCommand(newCategoriesCmd(deps, opts))
	cmd.AddCommand(newRulesCmd(deps, opts))
	cmd.AddCommand(NewConfigCmd(deps, opts))

	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)
	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}
