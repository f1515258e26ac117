package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diogo/regchat/internal/api"
	"github.com/diogo/regchat/internal/config"
	"github.com/diogo/regchat/internal/logging"
	"github.com/diogo/regchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, cfg tui.ChatConfig) error
	RunConfig(cfg config.Config) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// LoadConfig returns the effective configuration (file plus environment)
	LoadConfig func() (config.Config, error)

	// LoadStoredConfig returns the configuration as stored on disk
	LoadStoredConfig func() (config.Config, error)

	// NewClient builds the backend client
	NewClient func(cfg config.Config, logger *zap.Logger) (api.ClientInterface, error)

	// NewLogger builds the structured logger
	NewLogger func(cfg config.Config) (*zap.Logger, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Clipboard copies text to the system clipboard
	Clipboard func(text string) error

	// IsTTY reports whether stdout is a terminal; TermWidth returns its width
	IsTTY     func() bool
	TermWidth func() int

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, cfg tui.ChatConfig) error {
	return tui.RunChat(ctx, cfg)
}

func (d *DefaultTUI) RunConfig(cfg config.Config) error {
	return tui.RunConfig(cfg)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		LoadConfig:       config.LoadConfig,
		LoadStoredConfig: config.LoadStoredConfig,
		NewClient:        newClient,
		NewLogger:        newLogger,
		TUI:              &DefaultTUI{},
		Clipboard:        clipboard.WriteAll,
		IsTTY:            isStdoutTTY,
		TermWidth:        getTerminalWidth,
		Stdin:            os.Stdin,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
	}
}

// newClient is the production client constructor
func newClient(cfg config.Config, logger *zap.Logger) (api.ClientInterface, error) {
	client, err := api.NewClient(cfg.BaseURL,
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// newLogger writes JSON logs to the configured file
func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{File: cfg.LogFile, Verbose: cfg.Verbose})
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
