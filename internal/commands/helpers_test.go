package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/diogo/regchat/internal/api"
	"github.com/diogo/regchat/internal/config"
	"github.com/diogo/regchat/internal/logging"
	"github.com/diogo/regchat/internal/tui"
)

// fakeTUI records what the commands hand to the terminal UI
type fakeTUI struct {
	chatCalls   []tui.ChatConfig
	configCalls []config.Config
	err         error
}

func (f *fakeTUI) RunChat(ctx context.Context, cfg tui.ChatConfig) error {
	f.chatCalls = append(f.chatCalls, cfg)
	return f.err
}

func (f *fakeTUI) RunConfig(cfg config.Config) error {
	f.configCalls = append(f.configCalls, cfg)
	return f.err
}

// testEnv bundles injected dependencies and captured output
type testEnv struct {
	deps      *Dependencies
	client    *api.MockClient
	tui       *fakeTUI
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	cfg       config.Config
	clipboard []string
	tty       bool
	clientCfg config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		client: &api.MockClient{},
		tui:    &fakeTUI{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		cfg:    config.DefaultConfig(),
	}
	env.cfg.Markdown.Style = "notty"
	env.deps = &Dependencies{
		LoadConfig:       func() (config.Config, error) { return env.cfg, nil },
		LoadStoredConfig: func() (config.Config, error) { return env.cfg, nil },
		NewClient: func(cfg config.Config, logger *zap.Logger) (api.ClientInterface, error) {
			env.clientCfg = cfg
			return env.client, nil
		},
		NewLogger: func(config.Config) (*zap.Logger, error) { return logging.Nop(), nil },
		TUI:       env.tui,
		Clipboard: func(text string) error {
			env.clipboard = append(env.clipboard, text)
			return nil
		},
		IsTTY:     func() bool { return env.tty },
		TermWidth: func() int { return 100 },
		Stdin:     strings.NewReader(""),
		Stdout:    env.stdout,
		Stderr:    env.stderr,
	}
	return env
}

// run executes the command tree with args
func (e *testEnv) run(args ...string) error {
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}
