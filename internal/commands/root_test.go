package commands

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/diogo/regchat/internal/api"
	"github.com/diogo/regchat/internal/config"
	"github.com/diogo/regchat/internal/models"
)

func TestRootCommand_Help(t *testing.T) {
	cmd := NewRootCmd(newTestEnv(t).deps)
	if cmd.Use != "regchat [question]" {
		t.Errorf("Expected use 'regchat [question]', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("descriptions should not be empty")
	}

	want := []string{"chat", "ask", "categories", "rules", "config"}
	for _, name := range want {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCommand_VersionFlag(t *testing.T) {
	for _, flag := range []string{"-v", "--version"} {
		t.Run(flag, func(t *testing.T) {
			env := newTestEnv(t)
			if err := env.run(flag); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if !strings.HasPrefix(env.stdout.String(), "regchat "+Version) {
				t.Errorf("stdout = %q", env.stdout.String())
			}
			if len(env.tui.chatCalls) != 0 {
				t.Error("--version must not start the chat")
			}
		})
	}
}

func TestRootCommand_NoArgsStartsChat(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.RequestTimeoutSeconds = 30

	if err := env.run(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(env.tui.chatCalls) != 1 {
		t.Fatalf("RunChat called %d times", len(env.tui.chatCalls))
	}
	got := env.tui.chatCalls[0]
	if got.Client != env.client {
		t.Error("chat should run against the injected client")
	}
	if got.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", got.Timeout)
	}
	if got.Markdown.Style != "notty" {
		t.Errorf("Markdown.Style = %q", got.Markdown.Style)
	}
	if !env.client.IsClosed() {
		t.Error("client should be closed when the chat ends")
	}
}

func TestRootCommand_ChatError(t *testing.T) {
	env := newTestEnv(t)
	env.tui.err = errors.New("no tty")

	if err := env.run("chat"); err == nil || err.Error() != "no tty" {
		t.Errorf("err = %v", err)
	}
}

func TestRootCommand_ArgsAsk(t *testing.T) {
	env := newTestEnv(t)
	env.client.QueryResponse = &models.QueryResponse{Response: "Register it first."}

	if err := env.run("Do", "I", "need", "a", "license?"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(env.client.Queries) != 1 || env.client.Queries[0] != "Do I need a license?" {
		t.Errorf("Queries = %v", env.client.Queries)
	}
	if !strings.Contains(env.stdout.String(), "Register it first.") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestRootCommand_BaseURLFlag(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("--base-url", " https://regs.example.org ", "chat"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if env.clientCfg.BaseURL != "https://regs.example.org" {
		t.Errorf("BaseURL = %q", env.clientCfg.BaseURL)
	}
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	env := newTestEnv(t)

	err := env.run("--base-url", "localhost:5000", "chat")
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("err = %v", err)
	}
	if len(env.tui.chatCalls) != 0 {
		t.Error("chat must not start with an invalid configuration")
	}
}

func TestRootCommand_UnknownMarkdownStyle(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Markdown.Style = "drakula"

	err := env.run("chat")
	if err == nil || !strings.Contains(err.Error(), `markdown style "drakula"`) {
		t.Errorf("err = %v", err)
	}
	if len(env.tui.chatCalls) != 0 {
		t.Error("chat must not start with an unknown markdown style")
	}
}

func TestRootCommand_ConfigLoadWarning(t *testing.T) {
	env := newTestEnv(t)
	env.deps.LoadConfig = func() (config.Config, error) {
		return config.DefaultConfig(), errors.New("failed to parse config file")
	}

	if err := env.run("chat"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(env.stderr.String(), "Warning: failed to parse config file") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestRootCommand_LoggerFallback(t *testing.T) {
	env := newTestEnv(t)
	env.deps.NewLogger = func(config.Config) (*zap.Logger, error) {
		return nil, errors.New("permission denied")
	}

	if err := env.run("chat"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(env.stderr.String(), "logging disabled") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
	if env.tui.chatCalls[0].Logger == nil {
		t.Error("chat should still get a logger")
	}
}

func TestRootCommand_ClientError(t *testing.T) {
	env := newTestEnv(t)
	env.deps.NewClient = func(config.Config, *zap.Logger) (api.ClientInterface, error) {
		return nil, errors.New("failed to create client")
	}

	if err := env.run("categories"); err == nil {
		t.Error("expected an error")
	}
}
