package render

import (
	"strings"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != ThemeDark {
		t.Errorf("expected Style='dark', got %s", opts.Style)
	}
	if !opts.EnableEmoji {
		t.Error("expected EnableEmoji=true")
	}
	if !opts.PreserveNewLines {
		t.Error("expected PreserveNewLines=true")
	}
	if !opts.TableWrap {
		t.Error("expected TableWrap=true")
	}
	if opts.InlineTableLinks {
		t.Error("expected InlineTableLinks=false")
	}
}

func TestOptionsChaining(t *testing.T) {
	opts := DefaultOptions().
		WithWidth(100).
		WithStyle(ThemeLight).
		WithEmoji(false).
		WithPreserveNewLines(false).
		WithTableWrap(false).
		WithInlineTableLinks(true)

	if opts.Width != 100 {
		t.Errorf("expected Width=100, got %d", opts.Width)
	}
	if opts.Style != ThemeLight {
		t.Errorf("expected Style='light', got %s", opts.Style)
	}
	if opts.EnableEmoji || opts.PreserveNewLines || opts.TableWrap {
		t.Error("expected emoji, newline preservation and table wrap disabled")
	}
	if !opts.InlineTableLinks {
		t.Error("expected InlineTableLinks=true")
	}

	if DefaultOptions().WithWidth(120).Style != ThemeDark {
		t.Error("WithWidth should preserve the other options")
	}
}

func TestMarkdown(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		width    int
		contains string
	}{
		{"heading", "# Remote ID", 80, "Remote"},
		{"bold", "Registration is **required**", 80, "required"},
		{"code_block", "```\n14 CFR 107.12\n```", 80, "107.12"},
		{"list", "- label the drone\n- carry proof", 80, "label"},
		{"narrow_width", "# Operating over people at night", 30, "Operating"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := Markdown(tc.input, DefaultOptions().WithWidth(tc.width))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(output, tc.contains) {
				t.Errorf("output should contain %q, got: %s", tc.contains, output)
			}
		})
	}
}

func TestMarkdownEmoji(t *testing.T) {
	input := "Cleared for takeoff :rocket:"

	output, err := Markdown(input, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(output, ":rocket:") {
		t.Errorf("emoji should have been converted, got: %s", output)
	}

	output, err = Markdown(input, DefaultOptions().WithEmoji(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, ":rocket:") {
		t.Errorf("emoji should NOT have been converted, got: %s", output)
	}
}

func TestMarkdownInvalidStyle(t *testing.T) {
	opts := DefaultOptions().WithStyle("nonexistent_style_path")
	if _, err := Markdown("# Test", opts); err == nil {
		t.Error("expected error for invalid style path")
	}
}
