package render

import (
	"github.com/diogo/regchat/internal/config"
)

// OptionsFromConfig builds render options from the user configuration.
// Environment overrides are already folded into cfg by config.ApplyEnv.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()

	md := cfg.Markdown
	if md.Style != "" {
		opts = opts.WithStyle(md.Style)
	}
	return opts.
		WithEmoji(md.EnableEmoji).
		WithPreserveNewLines(md.PreserveNewLines).
		WithTableWrap(md.TableWrap).
		WithInlineTableLinks(md.InlineTableLinks)
}

// OptionsFromConfigWithWidth builds options from cfg with a specific width.
func OptionsFromConfigWithWidth(cfg config.Config, width int) Options {
	return OptionsFromConfig(cfg).WithWidth(width)
}
