// Package render turns backend answer text into a typed Document and renders
// it as HTML, CommonMark or styled terminal output.
package render

// Options selects how answers are drawn in the terminal. The value is
// comparable and doubles as the renderer pool key.
type Options struct {
	// Width is the wrap column; the chat passes its bubble width
	Width int

	// Style is a theme name from ThemeNames or a path to a glamour JSON style
	Style string

	EnableEmoji bool

	// PreserveNewLines keeps soft line breaks in backend text
	PreserveNewLines bool

	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions is what regchat uses when the config has no markdown section
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            ThemeDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}

func (o Options) WithPreserveNewLines(enabled bool) Options {
	o.PreserveNewLines = enabled
	return o
}

func (o Options) WithTableWrap(enabled bool) Options {
	o.TableWrap = enabled
	return o
}

func (o Options) WithInlineTableLinks(enabled bool) Options {
	o.InlineTableLinks = enabled
	return o
}
