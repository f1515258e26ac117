package render

import (
	"html"
	"strings"
)

// HTML renders the document as markup-safe HTML
func (d Document) HTML() string {
	var b strings.Builder
	writeHTML(&b, d)
	return b.String()
}

func writeHTML(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			b.WriteString(html.EscapeString(n.Text))
		case KindBreak:
			b.WriteString("<br>")
		case KindBold:
			wrapHTML(b, "<strong>", "</strong>", n.Children)
		case KindCode:
			wrapHTML(b, "<code>", "</code>", n.Children)
		case KindCodeBlock:
			wrapHTML(b, "<pre><code>", "</code></pre>", n.Children)
		case KindListItem:
			wrapHTML(b, "<li>", "</li>", n.Children)
		case KindList:
			wrapHTML(b, "<ul>", "</ul>", n.Children)
		}
	}
}

func wrapHTML(b *strings.Builder, open, close string, children []Node) {
	b.WriteString(open)
	writeHTML(b, children)
	b.WriteString(close)
}

// markdownEscaper escapes characters CommonMark would otherwise interpret
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"&", `\&`,
)

// hardBreak is a CommonMark hard line break. It renders as a new line whatever
// the renderer's newline handling.
const hardBreak = "  \n"

// Markdown renders the document as CommonMark for the terminal renderer. Text
// is escaped so that the renderer reproduces the document structure and never
// finds block syntax of its own in it.
func (d Document) Markdown() string {
	w := markdownWriter{lineStart: true}
	w.write(d)
	return strings.Trim(w.b.String(), " \n")
}

type markdownWriter struct {
	b         strings.Builder
	lineStart bool
}

func (w *markdownWriter) write(nodes []Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			if n.Text == "" {
				continue
			}
			text := n.Text
			if w.lineStart {
				w.b.WriteString(escapeLineStart(text))
			} else {
				w.b.WriteString(markdownEscaper.Replace(text))
			}
			w.lineStart = false
		case KindBreak:
			w.b.WriteString(hardBreak)
			w.lineStart = true
		case KindBold:
			if len(n.Children) == 0 {
				continue
			}
			w.b.WriteString("**")
			w.lineStart = false
			w.write(n.Children)
			w.b.WriteString("**")
		case KindCode:
			if code := plainText(n.Children); code != "" {
				writeCodeSpan(&w.b, code)
				w.lineStart = false
			}
		case KindCodeBlock:
			w.b.WriteString("\n```\n")
			w.b.WriteString(plainText(n.Children))
			w.b.WriteString("\n```\n")
			w.lineStart = true
		case KindListItem:
			w.b.WriteString("- ")
			w.lineStart = true
			w.write(n.Children)
		case KindList:
			w.b.WriteString("\n")
			for i, item := range n.Children {
				if i > 0 {
					w.b.WriteString("\n")
				}
				w.write([]Node{item})
			}
			w.b.WriteString("\n")
			w.lineStart = true
		}
	}
}

// escapeLineStart escapes text that opens a line. Leading blanks become
// no-break spaces so they cannot indent a code block, and a leading block
// marker (list bullet, ordered list number, setext underline, table pipe,
// tilde fence) is backslash-escaped.
func escapeLineStart(s string) string {
	var lead strings.Builder
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		lead.WriteString("\u00a0")
		i++
	}
	rest := s[i:]
	if rest == "" {
		return lead.String()
	}

	switch rest[0] {
	case '-', '+', '=', '|', '~':
		lead.WriteString(`\`)
	default:
		if n := orderedMarker(rest); n > 0 {
			lead.WriteString(markdownEscaper.Replace(rest[:n]))
			lead.WriteString(`\`)
			rest = rest[n:]
		}
	}
	lead.WriteString(markdownEscaper.Replace(rest))
	return lead.String()
}

// orderedMarker returns the length of the digit run when s opens with an
// ordered list marker such as "1." or "12)", or 0
func orderedMarker(s string) int {
	n := 0
	for n < len(s) && n < 9 && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 || n >= len(s) || (s[n] != '.' && s[n] != ')') {
		return 0
	}
	return n
}

// writeCodeSpan picks a fence longer than any backtick run in s
func writeCodeSpan(b *strings.Builder, s string) {
	if s == "" {
		return
	}
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	pad := ""
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		pad = " "
	}
	b.WriteString(fence + pad + s + pad + fence)
}

// PlainText returns the document text without any markup
func (d Document) PlainText() string {
	return plainText(d)
}

func plainText(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			b.WriteString(n.Text)
		case KindBreak:
			b.WriteString("\n")
		case KindList:
			for i, item := range n.Children {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString("- ")
				b.WriteString(plainText(item.Children))
			}
		case KindListItem:
			b.WriteString("- ")
			b.WriteString(plainText(n.Children))
		default:
			b.WriteString(plainText(n.Children))
		}
	}
	return b.String()
}
