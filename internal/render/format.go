package render

import (
	"regexp"
	"strings"
)

// Kind identifies a formatted node
type Kind int

const (
	KindText Kind = iota
	KindBold
	KindCode
	KindCodeBlock
	KindBreak
	KindListItem
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBold:
		return "bold"
	case KindCode:
		return "code"
	case KindCodeBlock:
		return "codeblock"
	case KindBreak:
		return "break"
	case KindListItem:
		return "listitem"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Node is one element of a formatted message. Text nodes carry Text; every
// other kind except Break carries Children.
type Node struct {
	Kind     Kind
	Text     string
	Children []Node
}

// Document is formatted message content, ready for any of the renderers
type Document []Node

// Text returns a text node
func Text(s string) Node { return Node{Kind: KindText, Text: s} }

// Bold returns a bold span around children
func Bold(children ...Node) Node { return Node{Kind: KindBold, Children: children} }

// Code returns an inline code span around children
func Code(children ...Node) Node { return Node{Kind: KindCode, Children: children} }

// CodeBlock returns a preformatted block around children
func CodeBlock(children ...Node) Node { return Node{Kind: KindCodeBlock, Children: children} }

// Break returns a line break
func Break() Node { return Node{Kind: KindBreak} }

// ListItem returns a list item around children
func ListItem(children ...Node) Node { return Node{Kind: KindListItem, Children: children} }

// List returns a list container around items
func List(items ...Node) Node { return Node{Kind: KindList, Children: items} }

const (
	fenceDelim  = "```"
	codeDelim   = "`"
	itemPrefix  = "- "
	lineFeed    = "\n"
	boldPattern = `\*\*(.*?)\*\*`
)

var boldRe = regexp.MustCompile(boldPattern)

// Format turns raw backend text into a Document. The stages run in a fixed
// order: bold, fenced blocks, inline code, line breaks, list items.
func Format(raw string) Document {
	if raw == "" {
		return nil
	}
	return Apply(Document{Text(raw)})
}

// Apply runs the formatting stages over an existing Document. Stages only
// rewrite Text nodes, so applying them to formatted output changes nothing.
func Apply(doc Document) Document {
	nodes := []Node(doc)
	nodes = applyBold(nodes)
	nodes = applyFences(nodes)
	nodes = applyInlineCode(nodes)
	nodes = applyBreaks(nodes)
	nodes = applyListItems(nodes)
	if len(nodes) == 0 {
		return nil
	}
	return Document(nodes)
}

// applyBold wraps **X** runs. The pattern never crosses a line.
func applyBold(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Kind != KindText {
			out = append(out, n)
			continue
		}
		last := 0
		for _, m := range boldRe.FindAllStringSubmatchIndex(n.Text, -1) {
			out = append(out, Text(n.Text[last:m[0]]))
			out = append(out, Bold(normalize([]Node{Text(n.Text[m[2]:m[3]])})...))
			last = m[1]
		}
		out = append(out, Text(n.Text[last:]))
	}
	return normalize(out)
}

// applyFences wraps ```X``` runs, which may span lines
func applyFences(nodes []Node) []Node {
	out := pairDelimited(nodes, fenceDelim, true, CodeBlock)
	return mapBold(out, applyFences)
}

// applyInlineCode wraps `X` runs left outside fenced blocks
func applyInlineCode(nodes []Node) []Node {
	out := pairDelimited(nodes, codeDelim, false, Code)
	return mapBold(out, applyInlineCode)
}

// applyBreaks turns every remaining newline into a Break, code blocks included
func applyBreaks(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			parts := strings.Split(n.Text, lineFeed)
			for i, part := range parts {
				if i > 0 {
					out = append(out, Break())
				}
				out = append(out, Text(part))
			}
		case KindBreak:
			out = append(out, n)
		default:
			n.Children = applyBreaks(n.Children)
			out = append(out, n)
		}
	}
	return normalize(out)
}

// applyListItems turns top-level lines starting with "- " into list items.
// The first run of consecutive items is wrapped in a List unless the
// document already has one.
func applyListItems(nodes []Node) []Node {
	lines := splitLines(nodes)

	wrapped := false
	for _, n := range nodes {
		if n.Kind == KindList {
			wrapped = true
			break
		}
	}

	items := make([]bool, len(lines))
	for i, line := range lines {
		if len(line) == 0 || line[0].Kind != KindText || !strings.HasPrefix(line[0].Text, itemPrefix) {
			continue
		}
		rest := append([]Node{Text(strings.TrimPrefix(line[0].Text, itemPrefix))}, line[1:]...)
		lines[i] = []Node{ListItem(normalize(rest)...)}
		items[i] = true
	}

	var out []Node
	for i := 0; i < len(lines); i++ {
		if i > 0 {
			out = append(out, Break())
		}
		if !items[i] || wrapped {
			out = append(out, lines[i]...)
			continue
		}

		run := []Node{lines[i][0]}
		for i+1 < len(lines) && items[i+1] {
			i++
			run = append(run, lines[i][0])
		}
		out = append(out, List(run...))
		wrapped = true
	}
	return out
}

// splitLines groups top-level nodes by Break
func splitLines(nodes []Node) [][]Node {
	lines := [][]Node{nil}
	for _, n := range nodes {
		if n.Kind == KindBreak {
			lines = append(lines, nil)
			continue
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], n)
	}
	if len(lines) == 1 && len(lines[0]) == 0 {
		return nil
	}
	return lines
}

// pairDelimited wraps each leftmost delim...delim run found across the Text
// nodes of a sequence. Other nodes are carried along inside or outside a run
// unchanged. Unless multiline is set, a run cannot cross a line.
func pairDelimited(nodes []Node, delim string, multiline bool, wrap func(...Node) Node) []Node {
	var out, inner []Node
	open := false

	abandon := func() {
		out = append(out, Text(delim))
		out = append(out, inner...)
		inner = nil
		open = false
	}

	for _, n := range nodes {
		if n.Kind != KindText {
			if open && !multiline && endsLine(n) {
				abandon()
			}
			if open {
				inner = append(inner, n)
			} else {
				out = append(out, n)
			}
			continue
		}

		s := n.Text
		for s != "" {
			i := strings.Index(s, delim)
			if !open {
				if i < 0 {
					out = append(out, Text(s))
					break
				}
				out = append(out, Text(s[:i]))
				s = s[i+len(delim):]
				open = true
				continue
			}

			if !multiline {
				if nl := strings.Index(s, lineFeed); nl >= 0 && (i < 0 || nl < i) {
					inner = append(inner, Text(s[:nl]))
					abandon()
					s = s[nl:]
					continue
				}
			}
			if i < 0 {
				inner = append(inner, Text(s))
				break
			}
			inner = append(inner, Text(s[:i]))
			out = append(out, wrap(normalize(inner)...))
			inner = nil
			open = false
			s = s[i+len(delim):]
		}
	}
	if open {
		abandon()
	}
	return normalize(out)
}

// endsLine reports whether n holds a line boundary
func endsLine(n Node) bool {
	switch n.Kind {
	case KindBreak:
		return true
	case KindText:
		return strings.Contains(n.Text, lineFeed)
	}
	for _, c := range n.Children {
		if endsLine(c) {
			return true
		}
	}
	return false
}

// mapBold applies stage to the children of top-level Bold nodes
func mapBold(nodes []Node, stage func([]Node) []Node) []Node {
	for i, n := range nodes {
		if n.Kind == KindBold && len(n.Children) > 0 {
			nodes[i].Children = stage(n.Children)
		}
	}
	return nodes
}

// normalize drops empty Text nodes and merges adjacent ones
func normalize(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Kind == KindText {
			if n.Text == "" {
				continue
			}
			if len(out) > 0 && out[len(out)-1].Kind == KindText {
				out[len(out)-1].Text += n.Text
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
