package render

// Markdown renders CommonMark for the terminal with a pooled glamour renderer
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// Terminal renders a formatted document for terminal display
func Terminal(doc Document, opts Options) (string, error) {
	return Markdown(doc.Markdown(), opts)
}
