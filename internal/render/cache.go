package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// rendererPool keeps idle glamour renderers per option set. A TermRenderer
// must not render from two goroutines at once, and the chat view renders every
// answer bubble at the same width, so a renderer is checked out per call.
type rendererPool struct {
	mu    sync.RWMutex
	pools map[Options]*sync.Pool
}

var globalPool = &rendererPool{
	pools: make(map[Options]*sync.Pool),
}

func (p *rendererPool) getPool(opts Options) *sync.Pool {
	p.mu.RLock()
	pool, ok := p.pools[opts]
	p.mu.RUnlock()
	if ok {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if pool, ok := p.pools[opts]; ok {
		return pool
	}
	pool = &sync.Pool{
		New: func() any {
			renderer, err := createRenderer(opts)
			if err != nil {
				return nil
			}
			return renderer
		},
	}
	p.pools[opts] = pool
	return pool
}

// get checks out a renderer. A style file that fails to load makes New return
// nil, so the error is surfaced by building one directly.
func (p *rendererPool) get(opts Options) (*glamour.TermRenderer, error) {
	if renderer, ok := p.getPool(opts).Get().(*glamour.TermRenderer); ok {
		return renderer, nil
	}
	return createRenderer(opts)
}

func (p *rendererPool) put(opts Options, renderer *glamour.TermRenderer) {
	if renderer == nil {
		return
	}
	p.getPool(opts).Put(renderer)
}

func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}

	if style, ok := glamourStyle(opts.Style); ok {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(style))
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStylePath(opts.Style))
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}

// ClearCache drops every idle renderer
func ClearCache() {
	globalPool.mu.Lock()
	globalPool.pools = make(map[Options]*sync.Pool)
	globalPool.mu.Unlock()
}

// CacheSize reports how many distinct option sets have a renderer pool
func CacheSize() int {
	globalPool.mu.RLock()
	defer globalPool.mu.RUnlock()
	return len(globalPool.pools)
}
