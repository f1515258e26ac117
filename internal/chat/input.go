package chat

import "sync"

// InputSurface holds the text the user is composing. Focus may be called from
// the goroutine that settles a query cycle.
type InputSurface interface {
	SetText(text string)
	Clear()
	Focus()
}

type nopInput struct{}

func (nopInput) SetText(string) {}
func (nopInput) Clear()         {}
func (nopInput) Focus()         {}

// Buffer is an InputSurface safe for concurrent use. Focus requests are
// counted until taken.
type Buffer struct {
	mu      sync.Mutex
	text    string
	focuses int
}

// SetText replaces the pending text
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
}

// Clear empties the pending text
func (b *Buffer) Clear() {
	b.SetText("")
}

// Focus records a focus request
func (b *Buffer) Focus() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.focuses++
}

// Text returns the pending text
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// TakeFocus reports whether focus was requested since the last call
func (b *Buffer) TakeFocus() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	requested := b.focuses > 0
	b.focuses = 0
	return requested
}

// Focuses returns the number of focus requests not yet taken
func (b *Buffer) Focuses() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.focuses
}
