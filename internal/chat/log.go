package chat

import (
	"sync"

	"github.com/diogo/regchat/internal/models"
	"github.com/diogo/regchat/internal/render"
)

// EntryID identifies a log entry. IDs increase monotonically and are never reused.
type EntryID uint64

// EntryKind distinguishes conversation messages from transient artifacts
type EntryKind int

const (
	EntryMessage EntryKind = iota
	EntryTyping
	EntryPreferencePrompt
)

func (k EntryKind) String() string {
	switch k {
	case EntryMessage:
		return "message"
	case EntryTyping:
		return "typing"
	case EntryPreferencePrompt:
		return "preference_prompt"
	default:
		return "unknown"
	}
}

// Entry is one element of the conversation log
type Entry struct {
	ID   EntryID
	Kind EntryKind

	// Message and Document are set for EntryMessage. Document holds the
	// formatted content of assistant messages.
	Message  models.Message
	Document render.Document

	// Query and Preview are set for EntryPreferencePrompt
	Query   string
	Preview []models.RuleCitation
}

// IsTransient reports whether the entry stands for in-progress or pending state
func (e Entry) IsTransient() bool {
	return e.Kind == EntryTyping || e.Kind == EntryPreferencePrompt
}

// UserEntry builds a log entry for a user message
func UserEntry(content string) Entry {
	return Entry{
		Kind:    EntryMessage,
		Message: models.Message{Role: models.RoleUser, Content: content},
	}
}

// AssistantEntry builds a log entry for an assistant message, formatting its content
func AssistantEntry(msg models.Message) Entry {
	msg.Role = models.RoleAssistant
	return Entry{
		Kind:     EntryMessage,
		Message:  msg,
		Document: render.Format(msg.Content),
	}
}

// TypingEntry builds a typing indicator
func TypingEntry() Entry {
	return Entry{Kind: EntryTyping}
}

// PromptEntry builds a summary preference prompt for query
func PromptEntry(query string, preview []models.RuleCitation) Entry {
	return Entry{Kind: EntryPreferencePrompt, Query: query, Preview: preview}
}

// Log is the ordered conversation log. It is safe for concurrent use.
type Log struct {
	mu       sync.RWMutex
	entries  []Entry
	lastID   EntryID
	revision uint64
}

// NewLog creates an empty log
func NewLog() *Log {
	return &Log{}
}

// Append adds e at the end of the log and returns its assigned ID
func (l *Log) Append(e Entry) EntryID {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastID++
	e.ID = l.lastID
	l.entries = append(l.entries, e)
	l.revision++
	return e.ID
}

// Remove deletes the entry with id. It returns false if there is none.
func (l *Log) Remove(id EntryID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			l.revision++
			return true
		}
	}
	return false
}

// Get returns the entry with id
func (l *Log) Get(id EntryID) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Snapshot returns the entries in display order
func (l *Log) Snapshot() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Revision changes after every mutation
func (l *Log) Revision() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revision
}

// LastAssistant returns the most recent assistant message, if any
func (l *Log) LastAssistant() (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if e.Kind == EntryMessage && e.Message.Role == models.RoleAssistant {
			return e, true
		}
	}
	return Entry{}, false
}

// PendingPrompts returns the preference prompts still waiting for a choice
func (l *Log) PendingPrompts() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Entry
	for _, e := range l.entries {
		if e.Kind == EntryPreferencePrompt {
			out = append(out, e)
		}
	}
	return out
}
