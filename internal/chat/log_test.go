package chat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/regchat/internal/models"
)

func TestLog_AppendAssignsIncreasingIDs(t *testing.T) {
	log := NewLog()

	a := log.Append(UserEntry("a"))
	b := log.Append(TypingEntry())
	require.True(t, log.Remove(b))
	c := log.Append(TypingEntry())

	assert.Less(t, a, b)
	assert.Less(t, b, c, "removed IDs must not be reused")
	assert.Equal(t, 2, log.Len())
}

func TestLog_RemoveKeepsOrder(t *testing.T) {
	log := NewLog()
	first := log.Append(UserEntry("first"))
	typing := log.Append(TypingEntry())
	last := log.Append(AssistantEntry(models.Message{Content: "last"}))

	assert.True(t, log.Remove(typing))
	assert.False(t, log.Remove(typing), "second removal should report false")

	entries := log.Snapshot()
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0].ID)
	assert.Equal(t, last, entries[1].ID)
}

func TestLog_RevisionTracksMutations(t *testing.T) {
	log := NewLog()
	assert.Zero(t, log.Revision())

	id := log.Append(TypingEntry())
	assert.Equal(t, uint64(1), log.Revision())

	log.Remove(id)
	assert.Equal(t, uint64(2), log.Revision())

	log.Remove(id)
	assert.Equal(t, uint64(2), log.Revision(), "a no-op removal is not a mutation")
}

func TestLog_SnapshotIsACopy(t *testing.T) {
	log := NewLog()
	log.Append(UserEntry("original"))

	snap := log.Snapshot()
	snap[0].Message.Content = "changed"

	entry := log.Snapshot()[0]
	assert.Equal(t, "original", entry.Message.Content)
}

func TestLog_Get(t *testing.T) {
	log := NewLog()
	id := log.Append(PromptEntry("q", nil))

	entry, ok := log.Get(id)
	require.True(t, ok)
	assert.Equal(t, EntryPreferencePrompt, entry.Kind)
	assert.True(t, entry.IsTransient())

	_, ok = log.Get(id + 1)
	assert.False(t, ok)
}

func TestLog_LastAssistant(t *testing.T) {
	log := NewLog()
	_, ok := log.LastAssistant()
	assert.False(t, ok)

	log.Append(AssistantEntry(models.Message{Content: "older"}))
	log.Append(AssistantEntry(models.Message{Content: "newer"}))
	log.Append(UserEntry("question"))
	log.Append(TypingEntry())

	entry, ok := log.LastAssistant()
	require.True(t, ok)
	assert.Equal(t, "newer", entry.Message.Content)
}

func TestEntryConstructors(t *testing.T) {
	user := UserEntry("hi")
	assert.Equal(t, models.RoleUser, user.Message.Role)
	assert.Nil(t, user.Document)
	assert.False(t, user.IsTransient())

	reply := AssistantEntry(models.Message{Content: "**bold**"})
	assert.Equal(t, models.RoleAssistant, reply.Message.Role)
	assert.NotEmpty(t, reply.Document)

	assert.True(t, TypingEntry().IsTransient())
	assert.Equal(t, "unknown", EntryKind(42).String())
}

func TestLog_ConcurrentAccess(t *testing.T) {
	log := NewLog()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			id := log.Append(TypingEntry())
			log.Remove(id)
		}()
		go func() {
			defer wg.Done()
			_ = log.Snapshot()
			_ = log.Len()
		}()
	}
	wg.Wait()

	assert.Zero(t, log.Len())
	assert.Equal(t, uint64(40), log.Revision())
}
