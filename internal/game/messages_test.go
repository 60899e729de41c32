package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageLogAppendIssuesDistinctIDs(t *testing.T) {
	l := NewMessageLog(10, discardLogger())
	a := l.Append("same", MsgInfo)
	b := l.Append("same", MsgInfo)

	assert.NotZero(t, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, l.Len())

	// Equal text does not make entries interchangeable.
	require.True(t, l.Remove(a))
	_, ok := l.Lookup(b)
	assert.True(t, ok)
	_, ok = l.Lookup(a)
	assert.False(t, ok)
}

func TestMessageLogRemoveKeepsOrder(t *testing.T) {
	l := NewMessageLog(10, discardLogger())
	l.Append("one", MsgInfo)
	two := l.Append("two", MsgInfo)
	l.Append("three", MsgInfo)

	require.True(t, l.Remove(two))
	assert.Equal(t, "one\nthree\n", l.Render())
}

func TestMessageLogReplaceReassignsIdentity(t *testing.T) {
	l := NewMessageLog(10, discardLogger())
	l.Append("first", MsgInfo)
	id := l.Append("old", MsgOption)
	l.Append("last", MsgInfo)

	fresh, ok := l.Replace(id, "new")
	require.True(t, ok)
	assert.NotEqual(t, id, fresh)
	assert.Equal(t, "first\nnew\nlast\n", l.Render(), "replace keeps the position")

	msg, ok := l.Lookup(fresh)
	require.True(t, ok)
	assert.Equal(t, MsgOption, msg.Priority)

	_, ok = l.Replace(id, "again")
	assert.False(t, ok, "old identity no longer resolves")
}

func TestMessageLogUnknownIDsAreNoOps(t *testing.T) {
	l := NewMessageLog(10, discardLogger())
	l.Append("only", MsgInfo)

	assert.False(t, l.Remove(42))
	assert.False(t, l.Remove(0))
	id, ok := l.Replace(42, "nope")
	assert.False(t, ok)
	assert.Zero(t, id)
	assert.Equal(t, "only\n", l.Render())
}

func TestMessageLogRenderShowsNewestVisible(t *testing.T) {
	l := NewMessageLog(2, discardLogger())
	l.Append("a", MsgInfo)
	l.Append("b", MsgInfo)
	l.Append("c", MsgInfo)

	assert.Equal(t, "b\nc\n", l.Render())
	assert.Equal(t, 3, l.Len())
	assert.Len(t, l.Recent(10), 3)
}

func TestMessageLogEmpty(t *testing.T) {
	l := NewMessageLog(5, nil)
	assert.Equal(t, "", l.Render())
	assert.Empty(t, l.Recent(3))
}

func TestMessageLogAppendThenRemoveRestoresLength(t *testing.T) {
	l := NewMessageLog(3, discardLogger())
	l.Append("a", MsgInfo)
	l.Append("b", MsgInfo)
	before := l.Len()

	id := l.Append("c", MsgWarning)
	require.True(t, l.Remove(id))
	assert.Equal(t, before, l.Len())

	id = l.Append("d", MsgInfo)
	fresh, ok := l.Replace(id, "e")
	require.True(t, ok)
	matches := 0
	for _, m := range l.Messages {
		if m.Text == "e" {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
	_, ok = l.Lookup(id)
	assert.False(t, ok)
	_, ok = l.Lookup(fresh)
	assert.True(t, ok)
}
