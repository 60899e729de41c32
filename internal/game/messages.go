package game

import (
	"log/slog"
	"strings"
)

// MsgPriority controls the color of a message in the console.
type MsgPriority uint8

const (
	MsgInfo     MsgPriority = iota // cyan
	MsgWarning                     // yellow
	MsgCritical                    // red
	MsgSuccess                     // green
	MsgOption                      // white
)

// EntryID addresses one live console entry. Zero is never issued.
type EntryID uint64

// Message is a single entry in the console.
type Message struct {
	ID       EntryID
	Text     string
	Priority MsgPriority
}

// MessageLog keeps every console entry and renders the most recent ones.
// Entries are addressed by a sequence number, so two entries with the same
// text stay distinguishable.
type MessageLog struct {
	Messages []Message
	visible  int
	nextID   EntryID
	logger   *slog.Logger
}

// NewMessageLog creates a log that renders the most recent visible entries.
func NewMessageLog(visible int, logger *slog.Logger) *MessageLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessageLog{
		visible: visible,
		logger:  logger,
	}
}

func (l *MessageLog) issue() EntryID {
	l.nextID++
	return l.nextID
}

// Append adds an entry and returns its identity.
func (l *MessageLog) Append(text string, priority MsgPriority) EntryID {
	id := l.issue()
	l.Messages = append(l.Messages, Message{ID: id, Text: text, Priority: priority})
	return id
}

// Remove deletes the entry with the given identity. An unknown identity is
// reported and leaves the log untouched.
func (l *MessageLog) Remove(id EntryID) bool {
	i := l.find(id)
	if i < 0 {
		l.logger.Warn("console entry not found", "op", "remove", "id", id)
		return false
	}
	l.Messages = append(l.Messages[:i], l.Messages[i+1:]...)
	return true
}

// Replace swaps an entry's text in place and reassigns its identity; the old
// identity stops resolving. An unknown identity is reported, leaves the log
// untouched and returns false.
func (l *MessageLog) Replace(id EntryID, text string) (EntryID, bool) {
	i := l.find(id)
	if i < 0 {
		l.logger.Warn("console entry not found", "op", "replace", "id", id)
		return 0, false
	}
	fresh := l.issue()
	l.Messages[i].ID = fresh
	l.Messages[i].Text = text
	return fresh, true
}

// Lookup returns the live entry with the given identity.
func (l *MessageLog) Lookup(id EntryID) (Message, bool) {
	i := l.find(id)
	if i < 0 {
		return Message{}, false
	}
	return l.Messages[i], true
}

// find scans newest first, since callers mostly touch recent entries.
func (l *MessageLog) find(id EntryID) int {
	if id == 0 {
		return -1
	}
	for i := len(l.Messages) - 1; i >= 0; i-- {
		if l.Messages[i].ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of live entries, rendered or not.
func (l *MessageLog) Len() int { return len(l.Messages) }

// Recent returns the last n messages (or fewer if the log is shorter).
func (l *MessageLog) Recent(n int) []Message {
	if n > len(l.Messages) {
		n = len(l.Messages)
	}
	return l.Messages[len(l.Messages)-n:]
}

// Render concatenates the visible entries in insertion order, one per line.
func (l *MessageLog) Render() string {
	var b strings.Builder
	for _, m := range l.Recent(l.visible) {
		b.WriteString(m.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
