package game

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmtechsupport/techsupport/internal/world"
)

type fakeTask struct {
	name     string
	solved   bool
	busy     func()
	restored int
	released int
}

func (t *fakeTask) Name() string { return t.name }
func (t *fakeTask) IsSolved() bool { return t.solved }
func (t *fakeTask) DisableInteraction(busy func()) { t.busy = busy }
func (t *fakeTask) RestoreInteraction() { t.busy = nil; t.restored++ }
func (t *fakeTask) MarkReleased() { t.released++ }
func (t *fakeTask) poke() { t.busy() }

type fakeHost struct {
	serial    string
	penalties int
	feedback  []Feedback
}

func (h *fakeHost) SerialNumber() string { return h.serial }
func (h *fakeHost) SignalPenalty() { h.penalties++ }
func (h *fakeHost) PlayFeedback(kind Feedback, location string) {
	h.feedback = append(h.feedback, kind)
}

type fakeDisplay struct {
	on     bool
	values []int
}

func (d *fakeDisplay) SetValue(v int) { d.values = append(d.values, v) }
func (d *fakeDisplay) SetOn(on bool) { d.on = on }

func (d *fakeDisplay) last() int {
	if len(d.values) == 0 {
		return -1
	}
	return d.values[len(d.values)-1]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns defaults with short countdowns.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.InterruptInterval = world.Range{Min: 2, Max: 2}
	cfg.ResolveDuration = 5
	return cfg
}

func newTestCatalog(t *testing.T) *world.Catalog {
	t.Helper()
	c, _, err := world.Generate(0, world.DefaultCounts())
	require.NoError(t, err)
	return c
}
