package main

import (
	"log/slog"

	"github.com/nmtechsupport/techsupport/internal/game"
	"github.com/nmtechsupport/techsupport/internal/world"
)

// bombHost is the bomb side of the session: it keeps strikes and turns
// feedback cues into log lines, since this host has no audio.
type bombHost struct {
	bomb    *world.Bomb
	logger  *slog.Logger
	strikes int
}

func (h *bombHost) SerialNumber() string { return h.bomb.Serial }

func (h *bombHost) SignalPenalty() {
	h.strikes++
	h.logger.Warn("strike", "total", h.strikes)
}

func (h *bombHost) PlayFeedback(kind game.Feedback, location string) {
	h.logger.Debug("feedback", "kind", kind, "location", location)
}

// tasks exposes every bomb module as an interruptible task.
func tasks(bomb *world.Bomb) []game.Task {
	modules := bomb.Modules()
	out := make([]game.Task, len(modules))
	for i, m := range modules {
		out[i] = m
	}
	return out
}
