package game

// Feedback identifies a sound or haptic cue the host may play.
type Feedback uint8

const (
	FeedbackBusy    Feedback = iota // player poked a module tech support is holding
	FeedbackMove                    // highlight moved
	FeedbackConfirm                 // option confirmed
)

var feedbackNames = [...]string{"busy", "move", "confirm"}

func (f Feedback) String() string {
	if int(f) < len(feedbackNames) {
		return feedbackNames[f]
	}
	return "unknown"
}

// Display is the two-digit countdown readout.
type Display interface {
	SetValue(v int)
	SetOn(on bool)
}

// Task is one module tech support can interrupt.
type Task interface {
	Name() string
	IsSolved() bool
	// DisableInteraction replaces the task's own interaction with busy.
	DisableInteraction(busy func())
	RestoreInteraction()
	// MarkReleased shows the task as no longer held.
	MarkReleased()
}

// Host receives penalties and feedback. Penalty accounting is the host's.
type Host interface {
	SerialNumber() string
	SignalPenalty()
	PlayFeedback(kind Feedback, location string)
}
