package game

import (
	"log/slog"
	"math/rand/v2"

	"github.com/nmtechsupport/techsupport/internal/world"
)

// SchedulerState is where the interrupt cycle currently is.
type SchedulerState uint8

const (
	StateIdle          SchedulerState = iota // counting down to the next interrupt
	StateSelecting                           // picking a module
	StateInterrupting                        // holding the module, opening the puzzle
	StateAwaiting                            // penalty countdown runs until release
	StateHalted                              // nothing left to interrupt
)

var schedulerStateNames = [...]string{"idle", "selecting", "interrupting", "awaiting", "halted"}

func (s SchedulerState) String() string {
	if int(s) < len(schedulerStateNames) {
		return schedulerStateNames[s]
	}
	return "unknown"
}

// displayMax is the largest value the two-digit readout can show.
const displayMax = 99

// Scheduler decides when and which module gets interrupted, and runs the
// penalty countdown while one is held.
type Scheduler struct {
	tasks   []Task
	rng     *rand.Rand
	display Display
	host    Host
	metrics *Metrics
	logger  *slog.Logger

	interval        world.Range
	resolveDuration int
	ignoreCountdown bool

	state     SchedulerState
	countdown int
	penalty   int
	target    Task

	// onInterrupt runs once a target is held, before the penalty countdown starts.
	onInterrupt func(Task)
}

// NewScheduler creates a scheduler over tasks. It stays idle until Start.
func NewScheduler(tasks []Task, rng *rand.Rand, display Display, host Host, cfg Config, metrics *Metrics, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Scheduler{
		tasks:           append([]Task(nil), tasks...),
		rng:             rng,
		display:         display,
		host:            host,
		metrics:         metrics,
		logger:          logger,
		interval:        cfg.InterruptInterval,
		resolveDuration: cfg.ResolveDuration,
		ignoreCountdown: cfg.Debug.IgnoreCountdown,
	}
}

// OnInterrupt registers the callback that opens the puzzle for a target.
func (s *Scheduler) OnInterrupt(fn func(Task)) { s.onInterrupt = fn }

// Start begins the first idle countdown.
func (s *Scheduler) Start() {
	s.enterIdle()
}

func (s *Scheduler) enterIdle() {
	s.state = StateIdle
	s.target = nil
	s.countdown = s.drawDelay()
	s.logger.Debug("next interrupt scheduled", "countdown", s.countdown)
}

func (s *Scheduler) drawDelay() int {
	if s.ignoreCountdown {
		return 0
	}
	span := s.interval.Max - s.interval.Min
	if span <= 0 {
		return s.interval.Min
	}
	return s.interval.Min + s.rng.IntN(span)
}

// Tick advances whichever countdown is running by one step.
func (s *Scheduler) Tick() {
	switch s.state {
	case StateIdle:
		s.display.SetValue(min(displayMax, s.countdown))
		s.countdown--
		if s.countdown < 0 {
			s.state = StateSelecting
			s.selectTarget()
		}

	case StateAwaiting:
		s.display.SetValue(min(displayMax, s.penalty))
		s.penalty--
		if s.penalty < 0 {
			s.logger.Info("resolve countdown expired", "module", s.target.Name())
			s.metrics.Penalties.WithLabelValues(PenaltyTimeout).Inc()
			s.host.SignalPenalty()
			s.penalty = s.resolveDuration
		}
	}
}

// selectTarget draws modules uniformly until it finds an unsolved one,
// dropping solved ones for good. With nothing left the scheduler halts.
func (s *Scheduler) selectTarget() {
	for {
		if len(s.tasks) == 0 {
			s.state = StateHalted
			s.display.SetOn(false)
			s.logger.Info("no modules left to interrupt, halting")
			return
		}

		i := s.rng.IntN(len(s.tasks))
		t := s.tasks[i]
		if !t.IsSolved() {
			s.interrupt(t)
			return
		}
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
}

func (s *Scheduler) interrupt(t Task) {
	s.state = StateInterrupting
	s.target = t

	name := t.Name()
	t.DisableInteraction(func() {
		s.host.PlayFeedback(FeedbackBusy, name)
	})
	s.metrics.Interrupts.Inc()
	s.logger.Info("module interrupted", "module", name)

	s.penalty = s.resolveDuration
	if s.onInterrupt != nil {
		s.onInterrupt(t)
	}
	if s.state == StateInterrupting {
		s.state = StateAwaiting
	}
}

// Release hands the held module back and schedules the next interrupt.
// It returns false when nothing is held.
func (s *Scheduler) Release() bool {
	if s.state != StateAwaiting && s.state != StateInterrupting {
		return false
	}
	t := s.target
	t.RestoreInteraction()
	t.MarkReleased()
	s.metrics.Releases.Inc()
	s.logger.Info("module released", "module", t.Name())
	s.enterIdle()
	return true
}

// State returns the current state.
func (s *Scheduler) State() SchedulerState { return s.state }

// Target returns the held module, or nil.
func (s *Scheduler) Target() Task { return s.target }

// Countdown returns the idle countdown.
func (s *Scheduler) Countdown() int { return s.countdown }

// ResolveRemaining returns the penalty countdown of the held module.
func (s *Scheduler) ResolveRemaining() int { return s.penalty }

// Pending returns how many modules are still eligible, solved ones included
// until a draw discovers them.
func (s *Scheduler) Pending() int { return len(s.tasks) }
