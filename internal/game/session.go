package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nmtechsupport/techsupport/internal/world"
)

// ErrNoTasks is returned when a session has nothing it could ever interrupt.
var ErrNoTasks = errors.New("no interruptible modules")

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *sessionOptions) { o.logger = l }
}

// WithRegisterer registers the session metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *sessionOptions) { o.registerer = reg }
}

// Session is one tech support needy module. It owns all puzzle state; every
// exported method takes the same lock, so ticks and operator input never
// interleave mid-step.
type Session struct {
	ID      string
	Config  Config
	Catalog *world.Catalog
	Log     *MessageLog
	Metrics *Metrics
	Ticks   uint64

	mu        sync.Mutex
	host      Host
	display   Display
	faults    *world.FaultFactory
	scheduler *Scheduler
	stages    *StageMachine
	logger    *slog.Logger
	started   bool
}

// NewSession validates cfg, generates the catalog and wires the components.
func NewSession(cfg Config, host Host, display Display, tasks []Task, opts ...Option) (*Session, error) {
	o := sessionOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !anyUnsolved(tasks) {
		return nil, fmt.Errorf("%w: %d modules, none unsolved", ErrNoTasks, len(tasks))
	}

	catalog, rng, err := world.Generate(cfg.Seed, cfg.Counts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	id := uuid.NewString()
	logger := o.logger.With("session", id)
	metrics := NewMetrics(o.registerer)
	console := NewMessageLog(cfg.MessageCount, logger)

	seed := uint64(int64(cfg.Seed))
	pick := rand.New(rand.NewPCG(seed, seed>>16|3))

	s := &Session{
		ID:      id,
		Config:  cfg,
		Catalog: catalog,
		Log:     console,
		Metrics: metrics,
		host:    host,
		display: display,
		faults:  world.NewFaultFactory(catalog, rng, cfg.LineRange, cfg.ColumnRange),
		logger:  logger,
	}
	s.scheduler = NewScheduler(tasks, pick, display, host, cfg, metrics, logger)
	s.stages = NewStageMachine(catalog, console, host, cfg, metrics, logger)

	s.scheduler.OnInterrupt(s.interrupted)
	s.stages.SetCountdown(s.scheduler.ResolveRemaining)
	s.stages.OnRelease(func() { s.scheduler.Release() })

	logger.Info("session created", "seed", cfg.Seed, "modules", len(tasks))
	return s, nil
}

func anyUnsolved(tasks []Task) bool {
	for _, t := range tasks {
		if !t.IsSolved() {
			return true
		}
	}
	return false
}

func (s *Session) interrupted(t Task) {
	s.stages.Begin(t.Name(), s.faults.Next())
}

// Start turns the display on, prints the banner and starts counting down.
// Calling it twice does nothing.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.display.SetOn(true)
	s.Log.Append(fmt.Sprintf(s.Config.Text.Start, s.host.SerialNumber()), MsgInfo)
	s.scheduler.Start()
}

// Tick advances the session by one frame. Countdowns move once every
// TicksPerSecond frames.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.Ticks++
	if s.Ticks%uint64(s.Config.TicksPerSecond) == 0 {
		s.scheduler.Tick()
	}
}

// Step advances the countdowns by one step regardless of frames.
func (s *Session) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.scheduler.Tick()
}

// Run steps the session every interval until ctx is done or nothing is left
// to interrupt.
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	s.Start()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Step()
			if s.State() == StateHalted {
				return nil
			}
		}
	}
}

// Up moves the highlight up.
func (s *Session) Up() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stages.Up()
}

// Down moves the highlight down.
func (s *Session) Down() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stages.Down()
}

// OK confirms the highlighted option.
func (s *Session) OK() ConfirmResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stages.Confirm()
}

// Autosolve highlights the correct option of the open stage and confirms it.
func (s *Session) Autosolve() ConfirmResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	want, ok := s.stages.Expected()
	if !ok {
		return ConfirmIgnored
	}
	s.stages.Select(want)
	return s.stages.Confirm()
}

// Expected returns the correct option of the open stage.
func (s *Session) Expected() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stages.Expected()
}

// Console renders the visible console lines.
func (s *Session) Console() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Log.Render()
}

// Recent returns a copy of the last n console entries.
func (s *Session) Recent(n int) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.Log.Recent(n)...)
}

// State returns the scheduler state.
func (s *Session) State() SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler.State()
}

// Stage returns the open selection stage.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stages.Stage()
}

// Target returns the held module, or nil.
func (s *Session) Target() Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler.Target()
}

// Report returns the fault of the current or last interrupt.
func (s *Session) Report() world.FaultReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stages.Report()
}

// History returns every fault reported this session.
func (s *Session) History() []world.FaultReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stages.History()
}
