package game

import (
	"fmt"
	"log/slog"

	"github.com/nmtechsupport/techsupport/internal/world"
)

// Stage is one round of the three-round selection flow.
type Stage uint8

const (
	StageIdle Stage = iota // no module held
	StageVersion
	StagePatchFile
	StageParameter
	StageReleased
)

var stageNames = [...]string{"idle", "version", "patch_file", "parameter", "released"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// ConfirmResult is what a press of OK did.
type ConfirmResult uint8

const (
	ConfirmIgnored  ConfirmResult = iota // no stage open
	ConfirmAccepted                      // stage passed
	ConfirmRejected                      // wrong option, penalty sent
)

// consoleLocation is where console feedback is played.
const consoleLocation = "techsupport"

// OptionEntry is one option line on the console.
type OptionEntry struct {
	Label string
	Entry EntryID
}

// StageMachine walks one held module through version, patch file and
// parameter selection.
type StageMachine struct {
	catalog *world.Catalog
	console *MessageLog
	host    Host
	text    TextConfig
	debug   DebugConfig
	metrics *Metrics
	logger  *slog.Logger

	// countdown reports the resolve countdown for the patch file rules.
	countdown func() int
	onRelease func()

	stage    Stage
	target   string
	report   world.FaultReport
	history  []world.FaultReport
	options  []OptionEntry
	selected int
}

// NewStageMachine creates an idle stage machine.
func NewStageMachine(catalog *world.Catalog, console *MessageLog, host Host, cfg Config, metrics *Metrics, logger *slog.Logger) *StageMachine {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &StageMachine{
		catalog:   catalog,
		console:   console,
		host:      host,
		text:      cfg.Text,
		debug:     cfg.Debug,
		metrics:   metrics,
		logger:    logger,
		countdown: func() int { return cfg.ResolveDuration },
	}
}

// SetCountdown sets the source of the resolve countdown.
func (m *StageMachine) SetCountdown(fn func() int) { m.countdown = fn }

// OnRelease registers what happens after the parameter stage passes.
func (m *StageMachine) OnRelease(fn func()) { m.onRelease = fn }

// Begin records report in the history, prints it and opens the version stage.
func (m *StageMachine) Begin(target string, report world.FaultReport) {
	m.target = target
	m.report = report
	m.history = append(m.history, report)

	m.console.Append(fmt.Sprintf(m.text.Error, target, report.FaultCode, report.SourceFile, report.Line, report.Column), MsgCritical)
	m.logger.Info("fault reported",
		"module", target,
		"code", report.FaultCode,
		"source", report.SourceFile,
		"line", report.Line,
		"column", report.Column,
	)
	m.enter(StageVersion)
}

func (m *StageMachine) enter(stage Stage) {
	m.stage = stage
	switch stage {
	case StageVersion:
		m.showOptions(m.catalog.Versions, m.text.SelectVersion)
	case StagePatchFile:
		m.showOptions(m.catalog.PatchFiles, m.text.SelectPatchFile)
	case StageParameter:
		m.showOptions(m.catalog.Parameters, m.text.SelectParameters)
	}
}

func (m *StageMachine) showOptions(labels []string, caption string) {
	m.console.Append(caption, MsgInfo)

	m.selected = 0
	m.options = m.options[:0]
	for _, label := range labels {
		id := m.console.Append(fmt.Sprintf(m.text.UnselectedOption, label), MsgOption)
		m.options = append(m.options, OptionEntry{Label: label, Entry: id})
	}
	m.updateSelected(0)
}

// updateSelected redraws the previously and currently highlighted options.
func (m *StageMachine) updateSelected(previous int) {
	prev := &m.options[previous]
	if id, ok := m.console.Replace(prev.Entry, fmt.Sprintf(m.text.UnselectedOption, prev.Label)); ok {
		prev.Entry = id
	}
	cur := &m.options[m.selected]
	if id, ok := m.console.Replace(cur.Entry, fmt.Sprintf(m.text.SelectedOption, cur.Label)); ok {
		cur.Entry = id
	}
}

func (m *StageMachine) open() bool {
	return len(m.options) > 0 && m.stage >= StageVersion && m.stage <= StageParameter
}

// Up moves the highlight one option up, stopping at the first.
func (m *StageMachine) Up() {
	if !m.open() {
		return
	}
	previous := m.selected
	m.selected = max(m.selected-1, 0)
	m.updateSelected(previous)
	m.host.PlayFeedback(FeedbackMove, consoleLocation)
}

// Down moves the highlight one option down, stopping at the last.
func (m *StageMachine) Down() {
	if !m.open() {
		return
	}
	previous := m.selected
	m.selected = min(m.selected+1, len(m.options)-1)
	m.updateSelected(previous)
	m.host.PlayFeedback(FeedbackMove, consoleLocation)
}

// Select moves the highlight straight to i, clamped to the option list.
func (m *StageMachine) Select(i int) {
	if !m.open() {
		return
	}
	previous := m.selected
	m.selected = min(max(i, 0), len(m.options)-1)
	m.updateSelected(previous)
}

// Expected returns the correct option of the open stage.
func (m *StageMachine) Expected() (int, bool) {
	switch m.stage {
	case StageVersion:
		return CorrectVersion(m.catalog, m.report), true
	case StagePatchFile:
		return CorrectPatchFile(m.report, m.history, m.countdown()).Index, true
	case StageParameter:
		return CorrectParameter(m.report, len(m.catalog.Parameters)), true
	default:
		return 0, false
	}
}

func (m *StageMachine) forced() bool {
	switch m.stage {
	case StageVersion:
		return m.debug.ForceVersionCorrect
	case StagePatchFile:
		return m.debug.ForcePatchFileCorrect
	case StageParameter:
		return m.debug.ForceParametersCorrect
	}
	return false
}

// Confirm locks in the highlighted option and checks it.
func (m *StageMachine) Confirm() ConfirmResult {
	if !m.open() {
		return ConfirmIgnored
	}
	stage := m.stage
	m.confirmSelection()
	m.host.PlayFeedback(FeedbackConfirm, consoleLocation)

	expected, _ := m.Expected()
	if m.selected != expected && !m.forced() {
		m.metrics.Confirms.WithLabelValues(stage.String(), "rejected").Inc()
		m.metrics.Penalties.WithLabelValues(PenaltyMismatch).Inc()
		m.logger.Info("selection rejected", "stage", stage, "selected", m.selected, "module", m.target)
		m.host.SignalPenalty()
		m.console.Append(m.text.Incorrect, MsgWarning)
		m.enter(stage)
		return ConfirmRejected
	}

	m.metrics.Confirms.WithLabelValues(stage.String(), "accepted").Inc()
	m.logger.Info("selection accepted", "stage", stage, "selected", m.selected, "module", m.target)
	m.console.Append(m.text.Correct, MsgSuccess)

	if stage == StageParameter {
		m.release()
		return ConfirmAccepted
	}
	m.enter(stage + 1)
	return ConfirmAccepted
}

// confirmSelection drops every option line but the highlighted one, which is
// rewritten as confirmed.
func (m *StageMachine) confirmSelection() {
	for i, opt := range m.options {
		if i != m.selected {
			m.console.Remove(opt.Entry)
		}
	}
	sel := m.options[m.selected]
	m.console.Replace(sel.Entry, fmt.Sprintf(m.text.OptionConfirmed, sel.Label))
}

func (m *StageMachine) release() {
	m.console.Append(fmt.Sprintf(m.text.ModuleReleased, m.target), MsgSuccess)
	m.stage = StageReleased
	m.options = m.options[:0]
	if m.onRelease != nil {
		m.onRelease()
	}
}

// Stage returns the open stage.
func (m *StageMachine) Stage() Stage { return m.stage }

// Report returns the fault being worked on.
func (m *StageMachine) Report() world.FaultReport { return m.report }

// Selected returns the highlighted option index.
func (m *StageMachine) Selected() int { return m.selected }

// Options returns the option lines of the open stage.
func (m *StageMachine) Options() []OptionEntry {
	return append([]OptionEntry(nil), m.options...)
}

// History returns every fault reported so far, oldest first.
func (m *StageMachine) History() []world.FaultReport {
	return append([]world.FaultReport(nil), m.history...)
}
