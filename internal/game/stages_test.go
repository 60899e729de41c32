package game

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtechsupport/techsupport/internal/world"
)

type stageFixture struct {
	machine  *StageMachine
	console  *MessageLog
	host     *fakeHost
	metrics  *Metrics
	catalog  *world.Catalog
	releases int
}

func newStageFixture(t *testing.T, cfg Config) *stageFixture {
	t.Helper()
	f := &stageFixture{
		console: NewMessageLog(cfg.MessageCount, discardLogger()),
		host:    &fakeHost{},
		metrics: NewMetrics(nil),
		catalog: newTestCatalog(t),
	}
	f.machine = NewStageMachine(f.catalog, f.console, f.host, cfg, f.metrics, discardLogger())
	f.machine.OnRelease(func() { f.releases++ })
	return f
}

func (f *stageFixture) begin() world.FaultReport {
	r := world.FaultReport{
		FaultIndex:      3,
		FaultCode:       f.catalog.FaultCodes[3],
		SourceFileIndex: 4,
		SourceFile:      f.catalog.SourceFiles[4],
		Line:            120,
		Column:          33,
	}
	f.machine.Begin("Wires", r)
	return r
}

func (f *stageFixture) answer(t *testing.T) ConfirmResult {
	t.Helper()
	want, ok := f.machine.Expected()
	require.True(t, ok)
	f.machine.Select(want)
	return f.machine.Confirm()
}

func (f *stageFixture) wrong(t *testing.T) ConfirmResult {
	t.Helper()
	want, ok := f.machine.Expected()
	require.True(t, ok)
	f.machine.Select((want + 1) % len(f.machine.Options()))
	return f.machine.Confirm()
}

func (f *stageFixture) text(id EntryID) string {
	m, _ := f.console.Lookup(id)
	return m.Text
}

func TestStageMachineBeginShowsVersions(t *testing.T) {
	f := newStageFixture(t, testConfig())
	r := f.begin()

	assert.Equal(t, StageVersion, f.machine.Stage())
	assert.Equal(t, r, f.machine.Report())
	assert.Equal(t, []world.FaultReport{r}, f.machine.History())

	opts := f.machine.Options()
	require.Len(t, opts, len(f.catalog.Versions))
	assert.Equal(t, "> "+f.catalog.Versions[0], f.text(opts[0].Entry))
	assert.Equal(t, "  "+f.catalog.Versions[1], f.text(opts[1].Entry))

	first := f.console.Messages[0]
	assert.Equal(t, MsgCritical, first.Priority)
	assert.Contains(t, first.Text, r.FaultCode)
	assert.Contains(t, first.Text, r.SourceFile)
	assert.Contains(t, first.Text, "line 120, column 33")
}

func TestStageMachineThreeCorrectAnswersRelease(t *testing.T) {
	f := newStageFixture(t, testConfig())
	f.begin()

	assert.Equal(t, ConfirmAccepted, f.answer(t))
	assert.Equal(t, StagePatchFile, f.machine.Stage())
	assert.Len(t, f.machine.Options(), len(f.catalog.PatchFiles))

	assert.Equal(t, ConfirmAccepted, f.answer(t))
	assert.Equal(t, StageParameter, f.machine.Stage())
	assert.Len(t, f.machine.Options(), len(f.catalog.Parameters))

	assert.Equal(t, ConfirmAccepted, f.answer(t))
	assert.Equal(t, StageReleased, f.machine.Stage())
	assert.Equal(t, 1, f.releases)
	assert.Zero(t, f.host.penalties)
	assert.Empty(t, f.machine.Options())

	last := f.console.Messages[len(f.console.Messages)-1]
	assert.Equal(t, "Wires released.", last.Text)
	for _, stage := range []string{"version", "patch_file", "parameter"} {
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Confirms.WithLabelValues(stage, "accepted")))
	}
}

func TestStageMachineConfirmKeepsOnlySelectedOption(t *testing.T) {
	f := newStageFixture(t, testConfig())
	f.begin()
	want, _ := f.machine.Expected()
	f.machine.Select(want)
	require.Equal(t, ConfirmAccepted, f.machine.Confirm())

	confirmed := 0
	for _, m := range f.console.Messages {
		for i, v := range f.catalog.Versions {
			switch m.Text {
			case "* " + v:
				assert.Equal(t, want, i)
				confirmed++
			case "> " + v, "  " + v:
				t.Errorf("unconfirmed version option left on console: %q", m.Text)
			}
		}
	}
	assert.Equal(t, 1, confirmed)
}

func TestStageMachineWrongAnswerPenalisesAndRetries(t *testing.T) {
	f := newStageFixture(t, testConfig())
	f.begin()

	assert.Equal(t, ConfirmRejected, f.wrong(t))
	assert.Equal(t, 1, f.host.penalties)
	assert.Equal(t, StageVersion, f.machine.Stage())
	assert.Len(t, f.machine.Options(), len(f.catalog.Versions))
	assert.Zero(t, f.machine.Selected())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Penalties.WithLabelValues(PenaltyMismatch)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Confirms.WithLabelValues("version", "rejected")))

	assert.Equal(t, ConfirmAccepted, f.answer(t))
	assert.Equal(t, StagePatchFile, f.machine.Stage())
	assert.Equal(t, 1, f.host.penalties)
}

func TestStageMachineHighlightClamps(t *testing.T) {
	f := newStageFixture(t, testConfig())
	f.begin()

	f.machine.Up()
	assert.Zero(t, f.machine.Selected())

	for i := 0; i < 20; i++ {
		f.machine.Down()
	}
	last := len(f.catalog.Versions) - 1
	assert.Equal(t, last, f.machine.Selected())

	opts := f.machine.Options()
	assert.Equal(t, "> "+f.catalog.Versions[last], f.text(opts[last].Entry))
	assert.Equal(t, "  "+f.catalog.Versions[0], f.text(opts[0].Entry))
	assert.Len(t, f.host.feedback, 21)
	assert.Equal(t, FeedbackMove, f.host.feedback[0])

	f.machine.Select(-5)
	assert.Zero(t, f.machine.Selected())
}

func TestStageMachineIgnoresInputWhenClosed(t *testing.T) {
	f := newStageFixture(t, testConfig())

	f.machine.Up()
	f.machine.Down()
	assert.Equal(t, ConfirmIgnored, f.machine.Confirm())
	_, ok := f.machine.Expected()
	assert.False(t, ok)
	assert.Empty(t, f.host.feedback)
	assert.Zero(t, f.console.Len())
}

func TestStageMachineForcedStagesAcceptAnything(t *testing.T) {
	cfg := testConfig()
	cfg.Debug.ForceVersionCorrect = true
	cfg.Debug.ForcePatchFileCorrect = true
	cfg.Debug.ForceParametersCorrect = true
	f := newStageFixture(t, cfg)
	f.begin()

	for i := 0; i < 3; i++ {
		assert.Equal(t, ConfirmAccepted, f.wrong(t))
	}
	assert.Equal(t, StageReleased, f.machine.Stage())
	assert.Zero(t, f.host.penalties)
	assert.Equal(t, 1, f.releases)
}

func TestStageMachineHistoryGrowsPerInterrupt(t *testing.T) {
	f := newStageFixture(t, testConfig())
	f.begin()
	f.begin()
	assert.Len(t, f.machine.History(), 2)
}

func TestStageMachinePatchUsesCountdown(t *testing.T) {
	f := newStageFixture(t, testConfig())
	remaining := 50
	f.machine.SetCountdown(func() int { return remaining })
	f.machine.Begin("Maze", world.FaultReport{
		FaultCode:  "9Q-8W7X6",
		SourceFile: "plick.ab",
		Line:       201,
		Column:     77,
	})
	require.Equal(t, ConfirmAccepted, f.answer(t))
	require.Equal(t, StagePatchFile, f.machine.Stage())

	got, _ := f.machine.Expected()
	assert.Equal(t, patchRushedColumn, got)

	remaining = 99
	got, _ = f.machine.Expected()
	assert.Equal(t, patchDefault, got)
}
