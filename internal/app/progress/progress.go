// Package progress renders extraction stages as terminal progress bars.
package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"yt2t/internal/app/extractor"
)

// stages are the steps a bar counts, in order.
var stages = []extractor.State{
	extractor.StateFetching,
	extractor.StateNormalizing,
	extractor.StateCleaningUp,
	extractor.StateDone,
}

type Config struct {
	Enabled bool
	Writer  io.Writer
}

// Manager owns the mpb container. A disabled Manager hands out bars that do
// nothing.
type Manager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

func NewManager(config Config) *Manager {
	if !config.Enabled {
		return &Manager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	// mpb only redraws on its own when writer is a terminal.
	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithAutoRefresh(),
	)

	return &Manager{
		container: container,
		enabled:   true,
	}
}

// StageBar advances one step per extraction transition. It implements
// extractor.StateObserver.
type StageBar struct {
	bar     *mpb.Bar
	enabled bool

	mu    sync.Mutex
	stage string
}

// NewStageBar adds a bar labelled with description.
func (m *Manager) NewStageBar(description string) *StageBar {
	sb := &StageBar{stage: string(extractor.StatePending)}
	if !m.enabled || m.container == nil {
		return sb
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sb.bar = m.container.AddBar(int64(len(stages)),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.Any(func(decor.Statistics) string { return sb.current() }, decor.WCSyncSpaceR),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncWidth), " ✓ "),
			decor.OnAbort(decor.NewPercentage("%d", decor.WCSyncSpace), " ✗ "),
		),
	)
	sb.enabled = true
	return sb
}

func (sb *StageBar) current() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.stage
}

// Stage returns the last state the bar has seen.
func (sb *StageBar) Stage() string {
	return sb.current()
}

// OnTransition moves the bar forward, or aborts it on failure.
func (sb *StageBar) OnTransition(t extractor.Transition) {
	sb.mu.Lock()
	sb.stage = string(t.To)
	sb.mu.Unlock()

	if !sb.enabled || sb.bar == nil {
		return
	}
	if t.To == extractor.StateFailed {
		sb.bar.Abort(false)
		return
	}
	sb.bar.EwmaIncrement(t.Elapsed)
}

// Wait blocks until every bar has rendered its final state.
func (m *Manager) Wait() {
	if m.enabled && m.container != nil {
		m.container.Wait()
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ShouldShowProgress is true when forced or stderr is a terminal.
func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}
	return IsTTY(os.Stderr)
}
