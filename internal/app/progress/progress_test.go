package progress

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"yt2t/internal/app/extractor"
)

func transitions(to ...extractor.State) []extractor.Transition {
	from := extractor.StatePending
	out := make([]extractor.Transition, 0, len(to))
	for _, s := range to {
		out = append(out, extractor.Transition{From: from, To: s, Elapsed: 10 * time.Millisecond})
		from = s
	}
	return out
}

func TestStageBar_CompletesOnDone(t *testing.T) {
	var buf bytes.Buffer
	m := NewManager(Config{Enabled: true, Writer: &buf})
	bar := m.NewStageBar("extract")

	for _, tr := range transitions(extractor.StateFetching, extractor.StateNormalizing, extractor.StateCleaningUp, extractor.StateDone) {
		bar.OnTransition(tr)
	}
	m.Wait()

	assert.Equal(t, "done", bar.Stage())
	assert.True(t, bar.bar.Completed())
	assert.Contains(t, buf.String(), "extract")
}

func TestStageBar_AbortsOnFailure(t *testing.T) {
	var buf bytes.Buffer
	m := NewManager(Config{Enabled: true, Writer: &buf})
	bar := m.NewStageBar("extract")

	bar.OnTransition(transitions(extractor.StateFetching)[0])
	bar.OnTransition(extractor.Transition{From: extractor.StateFetching, To: extractor.StateFailed, Err: errors.New("boom")})
	m.Wait()

	assert.Equal(t, "failed", bar.Stage())
	assert.True(t, bar.bar.Aborted())
}

func TestDisabledManager(t *testing.T) {
	m := NewManager(Config{Enabled: false})
	bar := m.NewStageBar("extract")

	bar.OnTransition(transitions(extractor.StateFetching)[0])
	m.Wait()

	assert.Equal(t, "fetching", bar.Stage())
	assert.Nil(t, bar.bar)
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
