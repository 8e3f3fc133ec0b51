package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "yt2t/internal/app/errors"
	"yt2t/internal/app/model"
	"yt2t/internal/app/testutil"
)

func audioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o644))
	return path
}

func TestModelUnavailableWhenLoadFails(t *testing.T) {
	engine := &testutil.MockEngine{}
	engine.On("Load", mock.Anything).Return(errors.New("model file missing"))

	m := NewModel(context.Background(), engine)
	assert.False(t, m.Ready())

	health := m.Health()
	assert.Equal(t, StatusUnavailable, health.Status)
	assert.Contains(t, health.Message, "model file missing")

	_, err := m.Transcribe(context.Background(), audioFile(t), "ja")
	assert.True(t, apperrors.Is(err, apperrors.ErrModelUnavailable))

	_, err = m.TranscribeWithTimestamps(context.Background(), "/nope.wav", "ja")
	assert.True(t, apperrors.Is(err, apperrors.ErrModelUnavailable), "readiness is checked before the file")
	engine.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything, mock.Anything)
}

func TestModelNilEngine(t *testing.T) {
	m := NewModel(context.Background(), nil)
	assert.False(t, m.Ready())
	_, err := m.Transcribe(context.Background(), audioFile(t), "")
	assert.True(t, apperrors.Is(err, apperrors.ErrModelUnavailable))
}

func TestModelAudioNotFound(t *testing.T) {
	engine := &testutil.MockEngine{}
	engine.On("Load", mock.Anything).Return(nil)
	m := NewModel(context.Background(), engine)

	_, err := m.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav"), "ja")
	assert.True(t, apperrors.Is(err, apperrors.ErrAudioNotFound))
	assert.Equal(t, "audio_not_found", apperrors.Code(err))

	_, err = m.Transcribe(context.Background(), t.TempDir(), "ja")
	assert.True(t, apperrors.Is(err, apperrors.ErrAudioNotFound), "directories are not audio")
}

func TestModelConcatenationLaw(t *testing.T) {
	path := audioFile(t)
	raw := []model.TranscriptSegment{
		{Start: 2.0, End: 3.5, Text: " world"},
		{Start: 0.0, End: 2.0, Text: "こんにちは"},
		{Start: 3.5, End: 3.0, Text: "!"},
	}
	engine := &testutil.MockEngine{}
	engine.On("Load", mock.Anything).Return(nil)
	engine.On("Transcribe", mock.Anything, path, "ja").Return(raw, nil)

	m := NewModel(context.Background(), engine)
	assert.Equal(t, StatusOK, m.Health().Status)

	text, err := m.Transcribe(context.Background(), path, "")
	require.NoError(t, err)
	segs, err := m.TranscribeWithTimestamps(context.Background(), path, "ja")
	require.NoError(t, err)

	assert.Equal(t, "こんにちは world!", text)
	assert.Equal(t, text, JoinText(segs))
	for i, s := range segs {
		assert.LessOrEqual(t, s.Start, s.End)
		if i > 0 {
			assert.LessOrEqual(t, segs[i-1].Start, s.Start)
		}
	}
}

func TestModelEngineErrorPassesThrough(t *testing.T) {
	path := audioFile(t)
	boom := errors.New("whisper crashed")
	engine := &testutil.MockEngine{}
	engine.On("Load", mock.Anything).Return(nil)
	engine.On("Transcribe", mock.Anything, path, "en").Return(nil, boom)

	m := NewModel(context.Background(), engine, WithDefaultLanguage("en"))
	_, err := m.Transcribe(context.Background(), path, "")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "internal", apperrors.Code(err))
}

type slowEngine struct {
	inFlight, peak atomic.Int32
}

func (e *slowEngine) Name() string { return "slow" }

func (e *slowEngine) Load(context.Context) error { return nil }

func (e *slowEngine) Transcribe(context.Context, string, string) ([]model.TranscriptSegment, error) {
	n := e.inFlight.Add(1)
	for {
		p := e.peak.Load()
		if n <= p || e.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)
	e.inFlight.Add(-1)
	return []model.TranscriptSegment{{Text: "x"}}, nil
}

func TestModelBoundsConcurrency(t *testing.T) {
	path := audioFile(t)
	engine := &slowEngine{}
	m := NewModel(context.Background(), engine, WithMaxConcurrency(2))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Transcribe(context.Background(), path, "ja")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, engine.peak.Load(), int32(2))
}

func TestModelCancelledWhileWaiting(t *testing.T) {
	path := audioFile(t)
	engine := &slowEngine{}
	m := NewModel(context.Background(), engine, WithMaxConcurrency(1))
	require.True(t, m.slots.TryAcquire(1))
	defer m.slots.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Transcribe(ctx, path, "ja")
	assert.ErrorIs(t, err, context.Canceled)
}
