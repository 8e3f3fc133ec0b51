package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"yt2t/internal/app/model"
)

// MockEngine is a testify mock of a speech engine. EngineName defaults to
// "mock".
type MockEngine struct {
	mock.Mock
	EngineName string
}

func (m *MockEngine) Name() string {
	if m.EngineName == "" {
		return "mock"
	}
	return m.EngineName
}

func (m *MockEngine) Load(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockEngine) Transcribe(ctx context.Context, path, language string) ([]model.TranscriptSegment, error) {
	args := m.Called(ctx, path, language)
	segs, _ := args.Get(0).([]model.TranscriptSegment)
	return segs, args.Error(1)
}

// ExpectLoaded makes Load succeed.
func (m *MockEngine) ExpectLoaded() *MockEngine {
	m.On("Load", mock.Anything).Return(nil)
	return m
}

// ExpectTranscript makes every Transcribe call return segs.
func (m *MockEngine) ExpectTranscript(segs ...model.TranscriptSegment) *MockEngine {
	m.On("Transcribe", mock.Anything, mock.Anything, mock.Anything).Return(segs, nil)
	return m
}
