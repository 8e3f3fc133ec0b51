package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"yt2t/internal/app/api/provider"
	"yt2t/internal/app/extractor"
	"yt2t/internal/app/model"
)

type mockExtractionService struct {
	mock.Mock
}

func (m *mockExtractionService) Extract(ctx context.Context, req model.ExtractionRequest, observer extractor.StateObserver) (*extractor.Result, error) {
	args := m.Called(ctx, req, observer)
	result, _ := args.Get(0).(*extractor.Result)
	return result, args.Error(1)
}

func (m *mockExtractionService) Probe(ctx context.Context, sourceURL string) (model.VideoMetadata, error) {
	args := m.Called(ctx, sourceURL)
	return args.Get(0).(model.VideoMetadata), args.Error(1)
}

func (m *mockExtractionService) ResolveFile(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *mockExtractionService) ListFiles() ([]string, error) {
	args := m.Called()
	files, _ := args.Get(0).([]string)
	return files, args.Error(1)
}

func (m *mockExtractionService) DeleteFileAsync(name string) error {
	return m.Called(name).Error(0)
}

func (m *mockExtractionService) ListHistory(ctx context.Context, limit int) ([]model.ExtractionRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]model.ExtractionRecord)
	return records, args.Error(1)
}

func (m *mockExtractionService) CheckTools(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockTranscriptionService struct {
	mock.Mock
}

func (m *mockTranscriptionService) Transcribe(ctx context.Context, path, language string) (string, error) {
	args := m.Called(ctx, path, language)
	return args.String(0), args.Error(1)
}

func (m *mockTranscriptionService) TranscribeWithTimestamps(ctx context.Context, path, language string) ([]model.TranscriptSegment, error) {
	args := m.Called(ctx, path, language)
	segs, _ := args.Get(0).([]model.TranscriptSegment)
	return segs, args.Error(1)
}

func (m *mockTranscriptionService) Health() provider.HealthStatus {
	return m.Called().Get(0).(provider.HealthStatus)
}
