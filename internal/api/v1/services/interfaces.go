package services

import (
	"context"

	"yt2t/internal/app/api/provider"
	"yt2t/internal/app/extractor"
	"yt2t/internal/app/model"
)

// ExtractionService is what the extractor routes need. Implemented by
// *extractor.Extractor.
type ExtractionService interface {
	Extract(ctx context.Context, req model.ExtractionRequest, observer extractor.StateObserver) (*extractor.Result, error)
	Probe(ctx context.Context, sourceURL string) (model.VideoMetadata, error)
	ResolveFile(name string) (string, error)
	ListFiles() ([]string, error)
	DeleteFileAsync(name string) error
	ListHistory(ctx context.Context, limit int) ([]model.ExtractionRecord, error)
	CheckTools(ctx context.Context) error
}

// TranscriptionService is what the STT routes need. Implemented by
// *provider.Model.
type TranscriptionService interface {
	Transcribe(ctx context.Context, path, language string) (string, error)
	TranscribeWithTimestamps(ctx context.Context, path, language string) ([]model.TranscriptSegment, error)
	Health() provider.HealthStatus
}

var (
	_ ExtractionService    = (*extractor.Extractor)(nil)
	_ TranscriptionService = (*provider.Model)(nil)
)
