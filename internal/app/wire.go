//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"yt2t/internal/api/server"
	"yt2t/internal/app/api/provider"
	"yt2t/internal/app/extractor"
	"yt2t/internal/config"
)

// InitializeExtractor builds the extraction pipeline for one-shot CLI use.
func InitializeExtractor(ctx context.Context, s *config.Settings) (*extractor.Extractor, func(), error) {
	wire.Build(baseSet, extractorSet)
	return nil, nil, nil
}

// InitializeModel builds and loads the configured speech engine.
func InitializeModel(ctx context.Context, s *config.Settings) (*provider.Model, func(), error) {
	wire.Build(baseSet, provideNormalizer, modelSet)
	return nil, nil, nil
}

// InitializeExtractorServer builds the extractor HTTP service.
func InitializeExtractorServer(ctx context.Context, s *config.Settings) (*server.Server, func(), error) {
	wire.Build(baseSet, extractorSet, provideExtractionHandler, provideExtractorServerConfig, server.NewExtractorServer)
	return nil, nil, nil
}

// InitializeSTTServer builds the STT HTTP service.
func InitializeSTTServer(ctx context.Context, s *config.Settings) (*server.Server, func(), error) {
	wire.Build(baseSet, provideNormalizer, modelSet, provideTranscriptionHandler, provideSTTServerConfig, server.NewSTTServer)
	return nil, nil, nil
}
