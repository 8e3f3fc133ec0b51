// Package provider is the transcription gateway: one speech engine, loaded at
// startup, shared by every request.
package provider

import (
	"context"

	"yt2t/internal/app/model"
)

// Engine is a concrete speech model backend.
type Engine interface {
	// Name identifies the engine in logs and health output.
	Name() string
	// Load prepares the engine. It is called exactly once, before any
	// Transcribe call; an error leaves the gateway unavailable.
	Load(ctx context.Context) error
	// Transcribe returns the recognized segments of the audio at path.
	// language is an ISO 639-1 code or "auto".
	Transcribe(ctx context.Context, path, language string) ([]model.TranscriptSegment, error)
}
