package dto

import (
	"yt2t/internal/app/model"
)

// TranscribeRequest is the body of both transcription routes.
type TranscribeRequest struct {
	WavFilePath string `json:"wav_file_path" binding:"required"`
	Language    string `json:"language,omitempty" binding:"omitempty,max=8"`
}

// TranscribeResponse carries the flat transcript.
type TranscribeResponse struct {
	Text string `json:"text"`
}

// TimestampsResponse carries timed segments.
type TimestampsResponse struct {
	Segments []model.TranscriptSegment `json:"segments"`
}
