package dto

import (
	"strings"

	"yt2t/internal/api/errors"
	"yt2t/internal/app/model"
)

// ExtractRequest is the body of POST /extract. The older field names url and
// audio_format are accepted as aliases.
type ExtractRequest struct {
	SourceURL    string `json:"source_url"`
	URL          string `json:"url,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
	AudioFormat  string `json:"audio_format,omitempty"`
	SampleRate   *int   `json:"sample_rate,omitempty"`
	Channels     *int   `json:"channels,omitempty"`
	Filename     string `json:"filename,omitempty"`
}

// Validate performs domain-specific validation
func (r *ExtractRequest) Validate() error {
	if strings.TrimSpace(r.SourceURL) == "" {
		r.SourceURL = strings.TrimSpace(r.URL)
	}
	if r.SourceURL == "" {
		return errors.NewValidationError("Validation failed", map[string]string{"source_url": "is required"})
	}
	if r.OutputFormat == "" {
		r.OutputFormat = r.AudioFormat
	}
	return nil
}

// ExtractionDefaults fills fields the caller left out.
type ExtractionDefaults struct {
	Format     model.AudioFormat
	SampleRate int
	Channels   int
}

// ToModel builds the domain request. Range checks happen in the extractor.
func (r *ExtractRequest) ToModel(d ExtractionDefaults) model.ExtractionRequest {
	req := model.ExtractionRequest{
		SourceURL:  r.SourceURL,
		Format:     d.Format,
		SampleRate: d.SampleRate,
		Channels:   d.Channels,
		OutputName: r.Filename,
	}
	if r.OutputFormat != "" {
		req.Format = model.ParseAudioFormat(r.OutputFormat)
	}
	if r.SampleRate != nil {
		req.SampleRate = *r.SampleRate
	}
	if r.Channels != nil {
		req.Channels = *r.Channels
	}
	return req
}

// ExtractResponse is returned by POST /extract.
type ExtractResponse struct {
	ID          string              `json:"id"`
	FilePath    string              `json:"file_path"`
	DownloadURL string              `json:"download_url"`
	VideoTitle  string              `json:"video_title"`
	Duration    float64             `json:"duration"`
	VideoInfo   model.VideoMetadata `json:"video_info"`
	States      []string            `json:"states"`
	MirrorURL   string              `json:"mirror_url,omitempty"`
}

// InfoQuery is the query of GET /info.
type InfoQuery struct {
	URL string `form:"url" binding:"required"`
}

// HistoryQuery is the query of GET /history.
type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// HistoryResponse lists recent extractions, newest first.
type HistoryResponse struct {
	Records []model.ExtractionRecord `json:"records"`
	Count   int                      `json:"count"`
}

// FilesResponse lists finished output files.
type FilesResponse struct {
	Files []string `json:"files"`
}

// MessageResponse carries a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// ServiceInfo is served at GET /.
type ServiceInfo struct {
	Message       string            `json:"message"`
	Version       string            `json:"version"`
	Documentation string            `json:"documentation"`
	Endpoints     map[string]string `json:"endpoints"`
}
