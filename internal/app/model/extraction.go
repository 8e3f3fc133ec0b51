package model

import (
	"strings"
	"time"
)

// AudioFormat is a target container for normalized audio.
type AudioFormat string

const (
	FormatWAV AudioFormat = "wav"
	FormatMP3 AudioFormat = "mp3"
)

// SupportedFormats lists the containers the normalizer can produce.
var SupportedFormats = []AudioFormat{FormatWAV, FormatMP3}

// ParseAudioFormat lower-cases s; it does not validate.
func ParseAudioFormat(s string) AudioFormat {
	return AudioFormat(strings.ToLower(strings.TrimSpace(s)))
}

// Ext returns the file extension including the dot.
func (f AudioFormat) Ext() string {
	return "." + string(f)
}

// ExtractionRequest is submitted once and never mutated.
type ExtractionRequest struct {
	SourceURL  string
	Format     AudioFormat
	SampleRate int
	Channels   int
	OutputName string
}

// VideoMetadata is sourced verbatim from the fetch step.
type VideoMetadata struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	DurationSeconds float64 `json:"length_seconds"`
	ViewCount       int64   `json:"views"`
	PublishDate     *string `json:"publish_date"`
	ThumbnailURL    string  `json:"thumbnail_url"`
	WebpageURL      string  `json:"webpage_url,omitempty"`
}

// ExtractionStatus is the terminal outcome stored in history.
type ExtractionStatus string

const (
	ExtractionDone   ExtractionStatus = "done"
	ExtractionFailed ExtractionStatus = "failed"
)

// ExtractionRecord is one row of extraction history.
type ExtractionRecord struct {
	ID           int64            `json:"id"`
	SourceURL    string           `json:"source_url"`
	VideoID      string           `json:"video_id,omitempty"`
	Title        string           `json:"title,omitempty"`
	Format       AudioFormat      `json:"format"`
	SampleRate   int              `json:"sample_rate"`
	Channels     int              `json:"channels"`
	FilePath     string           `json:"file_path,omitempty"`
	Status       ExtractionStatus `json:"status"`
	ErrorCode    string           `json:"error_code,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`
	DurationMs   int64            `json:"duration_ms"`
	CreatedAt    time.Time        `json:"created_at"`
}
