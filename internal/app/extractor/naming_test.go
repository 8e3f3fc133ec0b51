package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"yt2t/internal/app/model"
)

func TestFinalName(t *testing.T) {
	meta := model.VideoMetadata{ID: "abc123DEF_-", Title: "My / Talk"}
	wav := model.ExtractionRequest{Format: model.FormatWAV, SampleRate: 16000, Channels: 1}
	withName := func(req model.ExtractionRequest, format model.AudioFormat, name string) model.ExtractionRequest {
		req.Format = format
		req.OutputName = name
		return req
	}

	tests := []struct {
		name string
		req  model.ExtractionRequest
		meta model.VideoMetadata
		want string
	}{
		{"title and id", wav, meta, "My _ Talk-abc123DEF_--16000hz-1ch.wav"},
		{"stereo profile", model.ExtractionRequest{Format: model.FormatMP3, SampleRate: 44100, Channels: 2}, meta, "My _ Talk-abc123DEF_--44100hz-2ch.mp3"},
		{"explicit name", withName(wav, model.FormatMP3, "episode"), meta, "episode.mp3"},
		{"explicit name with ext", withName(wav, model.FormatMP3, "episode.MP3"), meta, "episode.mp3"},
		{"explicit other ext kept", withName(wav, model.FormatWAV, "episode.mp3"), meta, "episode.mp3.wav"},
		{"empty title", wav, model.VideoMetadata{ID: "abc"}, "abc-16000hz-1ch.wav"},
		{"blank explicit", withName(wav, model.FormatWAV, "  "), meta, "My _ Talk-abc123DEF_--16000hz-1ch.wav"},
		{"dots only", withName(wav, model.FormatWAV, ".."), model.VideoMetadata{ID: "abc"}, "abc-16000hz-1ch.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinalName(tt.req, tt.meta))
		})
	}
}

func TestFinalNameDiffersPerProfile(t *testing.T) {
	meta := model.VideoMetadata{ID: "dQw4w9WgXcQ", Title: "Song"}
	mono := FinalName(model.ExtractionRequest{Format: model.FormatWAV, SampleRate: 16000, Channels: 1}, meta)
	stereo := FinalName(model.ExtractionRequest{Format: model.FormatWAV, SampleRate: 44100, Channels: 2}, meta)
	resampled := FinalName(model.ExtractionRequest{Format: model.FormatWAV, SampleRate: 44100, Channels: 1}, meta)

	assert.NotEqual(t, mono, stereo)
	assert.NotEqual(t, stereo, resampled)
	assert.NotEqual(t, mono, resampled)
}

func TestFinalNameNeverEscapes(t *testing.T) {
	for _, title := range []string{"../../etc/passwd", "a\\b", "\x00", "/", ".hidden"} {
		got := FinalName(model.ExtractionRequest{Format: model.FormatWAV}, model.VideoMetadata{ID: "x", Title: title})
		assert.NotContains(t, got, "/")
		assert.NotContains(t, got, "\\")
		assert.False(t, strings.HasPrefix(got, "."), got)
	}
}

func TestPartName(t *testing.T) {
	assert.Equal(t, "a.wav.id1.part", partName("a.wav", "id1"))
}
