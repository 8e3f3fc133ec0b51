package audio

import (
	"context"
	"os"

	"github.com/go-audio/wav"

	apperrors "yt2t/internal/app/errors"
	"yt2t/internal/app/model"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag in the fmt chunk.
const wavFormatPCM = 1

// Validate checks that the file at path materializes the target profile in
// its own header. Any mismatch is an encode error.
func (n *Normalizer) Validate(ctx context.Context, path string, format model.AudioFormat, sampleRate, channels int) error {
	switch format {
	case model.FormatWAV:
		return validateWAV(path, sampleRate, channels)
	case model.FormatMP3:
		info, err := n.Inspect(ctx, path)
		if err != nil {
			return apperrors.Kind(apperrors.ErrEncode, err)
		}
		if info.Codec != "mp3" {
			return apperrors.Kindf(apperrors.ErrEncode, "expected mp3 stream, got %q", info.Codec)
		}
		return checkProfile(info.SampleRate, info.Channels, sampleRate, channels)
	default:
		return apperrors.Kindf(apperrors.ErrUnsupportedFormat, "%q is not one of wav, mp3", string(format))
	}
}

// ReadWAVHeader returns the header fields of a WAV file.
func ReadWAVHeader(path string) (model.AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.AudioInfo{}, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		if err := decoder.Err(); err != nil {
			return model.AudioInfo{}, err
		}
		return model.AudioInfo{}, apperrors.New("not a valid WAV file")
	}

	info := model.AudioInfo{
		Codec:         "pcm",
		Container:     "wav",
		SampleRate:    int(decoder.SampleRate),
		Channels:      int(decoder.NumChans),
		BitsPerSample: int(decoder.BitDepth),
	}
	if decoder.WavAudioFormat != wavFormatPCM {
		info.Codec = "non-pcm"
	}
	if d, err := decoder.Duration(); err == nil {
		info.DurationSeconds = d.Seconds()
	}
	return info, nil
}

func validateWAV(path string, sampleRate, channels int) error {
	info, err := ReadWAVHeader(path)
	if err != nil {
		return apperrors.Kind(apperrors.ErrEncode, err)
	}
	if info.Codec != "pcm" || info.BitsPerSample != 16 {
		return apperrors.Kindf(apperrors.ErrEncode, "expected 16-bit PCM, got %s/%d-bit", info.Codec, info.BitsPerSample)
	}
	return checkProfile(info.SampleRate, info.Channels, sampleRate, channels)
}

func checkProfile(gotRate, gotChannels, wantRate, wantChannels int) error {
	if gotRate != wantRate {
		return apperrors.Kindf(apperrors.ErrEncode, "header sample rate %d, want %d", gotRate, wantRate)
	}
	if gotChannels != wantChannels {
		return apperrors.Kindf(apperrors.ErrEncode, "header channels %d, want %d", gotChannels, wantChannels)
	}
	return nil
}
