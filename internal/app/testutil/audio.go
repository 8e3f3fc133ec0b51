package testutil

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"yt2t/internal/app/util/command"
)

// WriteWAV writes a 16-bit PCM WAV of silence-with-a-ramp to path.
func WriteWAV(t testing.TB, path string, sampleRate, channels int, seconds float64) {
	t.Helper()
	if err := writeWAV(path, sampleRate, channels, 16, seconds); err != nil {
		t.Fatalf("write wav fixture: %v", err)
	}
}

func writeWAV(path string, sampleRate, channels, bitDepth int, seconds float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	frames := int(float64(sampleRate) * seconds)
	data := make([]int, frames*channels)
	for i := range data {
		data[i] = (i % 200) - 100
	}

	encoder := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return err
	}
	return encoder.Close()
}

// FFmpegBehavior tweaks what FakeFFmpeg produces.
type FFmpegBehavior struct {
	// Stderr, when set, makes the ffmpeg call fail with this stderr.
	Stderr string
	// RateOverride writes a different sample rate than requested.
	RateOverride int
	// ChannelsOverride writes a different channel count than requested.
	ChannelsOverride int
}

// FakeFFmpeg returns a command.Fake handler that behaves like ffmpeg for WAV
// output: it reads -ar/-ac from the arguments and writes a matching WAV to the
// last argument. Other binaries succeed with empty output.
func FakeFFmpeg(behavior FFmpegBehavior) func(ctx context.Context, name string, args []string) ([]byte, error) {
	return func(ctx context.Context, name string, args []string) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if name != "ffmpeg" || len(args) == 0 || args[0] == "-version" {
			return nil, nil
		}
		if behavior.Stderr != "" {
			return nil, &command.Error{Name: name, Err: errors.New("exit status 1"), Stderr: behavior.Stderr}
		}

		rate, _ := strconv.Atoi(command.ArgAfter(args, "-ar"))
		channels, _ := strconv.Atoi(command.ArgAfter(args, "-ac"))
		if behavior.RateOverride > 0 {
			rate = behavior.RateOverride
		}
		if behavior.ChannelsOverride > 0 {
			channels = behavior.ChannelsOverride
		}

		output := args[len(args)-1]
		if err := writeWAV(output, rate, channels, 16, 0.25); err != nil {
			return nil, &command.Error{Name: name, Err: err, Stderr: output + ": " + err.Error()}
		}
		return nil, nil
	}
}
