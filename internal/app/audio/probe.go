package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"yt2t/internal/app/model"
)

// Inspect reads the first audio stream of path with ffprobe.
func (n *Normalizer) Inspect(ctx context.Context, path string) (model.AudioInfo, error) {
	output, err := n.runner.Output(ctx, n.ffprobePath,
		"-v", "quiet", "-print_format", "json", "-show_streams", "-show_format", path)
	if err != nil {
		return model.AudioInfo{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbeOutput(output)
}

func parseProbeOutput(output []byte) (model.AudioInfo, error) {
	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(output, &probeOutput); err != nil {
		return model.AudioInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	for _, stream := range probeOutput.Streams {
		if stream.CodecType != "audio" {
			continue
		}
		info := model.AudioInfo{
			Codec:         stream.CodecName,
			Container:     probeOutput.Format.FormatName,
			SampleRate:    stream.SampleRate,
			Channels:      stream.Channels,
			BitsPerSample: stream.BitsPerSample,
		}
		info.BitRate, _ = strconv.Atoi(stream.BitRate)
		if info.BitRate == 0 {
			info.BitRate, _ = strconv.Atoi(probeOutput.Format.BitRate)
		}
		info.DurationSeconds, _ = strconv.ParseFloat(probeOutput.Format.Duration, 64)
		return info, nil
	}

	return model.AudioInfo{}, fmt.Errorf("no audio stream found")
}
