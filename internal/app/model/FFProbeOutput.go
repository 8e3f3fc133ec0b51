package model

// FFProbeOutput is the subset of `ffprobe -print_format json -show_streams -show_format`
// that the normalizer reads back after encoding.
type FFProbeOutput struct {
	Streams []struct {
		CodecType     string `json:"codec_type"`
		CodecName     string `json:"codec_name"`
		SampleRate    int    `json:"sample_rate,string"`
		Channels      int    `json:"channels"`
		BitsPerSample int    `json:"bits_per_sample"`
		BitRate       string `json:"bit_rate,omitempty"`
	} `json:"streams"`
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
		BitRate    string `json:"bit_rate"`
	} `json:"format"`
}

// AudioInfo describes what an encoded file actually contains.
type AudioInfo struct {
	Codec           string  `json:"codec"`
	Container       string  `json:"container"`
	SampleRate      int     `json:"sample_rate"`
	Channels        int     `json:"channels"`
	BitsPerSample   int     `json:"bits_per_sample,omitempty"`
	BitRate         int     `json:"bit_rate,omitempty"`
	DurationSeconds float64 `json:"duration_seconds"`
}
