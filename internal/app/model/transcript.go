package model

// TranscriptSegment is a timed span of recognized speech, in seconds.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
