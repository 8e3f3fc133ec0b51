package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yt2t/internal/app/model"
)

func TestNormalizeSegments(t *testing.T) {
	in := []model.TranscriptSegment{
		{Start: 1, End: 2, Text: "b"},
		{Start: 0, End: 1, Text: "a"},
		{Start: 1, End: 0.5, Text: "c"},
	}
	got := NormalizeSegments(in)

	assert.Equal(t, []model.TranscriptSegment{
		{Start: 0, End: 1, Text: "a"},
		{Start: 1, End: 2, Text: "b"},
		{Start: 1, End: 1, Text: "c"},
	}, got)
	assert.Equal(t, "b", in[0].Text, "input is not modified")
}

func TestJoinText(t *testing.T) {
	assert.Equal(t, "", JoinText(nil))
	assert.Equal(t, " Hello world.", JoinText([]model.TranscriptSegment{{Text: " Hello"}, {Text: " world."}}))
}
