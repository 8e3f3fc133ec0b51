package provider

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"yt2t/internal/app/model"
)

// NormalizeSegments returns a copy of segs ordered by start time, keeping the
// engine's order for equal starts, with every End raised to at least Start.
func NormalizeSegments(segs []model.TranscriptSegment) []model.TranscriptSegment {
	out := lo.Map(segs, func(s model.TranscriptSegment, _ int) model.TranscriptSegment {
		if s.End < s.Start {
			s.End = s.Start
		}
		return s
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// JoinText concatenates segment texts in order. Engines keep their own
// leading whitespace, so no separator is added.
func JoinText(segs []model.TranscriptSegment) string {
	return strings.Join(lo.Map(segs, func(s model.TranscriptSegment, _ int) string { return s.Text }), "")
}
