package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"yt2t/internal/app/model"
	"yt2t/internal/app/util/files"
)

const (
	fallbackStem = "audio"
	partSuffix   = ".part"
)

// FinalName derives the output file name. An explicit name wins and is used
// as-is after sanitizing (a trailing matching extension is dropped). Otherwise
// the name is "<title>-<videoID>-<rate>hz-<channels>ch", without the title for
// untitled videos, so two profiles of one video never share a file.
func FinalName(req model.ExtractionRequest, meta model.VideoMetadata) string {
	ext := req.Format.Ext()
	id := files.SanitizeFilename(meta.ID, fallbackStem) + profileSuffix(req)

	if name := strings.TrimSpace(req.OutputName); name != "" {
		if strings.EqualFold(filepath.Ext(name), ext) {
			name = name[:len(name)-len(ext)]
		}
		if stem := files.SanitizeFilename(name, ""); stem != "" {
			return stem + ext
		}
	}

	if title := files.SanitizeFilename(meta.Title, ""); title != "" {
		return title + "-" + id + ext
	}
	return id + ext
}

func profileSuffix(req model.ExtractionRequest) string {
	return fmt.Sprintf("-%dhz-%dch", req.SampleRate, req.Channels)
}

// partName is the temporary name the encoder writes before the final rename.
func partName(finalName, extractionID string) string {
	return finalName + "." + extractionID + partSuffix
}
