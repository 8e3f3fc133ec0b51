package model

import (
	"fmt"

	appmodel "yt2t/internal/app/model"
)

// VideoInfo is the subset of yt-dlp's --dump-json output that we read.
type VideoInfo struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Uploader   string  `json:"uploader"`
	Channel    string  `json:"channel"`
	Duration   float64 `json:"duration"`
	ViewCount  *int64  `json:"view_count"`
	UploadDate string  `json:"upload_date"`
	Thumbnail  string  `json:"thumbnail"`
	WebpageURL string  `json:"webpage_url"`
	Ext        string  `json:"ext"`
	Filename   string  `json:"_filename"`
}

// ToMetadata maps yt-dlp fields onto VideoMetadata without reinterpreting them.
func (v VideoInfo) ToMetadata() appmodel.VideoMetadata {
	meta := appmodel.VideoMetadata{
		ID:              v.ID,
		Title:           v.Title,
		Author:          v.Uploader,
		DurationSeconds: v.Duration,
		ThumbnailURL:    v.Thumbnail,
		WebpageURL:      v.WebpageURL,
	}
	if meta.Author == "" {
		meta.Author = v.Channel
	}
	if v.ViewCount != nil {
		meta.ViewCount = *v.ViewCount
	}
	if date, ok := formatUploadDate(v.UploadDate); ok {
		meta.PublishDate = &date
	}
	return meta
}

// formatUploadDate turns yt-dlp's YYYYMMDD into YYYY-MM-DD.
func formatUploadDate(raw string) (string, bool) {
	if len(raw) != 8 {
		return "", false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return fmt.Sprintf("%s-%s-%s", raw[:4], raw[4:6], raw[6:]), true
}
