package model

import (
	"testing"
)

func TestToMetadata(t *testing.T) {
	views := int64(42)
	meta := VideoInfo{
		ID:         "dQw4w9WgXcQ",
		Title:      "title",
		Channel:    "channel only",
		Duration:   10.5,
		ViewCount:  &views,
		UploadDate: "20240131",
	}.ToMetadata()

	if meta.Author != "channel only" {
		t.Errorf("Author = %v, want channel fallback", meta.Author)
	}
	if meta.ViewCount != 42 {
		t.Errorf("ViewCount = %v, want 42", meta.ViewCount)
	}
	if meta.PublishDate == nil || *meta.PublishDate != "2024-01-31" {
		t.Errorf("PublishDate = %v, want 2024-01-31", meta.PublishDate)
	}
}

func Test_formatUploadDate(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"20091025", "2009-10-25", true},
		{"", "", false},
		{"2009-10-25", "", false},
		{"2009102X", "", false},
	}
	for _, tt := range tests {
		got, ok := formatUploadDate(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("formatUploadDate(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}
