package downloader

import (
	"errors"
	"testing"

	apperrors "yt2t/internal/app/errors"
)

func TestParseVideoURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "watch", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch with extra params", url: "https://youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=42s", want: "dQw4w9WgXcQ"},
		{name: "mobile", url: "https://m.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "music", url: "https://music.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short link", url: "https://youtu.be/dQw4w9WgXcQ?si=abc", want: "dQw4w9WgXcQ"},
		{name: "shorts", url: "https://www.youtube.com/shorts/aBcD_-12345", want: "aBcD_-12345"},
		{name: "embed", url: "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "live", url: "https://www.youtube.com/live/dQw4w9WgXcQ?feature=share", want: "dQw4w9WgXcQ"},
		{name: "http and uppercase host", url: "http://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "other platform", url: "https://vimeo.com/123456", wantErr: true},
		{name: "lookalike host", url: "https://youtube.com.evil.example/watch?v=dQw4w9WgXcQ", wantErr: true},
		{name: "ftp scheme", url: "ftp://youtube.com/watch?v=dQw4w9WgXcQ", wantErr: true},
		{name: "channel page", url: "https://www.youtube.com/@RickAstleyYT", wantErr: true},
		{name: "playlist only", url: "https://www.youtube.com/playlist?list=PL123", wantErr: true},
		{name: "short id", url: "https://youtu.be/abc", wantErr: true},
		{name: "not a url", url: "never gonna give you up", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoURL(tt.url)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrUnsupportedSource) {
					t.Errorf("ParseVideoURL(%q) error = %v, want UnsupportedSource", tt.url, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVideoURL(%q) unexpected error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ParseVideoURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
