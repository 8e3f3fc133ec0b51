package downloader

import (
	"net/url"
	"regexp"
	"strings"

	apperrors "yt2t/internal/app/errors"
)

var videoIDRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var youtubeHosts = map[string]bool{
	"youtube.com":              true,
	"www.youtube.com":          true,
	"m.youtube.com":            true,
	"music.youtube.com":        true,
	"youtu.be":                 true,
	"www.youtu.be":             true,
	"youtube-nocookie.com":     true,
	"www.youtube-nocookie.com": true,
}

// pathPrefixes are the path forms that carry the id as the next segment.
var pathPrefixes = []string{"/shorts/", "/embed/", "/live/", "/v/"}

// ParseVideoURL checks that raw is a YouTube video link and returns its id.
// It never touches the network.
func ParseVideoURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", apperrors.Kindf(apperrors.ErrUnsupportedSource, "malformed URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", apperrors.Kindf(apperrors.ErrUnsupportedSource, "URL scheme must be http or https: %q", raw)
	}

	host := strings.ToLower(u.Hostname())
	if !youtubeHosts[host] {
		return "", apperrors.Kindf(apperrors.ErrUnsupportedSource, "%s is not a YouTube host", host)
	}

	var id string
	switch {
	case strings.HasSuffix(host, "youtu.be"):
		id = firstSegment(u.Path)
	case u.Path == "/watch":
		id = u.Query().Get("v")
	default:
		for _, prefix := range pathPrefixes {
			if strings.HasPrefix(u.Path, prefix) {
				id = firstSegment(strings.TrimPrefix(u.Path, prefix))
				break
			}
		}
	}

	if !videoIDRegexp.MatchString(id) {
		return "", apperrors.Kindf(apperrors.ErrUnsupportedSource, "no video id in %q", raw)
	}
	return id, nil
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}
