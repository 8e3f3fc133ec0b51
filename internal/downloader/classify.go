package downloader

import (
	"context"
	"strings"

	"github.com/samber/lo"

	apperrors "yt2t/internal/app/errors"
	"yt2t/internal/app/util/command"
)

var unsupportedMarkers = []string{
	"unsupported url",
	"is not a valid url",
}

// Checked before the network markers: "unable to download webpage: HTTP Error
// 404" is a missing video, not a flaky network.
var unavailableMarkers = []string{
	"video unavailable",
	"this video is unavailable",
	"this video is not available",
	"private video",
	"has been removed",
	"account associated with this video has been terminated",
	"available in your country",
	"blocked it in your country",
	"geo-restricted",
	"geo restricted",
	"http error 403",
	"http error 404",
	"http error 410",
	"sign in to confirm your age",
	"age-restricted",
	"members-only",
	"join this channel",
	"premieres in",
	"requested format is not available",
	"no video formats found",
	"copyright",
}

var networkMarkers = []string{
	"unable to download webpage",
	"unable to download api page",
	"urlopen error",
	"connection reset",
	"connection refused",
	"connection aborted",
	"timed out",
	"name or service not known",
	"temporary failure in name resolution",
	"nodename nor servname provided",
	"getaddrinfo failed",
	"network is unreachable",
	"remote end closed connection",
	"ssl:",
	"http error 429",
	"http error 5",
	"incompleteread",
}

// classifyYtDlpError maps a failed yt-dlp run onto the fetch taxonomy.
// A cancelled or expired context is reported as a network error.
func classifyYtDlpError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return apperrors.Kind(apperrors.ErrNetwork, err)
	}

	stderr := command.Stderr(err)
	if stderr == "" {
		// yt-dlp never ran (missing binary, exec failure).
		return apperrors.Wrap(err, "yt-dlp")
	}

	lower := strings.ToLower(stderr)
	switch {
	case containsAny(lower, unsupportedMarkers):
		return apperrors.Kind(apperrors.ErrUnsupportedSource, err)
	case containsAny(lower, unavailableMarkers):
		return apperrors.Kind(apperrors.ErrSourceUnavailable, err)
	case containsAny(lower, networkMarkers):
		return apperrors.Kind(apperrors.ErrNetwork, err)
	default:
		return apperrors.Kind(apperrors.ErrSourceUnavailable, err)
	}
}

func containsAny(s string, markers []string) bool {
	return lo.ContainsBy(markers, func(marker string) bool {
		return strings.Contains(s, marker)
	})
}
