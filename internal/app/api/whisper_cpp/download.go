package whisper_cpp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultModelBaseURL hosts the ggml model files published by whisper.cpp.
const DefaultModelBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// ModelDownloader fetches ggml model files over HTTP.
type ModelDownloader struct {
	BaseURL string
	Client  *http.Client
}

// NewModelDownloader returns a downloader for the public model mirror.
func NewModelDownloader() *ModelDownloader {
	return &ModelDownloader{
		BaseURL: DefaultModelBaseURL,
		Client:  &http.Client{Timeout: 30 * time.Minute},
	}
}

// Download writes the model named fileName to dest. The file is streamed to a
// temporary name in dest's directory and renamed once complete.
func (d *ModelDownloader) Download(ctx context.Context, fileName, dest string) error {
	url := strings.TrimRight(d.BaseURL, "/") + "/" + fileName

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.Client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	tmp := dest + "." + uuid.NewString() + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, dest)
}
