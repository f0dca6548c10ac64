package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/amaumene/jellysook/internal/domain"
)

const posterFilePattern = "jellysook_poster_*"

type posterDownloader struct {
	httpClient *http.Client
}

// NewPosterDownloader returns a downloader that stores image bytes in a
// transient file. The download is bounded by the given timeout.
func NewPosterDownloader(timeout time.Duration) domain.PosterDownloader {
	return &posterDownloader{
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (d *posterDownloader) Download(ctx context.Context, imageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("did not receive a 200 OK status, received %d", resp.StatusCode)
	}

	return writeTempFile(resp.Body)
}

func writeTempFile(body io.Reader) (string, error) {
	file, err := os.CreateTemp("", posterFilePattern)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("writing poster file: %w", err)
	}
	return file.Name(), nil
}
