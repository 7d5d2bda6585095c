package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"telegram-midjourney-bot/internal/domain/ports/adapter"
	"telegram-midjourney-bot/internal/infra/metrics"
)

var _ adapter.ImageStore = (*ImageStore)(nil)

// ImageStore downloads result artifacts into a local temp directory so they
// can be re-uploaded to the chat, and removes them once sent.
type ImageStore struct {
	dir    string
	client *http.Client
}

func NewImageStore(dir string) (*ImageStore, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "midjourney-bot")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	return &ImageStore{
		dir:    dir,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (s *ImageStore) Download(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		metrics.IncDownloadFailure()
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		metrics.IncDownloadFailure()
		return "", fmt.Errorf("download image: http %d", resp.StatusCode)
	}

	name := "image_" + uuid.NewString() + extension(rawURL)
	dst := filepath.Join(s.dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		metrics.IncDownloadFailure()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return dst, nil
}

// Remove deletes a downloaded artifact; a file already gone is not an error.
func (s *ImageStore) Remove(p string) error {
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func extension(rawURL string) string {
	clean := strings.SplitN(rawURL, "?", 2)[0]
	if ext := path.Ext(clean); ext != "" && len(ext) <= 5 {
		return ext
	}
	return ".png"
}
