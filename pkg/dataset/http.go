package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// KaggleAPIBase is the dataset download endpoint of the Kaggle public API.
const KaggleAPIBase = "https://www.kaggle.com/api/v1/datasets/download/"

// DefaultKaggleDataset is the Netflix userbase dataset.
const DefaultKaggleDataset = "riturajsingh99/netflix-userbase"

// HTTPSource downloads the dataset over HTTP(S). Zipped payloads are unpacked.
type HTTPSource struct {
	URL      string
	Username string // basic auth, optional
	Password string
	CacheDir string // when set, payloads are cached by URL and reused
	Client   *http.Client
}

// NewKaggleSource builds an HTTPSource for a Kaggle dataset handle "<owner>/<dataset>".
func NewKaggleSource(handle, username, key, cacheDir string, client *http.Client) (*HTTPSource, error) {
	owner, name, ok := strings.Cut(strings.Trim(handle, "/"), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("%w: %q", ErrBadKaggleRef, handle)
	}
	return &HTTPSource{
		URL:      KaggleAPIBase + url.PathEscape(owner) + "/" + url.PathEscape(name),
		Username: username,
		Password: key,
		CacheDir: cacheDir,
		Client:   client,
	}, nil
}

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, string, error) {
	payload, err := s.payload(ctx)
	if err != nil {
		return nil, "", err
	}
	return csvFromPayload(payload, s.fileName())
}

func (s *HTTPSource) fileName() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return "dataset.csv"
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return "dataset.csv"
	}
	if path.Ext(base) == "" {
		base += ".csv"
	}
	return base
}

func (s *HTTPSource) cachePath() string {
	sum := sha256.Sum256([]byte(s.URL))
	return filepath.Join(s.CacheDir, hex.EncodeToString(sum[:8])+".download")
}

func (s *HTTPSource) payload(ctx context.Context) ([]byte, error) {
	if s.CacheDir != "" {
		if data, err := os.ReadFile(s.cachePath()); err == nil {
			return data, nil
		}
	}

	data, err := s.download(ctx)
	if err != nil {
		return nil, err
	}

	if s.CacheDir != "" {
		if err := writeCache(s.CacheDir, s.cachePath(), data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (s *HTTPSource) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if s.Username != "" || s.Password != "" {
		req.SetBasicAuth(s.Username, s.Password)
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: s.URL}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", s.URL, err)
	}
	return data, nil
}

func writeCache(dir, target string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to install cache file: %w", err)
	}
	return nil
}
