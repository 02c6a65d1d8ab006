package dataset

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/mmap"
)

// Source yields the raw CSV stream of the dataset and the file name it came from.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, string, error)
}

// SourceOptions carries what ParseSource needs to build a remote source.
type SourceOptions struct {
	KaggleUsername string
	KaggleKey      string
	CacheDir       string
	HTTPClient     *http.Client
	S3             ObjectGetter
}

// ParseSource selects a Source from uri:
//
//	kaggle://owner/dataset
//	s3://bucket/key
//	http(s)://host/path
//	anything else is a local file or directory
func ParseSource(uri string, opts SourceOptions) (Source, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, fmt.Errorf("%w: empty source", ErrUnsupported)
	}

	scheme, rest, hasScheme := strings.Cut(uri, "://")
	if !hasScheme {
		return &FileSource{Path: uri}, nil
	}

	switch strings.ToLower(scheme) {
	case "kaggle":
		src, err := NewKaggleSource(rest, opts.KaggleUsername, opts.KaggleKey, opts.CacheDir, opts.HTTPClient)
		if err != nil {
			return nil, err
		}
		return src, nil
	case "s3":
		if opts.S3 == nil {
			return nil, fmt.Errorf("%w: s3 source requires an S3 client", ErrUnsupported)
		}
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || key == "" {
			return nil, fmt.Errorf("%w: s3 uri must be s3://bucket/key, got %q", ErrUnsupported, uri)
		}
		return &S3Source{Client: opts.S3, Bucket: bucket, Key: key}, nil
	case "http", "https":
		if _, err := url.Parse(uri); err != nil {
			return nil, fmt.Errorf("invalid source url: %w", err)
		}
		return &HTTPSource{URL: uri, CacheDir: opts.CacheDir, Client: opts.HTTPClient}, nil
	case "file":
		return &FileSource{Path: rest}, nil
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupported, scheme)
	}
}

// FileSource reads a local CSV file, or the first *.csv (lexical order) in a directory.
type FileSource struct {
	Path string
}

func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	target := s.Path
	info, err := os.Stat(target)
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat source: %w", err)
	}
	if info.IsDir() {
		matches, err := filepath.Glob(filepath.Join(target, "*.csv"))
		if err != nil {
			return nil, "", fmt.Errorf("failed to list %s: %w", target, err)
		}
		if len(matches) == 0 {
			return nil, "", fmt.Errorf("%w in %s", ErrNoCSV, target)
		}
		sort.Strings(matches)
		target = matches[0]
	}

	ra, err := mmap.Open(target)
	if err != nil {
		return nil, "", fmt.Errorf("failed to map %s: %w", target, err)
	}
	return &mappedFile{
		SectionReader: io.NewSectionReader(ra, 0, int64(ra.Len())),
		ra:            ra,
	}, filepath.Base(target), nil
}

type mappedFile struct {
	*io.SectionReader
	ra *mmap.ReaderAt
}

func (m *mappedFile) Close() error {
	return m.ra.Close()
}

// zipMagic opens every local file header; Kaggle serves datasets zipped.
var zipMagic = []byte("PK\x03\x04")

// csvFromPayload returns the CSV inside payload. A ZIP archive yields its first
// *.csv member (lexical order); anything else is taken as CSV text named fallbackName.
func csvFromPayload(payload []byte, fallbackName string) (io.ReadCloser, string, error) {
	if !bytes.HasPrefix(payload, zipMagic) {
		return io.NopCloser(bytes.NewReader(payload)), fallbackName, nil
	}

	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to open archive: %w", err)
	}

	var members []*zip.File
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() && strings.EqualFold(path.Ext(f.Name), ".csv") {
			members = append(members, f)
		}
	}
	if len(members) == 0 {
		return nil, "", fmt.Errorf("%w in archive", ErrNoCSV)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })

	rc, err := members[0].Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", members[0].Name, err)
	}
	return rc, path.Base(members[0].Name), nil
}
