// Package output writes the seed artifacts to disk.
package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
)

// streamMagic opens every snappy framed stream (the stream identifier chunk).
const streamMagic = "\xff\x06\x00\x00sNaPpY"

type writeOptions struct {
	snappy bool
	perm   os.FileMode
}

// Option configures WriteJSON.
type Option func(*writeOptions)

// WithSnappy compresses the document as a snappy framed stream.
func WithSnappy() Option {
	return func(o *writeOptions) { o.snappy = true }
}

// WithPerm sets the file mode of the written artifact (default 0644).
func WithPerm(perm os.FileMode) Option {
	return func(o *writeOptions) { o.perm = perm }
}

// Encode renders v as the artifact body: 2-space indent, no HTML or
// non-ASCII escaping, trailing newline.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes v to path, replacing any existing file atomically. It returns
// the number of uncompressed bytes in the document.
func WriteJSON(path string, v any, opts ...Option) (int64, error) {
	o := writeOptions{perm: 0o644}
	for _, opt := range opts {
		opt(&o)
	}

	body, err := Encode(v)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeBody(tmp, body, o.snappy); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Chmod(o.perm); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("failed to install %s: %w", path, err)
	}

	return int64(len(body)), nil
}

func writeBody(w io.Writer, body []byte, compress bool) error {
	if !compress {
		_, err := w.Write(body)
		return err
	}
	sw := snappy.NewBufferedWriter(w)
	if _, err := sw.Write(body); err != nil {
		sw.Close()
		return err
	}
	return sw.Close()
}

// ReadJSON decodes the artifact at path into v, decompressing snappy streams.
func ReadJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := Open(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// Open returns a reader over the plain JSON of an artifact stream.
func Open(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(streamMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if string(head) == streamMagic {
		return snappy.NewReader(br), nil
	}
	return br, nil
}
