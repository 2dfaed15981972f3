package transform

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// gzipTransform keeps a pool of writers at one level; report records are
// small and encoded one per Put.
type gzipTransform struct {
	level   int
	writers sync.Pool
}

// NewGzipTransform returns a gzip transform. Level 0 selects
// gzip.DefaultCompression; otherwise it must be a valid gzip level.
func NewGzipTransform(level int) (Transform, error) {
	if level == 0 {
		level = gzip.DefaultCompression
	}
	if _, err := gzip.NewWriterLevel(io.Discard, level); err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return &gzipTransform{level: level}, nil
}

func (g *gzipTransform) Apply(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz, ok := g.writers.Get().(*gzip.Writer)
	if ok {
		gz.Reset(&buf)
	} else {
		gz, _ = gzip.NewWriterLevel(&buf, g.level)
	}
	defer g.writers.Put(gz)

	if _, err := gz.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *gzipTransform) Reverse(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	defer gz.Close()
	out, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	return out, nil
}
