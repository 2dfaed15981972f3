package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Pipeline applies its transforms 0..N when encoding and N..0 when decoding.
type Pipeline struct {
	transforms []Transform
}

// NewPipeline requires at least one transform. Use NewIdentityTransform() for
// a pipeline that leaves payloads unchanged.
func NewPipeline(transforms ...Transform) (*Pipeline, error) {
	if len(transforms) == 0 {
		return nil, errors.New("pipeline requires at least one transform; use NewIdentityTransform() for an empty pipeline")
	}
	return &Pipeline{transforms: append([]Transform(nil), transforms...)}, nil
}

func (p *Pipeline) Encode(payload []byte) ([]byte, error) {
	var err error
	for i, t := range p.transforms {
		if payload, err = t.Apply(payload); err != nil {
			return nil, fmt.Errorf("encode: transform %d (%T) failed: %w", i, t, err)
		}
	}
	return payload, nil
}

func (p *Pipeline) Decode(payload []byte) ([]byte, error) {
	var err error
	for i := len(p.transforms) - 1; i >= 0; i-- {
		t := p.transforms[i]
		if payload, err = t.Reverse(payload); err != nil {
			return nil, fmt.Errorf("decode: transform %d (%T) failed: %w", i, t, err)
		}
	}
	return payload, nil
}

// Compression names accepted by ForStore.
const (
	CompressionNone = "none"
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
)

// StoreOptions selects how report records are encoded at rest. Level is the
// codec's own compression level (gzip -3..9, zstd 1..22); zero selects the
// codec default.
type StoreOptions struct {
	Compression string
	Level       int
	Passphrase  string
}

// ForStore builds the record pipeline: compression first, then sealing when a
// passphrase is set.
func ForStore(opts StoreOptions) (*Pipeline, error) {
	var stages []Transform
	switch strings.ToLower(opts.Compression) {
	case "", CompressionZstd:
		level := zstd.SpeedDefault
		if opts.Level != 0 {
			if opts.Level < 1 || opts.Level > 22 {
				return nil, fmt.Errorf("zstd: invalid compression level %d", opts.Level)
			}
			level = zstd.EncoderLevelFromZstd(opts.Level)
		}
		z, err := NewZstdTransform(level)
		if err != nil {
			return nil, err
		}
		stages = append(stages, z)
	case CompressionGzip:
		gz, err := NewGzipTransform(opts.Level)
		if err != nil {
			return nil, err
		}
		stages = append(stages, gz)
	case CompressionNone:
		stages = append(stages, NewIdentityTransform())
	default:
		return nil, fmt.Errorf("unknown compression %q", opts.Compression)
	}
	if opts.Passphrase != "" {
		seal, err := NewAESGCMTransform(opts.Passphrase)
		if err != nil {
			return nil, err
		}
		stages = append(stages, seal)
	}
	return NewPipeline(stages...)
}
