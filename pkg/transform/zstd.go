package transform

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// zstdTransform uses the stateless EncodeAll/DecodeAll entry points, which
// are safe for concurrent use on a shared encoder and decoder.
type zstdTransform struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewZstdTransform returns a Zstandard transform at the given level.
func NewZstdTransform(level zstd.EncoderLevel) (Transform, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("zstd: failed to initialize encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: failed to initialize decoder: %w", err)
	}
	return &zstdTransform{encoder: enc, decoder: dec}, nil
}

func (z *zstdTransform) Apply(data []byte) ([]byte, error) {
	return z.encoder.EncodeAll(data, nil), nil
}

func (z *zstdTransform) Reverse(data []byte) ([]byte, error) {
	out, err := z.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd reverse (decompress): %w", err)
	}
	return out, nil
}
