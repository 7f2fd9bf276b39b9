package progress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"instarecipe/internal/structures"
)

type Compressor interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

// zstdMagic is the frame header every zstd stream starts with. Load uses it
// to detect compression regardless of the configured compress flag, so
// flipping the flag between runs never loses the progress file.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

func isZstd(data []byte) bool {
	return len(data) >= 4 &&
		data[0] == zstdMagic[0] && data[1] == zstdMagic[1] &&
		data[2] == zstdMagic[2] && data[3] == zstdMagic[3]
}

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompression) Close() {
	z.encoder.Close()
	z.decoder.Close()
}

func NewZstdCompressor() (Compressor, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

// NewCompressor picks the progress file codec from config. The export
// carries its own codec, so the flags stay independent.
func NewCompressor(conf *structures.Config) (Compressor, error) {
	if conf.Progress.Compress {
		return NewZstdCompressor()
	}
	return &NoopCompressor{}, nil
}

type NoopCompressor struct{}

func (n *NoopCompressor) Compress(val []byte) ([]byte, error)   { return val, nil }
func (n *NoopCompressor) Decompress(val []byte) ([]byte, error) { return val, nil }
func (n *NoopCompressor) Close()                                {}
