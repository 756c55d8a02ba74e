package source

import (
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

const (
	CompressionNone = "none"
	// GX games keep most textures in zlib streams (ZLB archives)
	CompressionZlib = "zlib"
	CompressionZstd = "zstd"
)

var ErrPayloadTooLarge = errors.New("payload too large")

func Compressions() []string {
	return []string{CompressionNone, CompressionZlib, CompressionZstd}
}

func ValidCompression(compression string) bool {
	switch compression {
	case "", CompressionNone, CompressionZlib, CompressionZstd:
		return true
	}
	return false
}

// Load reads the whole payload from r, decompressing it if required.
// limit applies to decompressed size, zero or negative means no limit.
func Load(r io.Reader, compression string, limit int64) ([]byte, error) {
	var in io.Reader

	switch compression {
	case "", CompressionNone:
		in = r
	case CompressionZlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to open zlib stream")
		}
		defer zr.Close()
		in = zr
	case CompressionZstd:
		dec, err := zstd.NewReader(r,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true))
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to open zstd stream")
		}
		defer dec.Close()
		in = dec
	default:
		return nil, errors.Errorf("Unknown compression %q", compression)
	}

	if limit > 0 {
		in = io.LimitReader(in, limit+1)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read %s payload", compression)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrPayloadTooLarge, "Payload is over 0x%x bytes", limit)
	}
	return data, nil
}
