package textureformats

import "github.com/pkg/errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported texture format")
	ErrInvalidDimensions = errors.New("invalid texture dimensions")
	ErrSourceTruncated   = errors.New("source buffer truncated")
	ErrDestinationSize   = errors.New("destination buffer size mismatch")
)
