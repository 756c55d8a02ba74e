package textureformats

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Format is a GX texture format this package knows how to decode.
type Format int

const (
	I4 Format = iota
	I8
	IA4
	IA8
	CMPR

	formatsCount
)

// Descriptor is the storage layout of a format.
type Descriptor struct {
	Name         string
	GXID         uint8
	TileWidth    int
	TileHeight   int
	BitsPerPixel int
}

var descriptors = [formatsCount]Descriptor{
	I4:   {Name: "I4", GXID: 0x0, TileWidth: 8, TileHeight: 8, BitsPerPixel: 4},
	I8:   {Name: "I8", GXID: 0x1, TileWidth: 8, TileHeight: 4, BitsPerPixel: 8},
	IA4:  {Name: "IA4", GXID: 0x2, TileWidth: 8, TileHeight: 4, BitsPerPixel: 8},
	IA8:  {Name: "IA8", GXID: 0x3, TileWidth: 4, TileHeight: 4, BitsPerPixel: 16},
	CMPR: {Name: "CMPR", GXID: 0xe, TileWidth: 8, TileHeight: 8, BitsPerPixel: 4},
}

// decodeFunc writes width*height RGBA8 pixels into dst.
// Sizes are validated by the caller.
type decodeFunc func(dst, src []byte, width, height int)

var decoders = [formatsCount]decodeFunc{
	I4:   tiledDecoder(I4, sampleI4),
	I8:   tiledDecoder(I8, sampleI8),
	IA4:  tiledDecoder(IA4, sampleIA4),
	IA8:  tiledDecoder(IA8, sampleIA8),
	CMPR: decodeCMPR,
}

func (f Format) Valid() bool {
	return f >= 0 && f < formatsCount
}

// Descriptor returns zero Descriptor for unknown formats.
func (f Format) Descriptor() Descriptor {
	if !f.Valid() {
		return Descriptor{}
	}
	return descriptors[f]
}

func (f Format) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return descriptors[f].Name
}

func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "Failed to marshal %v", f)
	}
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Formats lists supported formats ordered by GX id.
func Formats() []Format {
	list := make([]Format, formatsCount)
	for i := range list {
		list[i] = Format(i)
	}
	return list
}

// ParseFormat looks format up by name, case insensitive.
func ParseFormat(name string) (Format, error) {
	for f, d := range descriptors {
		if strings.EqualFold(d.Name, strings.TrimSpace(name)) {
			return Format(f), nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedFormat, "Unknown format name %q", name)
}

// FormatFromGXID maps hardware texture format id (GX_TF_*) to Format.
func FormatFromGXID(id uint8) (Format, error) {
	for f, d := range descriptors {
		if d.GXID == id {
			return Format(f), nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedFormat, "Unknown gx format id 0x%x", id)
}

func ValidateDimensions(f Format, width, height int) error {
	if !f.Valid() {
		return errors.Wrapf(ErrUnsupportedFormat, "Cannot validate %v", f)
	}
	d := descriptors[f]
	if width <= 0 || height <= 0 || width%d.TileWidth != 0 || height%d.TileHeight != 0 {
		return errors.Wrapf(ErrInvalidDimensions, "%s size %dx%d is not a multiple of %dx%d tile",
			d.Name, width, height, d.TileWidth, d.TileHeight)
	}
	// 32 bits per decoded pixel bounds every size computed from width*height
	if width > math.MaxInt/32/height {
		return errors.Wrapf(ErrInvalidDimensions, "%s size %dx%d is too large", d.Name, width, height)
	}
	return nil
}

// RequiredSourceLength returns amount of source bytes a decode consumes.
func RequiredSourceLength(f Format, width, height int) (int, error) {
	if err := ValidateDimensions(f, width, height); err != nil {
		return 0, err
	}
	return width * height * descriptors[f].BitsPerPixel / 8, nil
}

// Decode returns width*height RGBA8 pixels, row-major, 4 bytes per pixel.
// Bytes of src past RequiredSourceLength are ignored.
func Decode(f Format, src []byte, width, height int) ([]byte, error) {
	if _, err := checkSource(f, src, width, height); err != nil {
		return nil, err
	}
	dst := make([]byte, width*height*4)
	decoders[f](dst, src, width, height)
	return dst, nil
}

// DecodeInto overwrites dst, which must be exactly width*height*4 bytes.
// Nothing is written when an error is returned.
func DecodeInto(f Format, dst, src []byte, width, height int) error {
	if _, err := checkSource(f, src, width, height); err != nil {
		return err
	}
	if len(dst) != width*height*4 {
		return errors.Wrapf(ErrDestinationSize, "%v %dx%d needs 0x%x bytes, got 0x%x",
			f, width, height, width*height*4, len(dst))
	}
	decoders[f](dst, src, width, height)
	return nil
}

func checkSource(f Format, src []byte, width, height int) (int, error) {
	required, err := RequiredSourceLength(f, width, height)
	if err != nil {
		return 0, err
	}
	if len(src) < required {
		return 0, errors.Wrapf(ErrSourceTruncated, "%v %dx%d needs 0x%x bytes, got 0x%x",
			f, width, height, required, len(src))
	}
	return required, nil
}

func DecodeCMPR(src []byte, width, height int) ([]byte, error) {
	return Decode(CMPR, src, width, height)
}

func DecodeI4(src []byte, width, height int) ([]byte, error) {
	return Decode(I4, src, width, height)
}

func DecodeI8(src []byte, width, height int) ([]byte, error) {
	return Decode(I8, src, width, height)
}

func DecodeIA4(src []byte, width, height int) ([]byte, error) {
	return Decode(IA4, src, width, height)
}

func DecodeIA8(src []byte, width, height int) ([]byte, error) {
	return Decode(IA8, src, width, height)
}
