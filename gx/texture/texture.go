package texture

import (
	"fmt"
	"image"

	"github.com/pkg/errors"

	"github.com/mogaika/gxtex/gx/textureformats"
	"github.com/mogaika/gxtex/utils"
)

// Texture is one GX texture level: format, size and its raw payload.
type Texture struct {
	Name     string
	Format   textureformats.Format
	Width    int
	Height   int
	DataSize int
	// bytes after the level, usually smaller mipmaps
	TrailingSize int

	data []byte
}

// New cuts the level payload out of data. Data beyond the level is kept
// aside and never decoded.
func New(name string, f textureformats.Format, width, height int, data []byte) (*Texture, error) {
	required, err := textureformats.RequiredSourceLength(f, width, height)
	if err != nil {
		return nil, errors.Wrapf(err, "Texture %q", name)
	}
	if len(data) < required {
		return nil, errors.Wrapf(textureformats.ErrSourceTruncated,
			"Texture %q: %v %dx%d needs 0x%x bytes, got 0x%x", name, f, width, height, required, len(data))
	}

	bs := utils.NewBufStack("texture", data)
	payload := bs.SubBuf("level0", 0).SetSize(required)

	return &Texture{
		Name:         name,
		Format:       f,
		Width:        width,
		Height:       height,
		DataSize:     payload.Size(),
		TrailingSize: len(data) - payload.Size(),
		data:         payload.Raw(),
	}, nil
}

// NewFromGXID resolves hardware format id first.
func NewFromGXID(name string, gxid uint8, width, height int, data []byte) (*Texture, error) {
	f, err := textureformats.FormatFromGXID(gxid)
	if err != nil {
		return nil, errors.Wrapf(err, "Texture %q", name)
	}
	return New(name, f, width, height, data)
}

func (t *Texture) Data() []byte {
	return t.data
}

func (t *Texture) RGBA() ([]byte, error) {
	pix, err := textureformats.Decode(t.Format, t.data, t.Width, t.Height)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to decode texture %q", t.Name)
	}
	return pix, nil
}

func (t *Texture) Image() (*image.NRGBA, error) {
	pix, err := t.RGBA()
	if err != nil {
		return nil, err
	}
	return textureformats.ToImage(pix, t.Width, t.Height), nil
}

func (t *Texture) String() string {
	return fmt.Sprintf("%s<%v %dx%d data:0x%x trailing:0x%x>",
		t.Name, t.Format, t.Width, t.Height, t.DataSize, t.TrailingSize)
}
