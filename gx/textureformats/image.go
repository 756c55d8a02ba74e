package textureformats

import (
	"image"
)

// ToImage wraps decoded pixels without copying. Alpha is not premultiplied.
func ToImage(pix []byte, width, height int) *image.NRGBA {
	return &image.NRGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
}

func DecodeImage(f Format, src []byte, width, height int) (*image.NRGBA, error) {
	pix, err := Decode(f, src, width, height)
	if err != nil {
		return nil, err
	}
	return ToImage(pix, width, height), nil
}
