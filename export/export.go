package export

import (
	"image"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"github.com/mogaika/gxtex/gx/texture"
)

const (
	OutputPNG  = "png"
	OutputBMP  = "bmp"
	OutputGLTF = "gltf"
	// tightly packed RGBA8 as the decoder produces it
	OutputRGBA = "rgba"
)

func Outputs() []string {
	return []string{OutputPNG, OutputBMP, OutputGLTF, OutputRGBA}
}

func ValidOutput(output string) bool {
	switch output {
	case OutputPNG, OutputBMP, OutputGLTF, OutputRGBA:
		return true
	}
	return false
}

func ContentType(output string) string {
	switch output {
	case OutputPNG:
		return "image/png"
	case OutputBMP:
		return "image/bmp"
	case OutputGLTF:
		return "model/gltf-binary"
	default:
		return "application/octet-stream"
	}
}

func Extension(output string) string {
	switch output {
	case OutputGLTF:
		return ".glb"
	case OutputRGBA:
		return ".rgba"
	default:
		return "." + output
	}
}

func WritePNG(w io.Writer, img image.Image) error {
	return errors.Wrapf(png.Encode(w, img), "Failed to encode png")
}

func WriteBMP(w io.Writer, img image.Image) error {
	return errors.Wrapf(bmp.Encode(w, img), "Failed to encode bmp")
}

func WriteRGBA(w io.Writer, pix []byte) error {
	_, err := w.Write(pix)
	return errors.Wrapf(err, "Failed to write rgba")
}

// Write decodes tex and encodes it as output.
func Write(w io.Writer, output string, tex *texture.Texture) error {
	img, err := tex.Image()
	if err != nil {
		return err
	}

	switch output {
	case OutputPNG:
		return WritePNG(w, img)
	case OutputBMP:
		return WriteBMP(w, img)
	case OutputGLTF:
		return WriteGLTF(w, tex.Name, img)
	case OutputRGBA:
		return WriteRGBA(w, img.Pix)
	default:
		return errors.Errorf("Unknown output %q", output)
	}
}
