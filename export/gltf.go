package export

import (
	"bytes"
	"image"
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// NewTextureDocument builds a gltf document holding img as a png image,
// a nearest sampler, a texture and a material using it.
func NewTextureDocument(name string, img image.Image) (*gltf.Document, error) {
	doc := gltf.NewDocument()

	var pngBuf bytes.Buffer
	if err := WritePNG(&pngBuf, img); err != nil {
		return nil, err
	}

	imageIndex, err := modeler.WriteImage(doc, name+"_image", "image/png", &pngBuf)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to write gltf image")
	}

	samplerIndex := uint32(len(doc.Samplers))
	doc.Samplers = append(doc.Samplers, &gltf.Sampler{
		Name:      name + "_sampler",
		MinFilter: gltf.MinNearest,
		MagFilter: gltf.MagNearest,
		WrapS:     gltf.WrapRepeat,
		WrapT:     gltf.WrapRepeat,
	})

	textureIndex := uint32(len(doc.Textures))
	doc.Textures = append(doc.Textures, &gltf.Texture{
		Name:    name,
		Sampler: gltf.Index(samplerIndex),
		Source:  gltf.Index(imageIndex),
	})

	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:        name,
		DoubleSided: true,
		AlphaMode:   gltf.AlphaBlend,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorTexture: &gltf.TextureInfo{Index: textureIndex},
		},
	})

	return doc, nil
}

func WriteGLTF(w io.Writer, name string, img image.Image) error {
	doc, err := NewTextureDocument(name, img)
	if err != nil {
		return err
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return errors.Wrapf(encoder.Encode(doc), "Failed to encode gltf")
}
