package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/mogaika/gxtex/gx/textureformats"
)

const testConfig = `
listen: "127.0.0.1:9000"
output: gltf
compression: zlib
aliases:
  dxt1: CMPR
  Sky: i8
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(testConfig))
	if err != nil {
		t.Fatal(err)
	}
	if c.Listen != "127.0.0.1:9000" || c.Output != "gltf" || c.Compression != "zlib" {
		t.Errorf("unexpected config %+v", c)
	}
	if c.MaxUploadSize != Default().MaxUploadSize {
		t.Errorf("MaxUploadSize=%d; expected default", c.MaxUploadSize)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []string{
		"output: tga",
		"compression: lzma",
		"max_upload_size: -1",
		"aliases: {pal: C8}",
		"listen: [",
	}
	for _, test := range tests {
		if _, err := Parse([]byte(test)); err == nil {
			t.Errorf("Parse(%q) expected error", test)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gxtex.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0666); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Output != "gltf" {
		t.Errorf("Output=%q; expected gltf", c.Output)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load(missing) expected error")
	}
}

func TestResolveFormat(t *testing.T) {
	c, err := Parse([]byte(testConfig))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		in  string
		out textureformats.Format
	}{
		{"DXT1", textureformats.CMPR},
		{"sky", textureformats.I8},
		{"ia4", textureformats.IA4},
		{"0x3", textureformats.IA8},
		{"0x0E", textureformats.CMPR},
	}
	for _, test := range tests {
		f, err := c.ResolveFormat(test.in)
		if err != nil || f != test.out {
			t.Errorf("ResolveFormat(%q)=%v,%v; expected %v", test.in, f, err, test.out)
		}
	}
	for _, bad := range []string{"0x5", "0xzz", "RGBA8"} {
		if _, err := c.ResolveFormat(bad); !errors.Is(err, textureformats.ErrUnsupportedFormat) {
			t.Errorf("ResolveFormat(%q) error=%v; expected ErrUnsupportedFormat", bad, err)
		}
	}
}

func TestSetGet(t *testing.T) {
	old := Get()
	defer Set(old)

	c := Default()
	c.Output = "bmp"
	Set(c)
	if Get().Output != "bmp" {
		t.Errorf("Get() did not return the config passed to Set")
	}
}
