package web

import (
	"bytes"
	"encoding/json"
	"image/png"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/mogaika/gxtex/config"
	"github.com/mogaika/gxtex/gx/textureformats"
)

// one 8x8 CMPR macroblock: UL red, UR green, BL blue, BR white
var cmprMacroblock = []byte{
	0xf8, 0x00, 0x00, 0x00, 0, 0, 0, 0,
	0x07, 0xe0, 0x00, 0x00, 0, 0, 0, 0,
	0x00, 0x1f, 0x00, 0x00, 0, 0, 0, 0,
	0xff, 0xff, 0x00, 0x00, 0, 0, 0, 0,
}

func withConfig(t *testing.T, c *config.Config) {
	old := config.Get()
	config.Set(c)
	t.Cleanup(func() { config.Set(old) })
}

func serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewRouter().ServeHTTP(rec, req)
	return rec
}

func TestFormats(t *testing.T) {
	rec := serve(httptest.NewRequest(http.MethodGet, "/json/formats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var descriptors []textureformats.Descriptor
	if err := json.Unmarshal(rec.Body.Bytes(), &descriptors); err != nil {
		t.Fatal(err)
	}
	if len(descriptors) != len(textureformats.Formats()) || descriptors[4].Name != "CMPR" {
		t.Errorf("unexpected descriptors %+v", descriptors)
	}
}

func TestDecodePNG(t *testing.T) {
	withConfig(t, config.Default())

	rec := serve(httptest.NewRequest(http.MethodPost, "/decode/cmpr/8/8", bytes.NewReader(cmprMacroblock)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type=%q", ct)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(6, 1).RGBA()
	if r != 0 || g != 0xffff || b != 0 {
		t.Errorf("pixel (6,1)=(%x,%x,%x); expected green", r, g, b)
	}
	r, g, b, _ = img.At(1, 6).RGBA()
	if r != 0 || g != 0 || b != 0xffff {
		t.Errorf("pixel (1,6)=(%x,%x,%x); expected blue", r, g, b)
	}
}

func TestDecodeAliasZlibRGBA(t *testing.T) {
	c := config.Default()
	c.Aliases["dxt1"] = "CMPR"
	withConfig(t, c)

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	zw.Write(cmprMacroblock)
	zw.Close()

	rec := serve(httptest.NewRequest(http.MethodPost,
		"/decode/dxt1/8/8?compression=zlib&output=rgba", &compressed))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	want, _ := textureformats.DecodeCMPR(cmprMacroblock, 8, 8)
	if !bytes.Equal(rec.Body.Bytes(), want) {
		t.Errorf("rgba body differs from decoded pixels")
	}
}

func TestDecodeMultipart(t *testing.T) {
	withConfig(t, config.Default())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("data", "tex.bin")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(make([]byte, 4*4*2))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/decode/IA8/4/4?output=bmp&name=fog", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := serve(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=fog.bmp" {
		t.Errorf("Content-Disposition=%q", cd)
	}
}

func TestDecodeQuotedName(t *testing.T) {
	withConfig(t, config.Default())

	rec := serve(httptest.NewRequest(http.MethodPost,
		`/decode/CMPR/8/8?name=sky%22%3B+x=1`, bytes.NewReader(cmprMacroblock)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	disposition, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	if err != nil {
		t.Fatalf("Content-Disposition=%q: %v", rec.Header().Get("Content-Disposition"), err)
	}
	if disposition != "attachment" || params["filename"] != `sky"; x=1.png` {
		t.Errorf("Content-Disposition=%q; expected filename %q", rec.Header().Get("Content-Disposition"), `sky"; x=1.png`)
	}
}

func TestDecodeErrors(t *testing.T) {
	c := config.Default()
	c.MaxUploadSize = 64
	withConfig(t, c)

	tests := []struct {
		url  string
		body []byte
		code int
	}{
		{"/decode/RGB565/8/8", cmprMacroblock, http.StatusBadRequest},
		{"/decode/CMPR/12/8", cmprMacroblock, http.StatusBadRequest},
		{"/decode/CMPR/8/8", cmprMacroblock[:31], http.StatusBadRequest},
		{"/decode/CMPR/8/8?output=tga", cmprMacroblock, http.StatusBadRequest},
		{"/decode/CMPR/8/8?compression=lzma", cmprMacroblock, http.StatusBadRequest},
		{"/decode/I8/16/8", make([]byte, 128), http.StatusRequestEntityTooLarge},
		{"/decode/I8/4294967296/4294967296", nil, http.StatusBadRequest},
		{"/decode/IA8/1073741824/1073741824", nil, http.StatusBadRequest},
	}
	for _, test := range tests {
		rec := serve(httptest.NewRequest(http.MethodPost, test.url, bytes.NewReader(test.body)))
		if rec.Code != test.code {
			t.Errorf("POST %s status=%d; expected %d (%s)", test.url, rec.Code, test.code, rec.Body.String())
			continue
		}
		var jErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &jErr); err != nil || jErr.Error == "" {
			t.Errorf("POST %s body=%q; expected json error", test.url, rec.Body.String())
		}
	}
}
