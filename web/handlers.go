package web

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/mogaika/gxtex/config"
	"github.com/mogaika/gxtex/export"
	"github.com/mogaika/gxtex/gx/texture"
	"github.com/mogaika/gxtex/gx/textureformats"
	"github.com/mogaika/gxtex/source"
	"github.com/mogaika/gxtex/status"
	"github.com/mogaika/gxtex/webutils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func HandlerAjaxFormats(w http.ResponseWriter, r *http.Request) {
	formats := textureformats.Formats()
	descriptors := make([]textureformats.Descriptor, len(formats))
	for i, f := range formats {
		descriptors[i] = f.Descriptor()
	}
	webutils.WriteJson(w, descriptors)
}

func HandlerStatusWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader already replied
		return
	}
	status.NewClient(conn)
}

func requestPayload(w http.ResponseWriter, r *http.Request, cfg *config.Config, compression string) ([]byte, error) {
	body := r.Body
	if cfg.MaxUploadSize > 0 {
		body = http.MaxBytesReader(w, body, cfg.MaxUploadSize)
		r.Body = body
	}

	var in io.Reader = body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		f, _, err := r.FormFile("data")
		if err != nil {
			return nil, errors.Wrapf(err, "File stream getting error")
		}
		defer f.Close()
		in = f
	}

	return source.Load(in, compression, cfg.MaxUploadSize)
}

func HandlerDecode(w http.ResponseWriter, r *http.Request) {
	cfg := config.Get()
	vars := mux.Vars(r)
	query := r.URL.Query()

	f, err := cfg.ResolveFormat(vars["format"])
	if err != nil {
		webutils.WriteErrorStatus(w, http.StatusBadRequest, err)
		return
	}
	width, err := strconv.Atoi(vars["width"])
	if err != nil {
		webutils.WriteErrorStatus(w, http.StatusBadRequest, fmt.Errorf("width '%s' is not integer", vars["width"]))
		return
	}
	height, err := strconv.Atoi(vars["height"])
	if err != nil {
		webutils.WriteErrorStatus(w, http.StatusBadRequest, fmt.Errorf("height '%s' is not integer", vars["height"]))
		return
	}

	output := cfg.Output
	if o := query.Get("output"); o != "" {
		output = o
	}
	if !export.ValidOutput(output) {
		webutils.WriteErrorStatus(w, http.StatusBadRequest, errors.Errorf("Unknown output %q", output))
		return
	}

	compression := cfg.Compression
	if c := query.Get("compression"); c != "" {
		compression = c
	}
	if !source.ValidCompression(compression) {
		webutils.WriteErrorStatus(w, http.StatusBadRequest, errors.Errorf("Unknown compression %q", compression))
		return
	}

	name := query.Get("name")
	if name == "" {
		name = fmt.Sprintf("%v_%dx%d", f, width, height)
	}

	data, err := requestPayload(w, r, cfg, compression)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.Is(err, source.ErrPayloadTooLarge) || errors.As(err, &tooLarge) {
			webutils.WriteErrorStatus(w, http.StatusRequestEntityTooLarge, err)
		} else {
			webutils.WriteErrorStatus(w, http.StatusBadRequest, err)
		}
		status.Error("Failed to load %s: %v", name, err)
		return
	}

	tex, err := texture.New(name, f, width, height, data)
	if err != nil {
		webutils.WriteErrorStatus(w, http.StatusBadRequest, err)
		status.Error("Failed to decode %s: %v", name, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, output, tex); err != nil {
		webutils.WriteError(w, err)
		status.Error("Failed to export %v: %v", tex, err)
		return
	}

	status.Info("Decoded %v as %s", tex, output)
	webutils.WriteFile(w, &buf, name+export.Extension(output), export.ContentType(output))
}
