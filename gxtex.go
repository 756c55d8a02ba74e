package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/gxtex/config"
	"github.com/mogaika/gxtex/export"
	"github.com/mogaika/gxtex/gx/texture"
	"github.com/mogaika/gxtex/gx/textureformats"
	"github.com/mogaika/gxtex/source"
	"github.com/mogaika/gxtex/utils"
	"github.com/mogaika/gxtex/web"
)

func decodeFile(cfg *config.Config, in, out, formatName string, width, height int, dump bool) error {
	f, err := cfg.ResolveFormat(formatName)
	if err != nil {
		return err
	}

	fin, err := os.Open(in)
	if err != nil {
		return errors.Wrapf(err, "Failed to open input")
	}
	defer fin.Close()

	data, err := source.Load(fin, cfg.Compression, cfg.MaxUploadSize)
	if err != nil {
		return errors.Wrapf(err, "Failed to load %q", in)
	}

	name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	tex, err := texture.New(name, f, width, height, data)
	if err != nil {
		return err
	}

	if dump {
		utils.LogDump(tex, f.Descriptor())
		head := tex.Data()
		if len(head) > 16 {
			head = head[:16]
		}
		log.Printf("[gxtex] payload head: %s", utils.DumpToOneLineString(head))
	}

	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + export.Extension(cfg.Output)
	}
	fout, err := os.Create(out)
	if err != nil {
		return errors.Wrapf(err, "Failed to create output")
	}
	defer fout.Close()

	if err := export.Write(fout, cfg.Output, tex); err != nil {
		return err
	}

	log.Printf("[gxtex] %v -> %s", tex, out)
	return nil
}

func printFormats() {
	fmt.Printf("%-6s %-6s %-6s %s\n", "NAME", "GXID", "TILE", "BPP")
	for _, f := range textureformats.Formats() {
		d := f.Descriptor()
		fmt.Printf("%-6s 0x%-4x %dx%-4d %d\n", d.Name, d.GXID, d.TileWidth, d.TileHeight, d.BitsPerPixel)
	}
}

func main() {
	var addr, configPath, format, output, compression, out string
	var width, height int
	var listFormats, dump bool
	flag.StringVar(&configPath, "config", "", "Path to yaml config")
	flag.StringVar(&addr, "i", "", "Start http server on this address instead of decoding a file")
	flag.StringVar(&format, "format", "", "Texture format name (I4, I8, IA4, IA8, CMPR), alias or 0x gx id")
	flag.IntVar(&width, "w", 0, "Texture width")
	flag.IntVar(&height, "h", 0, "Texture height")
	flag.StringVar(&output, "output", "", "Output kind: png, bmp, gltf, rgba")
	flag.StringVar(&compression, "compression", "", "Input compression: none, zlib, zstd")
	flag.StringVar(&out, "o", "", "Output file, defaults to input name with output extension")
	flag.BoolVar(&listFormats, "formats", false, "Print supported formats and exit")
	flag.BoolVar(&dump, "dump", false, "Dump texture info before exporting")
	flag.Parse()

	if listFormats {
		printFormats()
		return
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatal(err)
		}
	}
	if output != "" {
		cfg.Output = output
	}
	if compression != "" {
		cfg.Compression = compression
	}
	if addr != "" {
		cfg.Listen = addr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	config.Set(cfg)

	if addr != "" {
		if err := web.StartServer(cfg.Listen); err != nil {
			log.Fatal(err)
		}
		return
	}

	if flag.NArg() != 1 || format == "" {
		flag.PrintDefaults()
		return
	}

	if err := decodeFile(cfg, flag.Arg(0), out, format, width, height, dump); err != nil {
		log.Fatal(err)
	}
}
