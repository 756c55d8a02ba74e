package textureformats

// Channel widening by bit replication: the value goes to the high bits and
// its own top bits fill the low end.

func expand3to8(n uint8) uint8 {
	return (n << 5) | (n << 2) | (n >> 1)
}

func expand4to8(n uint8) uint8 {
	return (n << 4) | n
}

func expand5to8(n uint8) uint8 {
	return (n << 3) | (n >> 2)
}

func expand6to8(n uint8) uint8 {
	return (n << 2) | (n >> 4)
}

func rgb565fromUint16(v uint16) (r, g, b uint8) {
	r = expand5to8(uint8((v >> 11) & 0x1f))
	g = expand6to8(uint8((v >> 5) & 0x3f))
	b = expand5to8(uint8(v & 0x1f))
	return
}

// sampler returns intensity and alpha of the n-th pixel sample of a tiled
// stream. Samples are counted in tile scan order.
type sampler func(src []byte, n int) (i, a uint8)

// unpackTiled walks tiles left to right, top to bottom, and rows then
// columns inside a tile, writing R=G=B=i and A=a for every sample.
func unpackTiled(dst, src []byte, width, height, tileWidth, tileHeight int, sample sampler) {
	n := 0
	for yy := 0; yy < height; yy += tileHeight {
		for xx := 0; xx < width; xx += tileWidth {
			for y := 0; y < tileHeight; y++ {
				row := (yy + y) * width
				for x := 0; x < tileWidth; x++ {
					i, a := sample(src, n)
					off := (row + xx + x) * 4
					dst[off+0] = i
					dst[off+1] = i
					dst[off+2] = i
					dst[off+3] = a
					n++
				}
			}
		}
	}
}
