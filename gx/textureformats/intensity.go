package textureformats

func sampleI4(src []byte, n int) (i, a uint8) {
	v := src[n>>1]
	if n&1 == 0 {
		v >>= 4
	}
	i = expand4to8(v & 0xf)
	return i, i
}

func sampleI8(src []byte, n int) (i, a uint8) {
	i = src[n]
	return i, i
}

// IA4 byte: [alpha:4][intensity:4]
func sampleIA4(src []byte, n int) (i, a uint8) {
	v := src[n]
	return expand4to8(v & 0xf), expand4to8(v >> 4)
}

// IA8 pair: [alpha][intensity]
func sampleIA8(src []byte, n int) (i, a uint8) {
	return src[2*n+1], src[2*n]
}

func tiledDecoder(f Format, sample sampler) decodeFunc {
	return func(dst, src []byte, width, height int) {
		d := f.Descriptor()
		unpackTiled(dst, src, width, height, d.TileWidth, d.TileHeight, sample)
	}
}
