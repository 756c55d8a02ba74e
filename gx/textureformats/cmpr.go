package textureformats

import (
	"github.com/mogaika/gxtex/utils"
)

// cmprPalette is the 4 entry RGBA table of one 4x4 sub-block.
type cmprPalette [16]byte

// GX blends with 3/8 and 5/8 instead of 1/3 and 2/3.
func s3tcBlend(a, b uint8) uint8 {
	return uint8((3*uint32(a) + 5*uint32(b)) >> 3)
}

func (p *cmprPalette) build(color1, color2 uint16) {
	p[0], p[1], p[2] = rgb565fromUint16(color1)
	p[3] = 0xff
	p[4], p[5], p[6] = rgb565fromUint16(color2)
	p[7] = 0xff

	if color1 > color2 {
		for c := 0; c < 3; c++ {
			p[8+c] = s3tcBlend(p[4+c], p[c])
			p[12+c] = s3tcBlend(p[c], p[4+c])
		}
		p[11] = 0xff
		p[15] = 0xff
	} else {
		for c := 0; c < 3; c++ {
			p[8+c] = uint8((uint16(p[c]) + uint16(p[4+c])) >> 1)
			p[12+c] = p[8+c]
		}
		p[11] = 0xff
		// punch-through
		p[15] = 0
	}
}

// decodeCMPR expects src to hold at least width*height/2 bytes.
// Macroblocks are 8x8 and hold 4 sub-blocks in UL, UR, BL, BR order.
func decodeCMPR(dst, src []byte, width, height int) {
	bs := utils.NewBufStack("cmpr", src)
	var palette cmprPalette

	for yy := 0; yy < height; yy += 8 {
		for xx := 0; xx < width; xx += 8 {
			for yb := 0; yb < 8; yb += 4 {
				for xb := 0; xb < 8; xb += 4 {
					color1 := bs.ReadBU16()
					color2 := bs.ReadBU16()
					palette.build(color1, color2)

					rows := bs.Read(4)
					for y := 0; y < 4; y++ {
						bits := rows[y]
						row := (yy + yb + y) * width
						for x := 0; x < 4; x++ {
							idx := int(bits>>6) * 4
							off := (row + xx + xb + x) * 4
							copy(dst[off:off+4], palette[idx:idx+4])
							bits <<= 2
						}
					}
				}
			}
		}
	}
}
