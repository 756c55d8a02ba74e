package utils

import (
	"encoding/binary"
	"fmt"
)

// BufStack is a named window over a byte buffer with a read cursor.
// Sub buffers keep a link to the parent so an error can report the whole chain.
type BufStack struct {
	parent         *BufStack
	buf            []byte
	relativeOffset int
	absoluteOffset int
	size           int
	pos            int
	kind           string
}

func NewBufStack(kind string, b []byte) *BufStack {
	return &BufStack{
		buf:  b,
		size: len(b),
		kind: kind,
	}
}

func (bs *BufStack) SubBuf(kind string, offset int) *BufStack {
	return &BufStack{
		parent:         bs,
		relativeOffset: offset,
		absoluteOffset: bs.absoluteOffset + offset,
		kind:           kind,
		buf:            bs.Raw()[offset:],
		size:           bs.size - offset,
	}
}

// SetSize limits the window. Panics when the window grows over the backing buffer.
func (bs *BufStack) SetSize(size int) *BufStack {
	if size > len(bs.buf) {
		panic(fmt.Sprintf("Overgrown buffer %v: %v > %v", bs, size, len(bs.buf)))
	}
	bs.size = size
	return bs
}

func (bs *BufStack) Size() int {
	return bs.size
}

func (bs *BufStack) Kind() string {
	return bs.kind
}

func (bs *BufStack) Parent() *BufStack {
	return bs.parent
}

func (bs *BufStack) RelativeOffset() int {
	return bs.relativeOffset
}

func (bs *BufStack) String() string {
	return fmt.Sprintf("buf<%v>[o:0x%x,s:0x%x,ao:0x%x,ae:0x%x]",
		bs.kind, bs.relativeOffset, bs.size, bs.absoluteOffset, bs.absoluteOffset+bs.size)
}

func (bs *BufStack) StringChain() string {
	s := bs.String()
	if bs.parent != nil {
		s += fmt.Sprintf("::%s", bs.parent.StringChain())
	}
	return s
}

func (bs *BufStack) Raw() []byte {
	return bs.buf[:bs.size]
}

func (bs *BufStack) Pos() int {
	return bs.pos
}

func (bs *BufStack) Left() int {
	return bs.size - bs.pos
}

func (bs *BufStack) Read(amount int) []byte {
	if bs.pos+amount > bs.size {
		panic(fmt.Sprintf("read 0x%x bytes over %v at 0x%x", amount, bs.StringChain(), bs.pos))
	}
	oldPos := bs.pos
	bs.pos += amount
	return bs.buf[oldPos:bs.pos:bs.pos]
}

func (bs *BufStack) ReadBU16() uint16 {
	return binary.BigEndian.Uint16(bs.Read(2))
}
