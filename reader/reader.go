// Package reader provides a bounds-checked, little-endian byte cursor
// over an in-memory buffer. It is the Cursor & primitive reader layer
// the binary and text tokenizers build on: every multi-byte read is
// checked against the buffer end before it is attempted, and an
// out-of-bounds read panics with a *BoundsError instead of silently
// reading garbage or returning a zero value a caller could mistake for
// real data.
//
// This cursor follows a bounds-checked sequential Read/Skip/panic idiom
// (see DESIGN.md for the full grounding), but drops nested named-subbuffer
// bookkeeping, since the element tree itself (scene.Element) is what
// records structure here.
package reader

import (
	"encoding/binary"
	"fmt"
	"math"
)

// BoundsError is raised (via panic) whenever a read would cross the end
// of the cursor's backing buffer. It is recovered exactly once, at the
// top of the tokenizer entry points, and converted into a scene-level
// error of kind ErrBounds.
type BoundsError struct {
	Op  string
	Pos int
	Len int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s at offset %d: buffer has only %d bytes", e.Op, e.Pos, e.Len)
}

// Cursor is a sequential, bounds-checked little-endian reader over a
// byte slice it does not own. The slice is never copied; callers that
// hand out sub-slices (property DataViews) must keep the backing buffer
// alive for as long as those views are read.
type Cursor struct {
	buf []byte
	pos int
}

func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

func (c *Cursor) Pos() int       { return c.pos }
func (c *Cursor) Len() int       { return len(c.buf) }
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }
func (c *Cursor) AtEnd() bool    { return c.pos >= len(c.buf) }

// Seek moves the cursor to an absolute position without bounds checking;
// the next read still bounds-checks normally. Used by the binary
// tokenizer to jump to an element's declared end offset.
func (c *Cursor) Seek(pos int) { c.pos = pos }

func (c *Cursor) Skip(n int) {
	c.checkBounds("Skip", n)
	c.pos += n
}

func (c *Cursor) checkBounds(op string, n int) {
	if c.pos < 0 || n < 0 || c.pos+n > len(c.buf) {
		panic(&BoundsError{Op: op, Pos: c.pos, Len: len(c.buf)})
	}
}

// bytes returns a view (not a copy) of the next n bytes and advances
// the cursor past them.
func (c *Cursor) bytes(op string, n int) []byte {
	c.checkBounds(op, n)
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b
}

// Bytes is the exported form of bytes, used by the property decoder to
// take a zero-copy DataView into the backing buffer.
func (c *Cursor) Bytes(n int) []byte { return c.bytes("Bytes", n) }

// PeekBytes returns a view of the next n bytes without advancing.
func (c *Cursor) PeekBytes(n int) []byte {
	c.checkBounds("PeekBytes", n)
	return c.buf[c.pos : c.pos+n]
}

func (c *Cursor) U8() uint8  { return c.bytes("U8", 1)[0] }
func (c *Cursor) I8() int8   { return int8(c.U8()) }
func (c *Cursor) Bool() bool { return c.U8() != 0 }

func (c *Cursor) U16() uint16 { return binary.LittleEndian.Uint16(c.bytes("U16", 2)) }
func (c *Cursor) I16() int16  { return int16(c.U16()) }

func (c *Cursor) U32() uint32 { return binary.LittleEndian.Uint32(c.bytes("U32", 4)) }
func (c *Cursor) I32() int32  { return int32(c.U32()) }

func (c *Cursor) U64() uint64 { return binary.LittleEndian.Uint64(c.bytes("U64", 8)) }
func (c *Cursor) I64() int64  { return int64(c.U64()) }

func (c *Cursor) F32() float32 { return math.Float32frombits(c.U32()) }
func (c *Cursor) F64() float64 { return math.Float64frombits(c.U64()) }

// String reads a u32 length prefix followed by that many bytes, the
// layout of the binary dialect's `S` and `R` property tags and of the
// element identifier string.
func (c *Cursor) String() string {
	n := c.U32()
	return string(c.bytes("String", int(n)))
}

// PeekU32At reads a u32 at an absolute offset without disturbing the
// cursor's current position.
func (c *Cursor) PeekU32At(pos int) uint32 {
	if pos < 0 || pos+4 > len(c.buf) {
		panic(&BoundsError{Op: "PeekU32At", Pos: pos, Len: len(c.buf)})
	}
	return binary.LittleEndian.Uint32(c.buf[pos : pos+4])
}

func (c *Cursor) PeekU64At(pos int) uint64 {
	if pos < 0 || pos+8 > len(c.buf) {
		panic(&BoundsError{Op: "PeekU64At", Pos: pos, Len: len(c.buf)})
	}
	return binary.LittleEndian.Uint64(c.buf[pos : pos+8])
}
