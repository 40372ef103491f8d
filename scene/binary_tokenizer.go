package scene

import (
	"bytes"

	"github.com/fbxgo/scene/reader"
)

const binaryMagic = "Kaydara FBX Binary  \x00\x1a\x00"

// binaryHeaderLen is the 27-byte header: a 21-byte magic string, the
// two reserved bytes 0x1A 0x00, and a u32 version.
const binaryHeaderLen = 27

// versionWideOffsets is the FBX version at and after which element end
// offsets and the trailing sentinel widen from 32-bit/13-byte to
// 64-bit/25-byte (FBX 7500+, used by Maya 2016 and later exporters).
const versionWideOffsets = 7500

func sentinelLayout(version int32) (offsetIs64 bool, sentinelLen int) {
	if version >= versionWideOffsets {
		return true, 25
	}
	return false, 13
}

// tokenizeBinary walks a binary-dialect FBX buffer into an Element
// tree. If the buffer is not binary FBX at all (bad magic) it returns a
// nil root with isBinary=false and a nil error, so the caller can fall
// back to the text tokenizer without treating that as fatal.
func tokenizeBinary(buf []byte) (root *Element, version int32, isBinary bool, err error) {
	if len(buf) < binaryHeaderLen || !bytes.HasPrefix(buf, []byte(binaryMagic[:21])) {
		return nil, 0, false, nil
	}

	defer recoverBounds(&err)

	c := reader.New(buf)
	c.Skip(21) // magic
	c.Skip(2)  // reserved 0x1A 0x00
	version = int32(c.U32())

	offsetIs64, sentinelLen := sentinelLayout(version)

	root = &Element{ID: []byte("(root)")}
	for {
		child, ok, perr := readBinaryElement(c, offsetIs64, sentinelLen)
		if perr != nil {
			return nil, 0, true, perr
		}
		if !ok {
			break
		}
		root.addChild(child)
		if c.Remaining() < sentinelLen {
			break
		}
	}
	return root, version, true, nil
}

func readBinaryOffset(c *reader.Cursor, offsetIs64 bool) uint64 {
	if offsetIs64 {
		return c.U64()
	}
	return uint64(c.U32())
}

// readBinaryElement reads one element record. A zero end-offset marks
// the end of a sibling list (ok=false, no error): this is how the
// binary dialect terminates both the top-level document and every
// child block, via a trailing all-zero "null" record.
func readBinaryElement(c *reader.Cursor, offsetIs64 bool, sentinelLen int) (el *Element, ok bool, err error) {
	startPos := c.Pos()
	endOffset := readBinaryOffset(c, offsetIs64)
	if endOffset == 0 {
		return nil, false, nil
	}

	propCount := c.U32()
	_ = c.U32() // property section byte length; recomputed implicitly by walking properties, not checked
	nameLen := c.U8()
	name := append([]byte(nil), c.Bytes(int(nameLen))...)

	el = &Element{ID: name}
	for i := uint32(0); i < propCount; i++ {
		prop, perr := readBinaryProperty(c)
		if perr != nil {
			return nil, false, perr
		}
		el.Properties = append(el.Properties, prop)
	}

	childrenEnd := int(endOffset) - sentinelLen
	for c.Pos() < childrenEnd {
		child, more, perr := readBinaryElement(c, offsetIs64, sentinelLen)
		if perr != nil {
			return nil, false, perr
		}
		if !more {
			break
		}
		el.addChild(child)
	}

	// The sentinel bytes are intentionally not validated, only skipped:
	// some exporters pad them inconsistently and the source tolerates it.
	if c.Pos() < int(endOffset) {
		c.Seek(int(endOffset))
	} else {
		// malformed but tolerated: land as close to declared end as we can
		c.Seek(int(endOffset))
	}
	_ = startPos
	return el, true, nil
}

func readBinaryProperty(c *reader.Cursor) (*Property, error) {
	tag := PropertyTag(c.U8())
	p := &Property{Tag: tag, IsBinary: true}

	switch tag {
	case TagInt16:
		p.scalarInt = int64(c.I16())
	case TagBool:
		p.scalarBool = c.Bool()
	case TagInt32:
		p.scalarInt = int64(c.I32())
	case TagFloat:
		p.scalarFloat = float64(c.F32())
	case TagDouble:
		p.scalarFloat = c.F64()
	case TagInt64:
		p.scalarInt = c.I64()
	case TagString:
		n := c.U32()
		raw := c.Bytes(int(n))
		p.raw = raw
		p.scalarStr = decodeFBXString(raw)
	case TagRaw:
		n := c.U32()
		p.raw = c.Bytes(int(n))
	case TagFloatArray, TagDoubleArray, TagInt32Array, TagInt64Array, TagBoolArray:
		if err := readBinaryArray(c, p); err != nil {
			return nil, err
		}
	default:
		return nil, newErrorf(ErrFormat, "unknown property tag %q", byte(tag))
	}
	return p, nil
}

func elementSizeFor(tag PropertyTag) int {
	switch tag {
	case TagFloatArray:
		return 4
	case TagDoubleArray:
		return 8
	case TagInt32Array:
		return 4
	case TagInt64Array:
		return 8
	case TagBoolArray:
		return 1
	default:
		return 1
	}
}

// readBinaryArray decodes one array property: a u32 element count, a
// u32 encoding (0 = raw, 1 = zlib-deflated), a u32 compressed-payload
// length, then that many payload bytes.
func readBinaryArray(c *reader.Cursor, p *Property) error {
	count := int(c.U32())
	encoding := c.U32()
	payloadLen := int(c.U32())
	payload := c.Bytes(payloadLen)

	elemSize := elementSizeFor(p.Tag)
	raw, err := decodeArrayPayload(payload, encoding, count*elemSize)
	if err != nil {
		return err
	}

	p.arrayCount = count
	return fillArrayFromRaw(p, raw, count)
}
