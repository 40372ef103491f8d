package scene

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
	"golang.org/x/text/transform"

	"github.com/fbxgo/scene/config"
)

// decodeFBXString decodes an 8-bit FBX string property through the
// configured legacy codepage (default Windows-1252) via
// config.GetEncoding() before treating the bytes as a Go string. Bytes
// that are already valid ASCII pass through unchanged either way.
func decodeFBXString(raw []byte) string {
	cm := config.GetEncoding()
	if cm == nil {
		return string(raw)
	}
	out, _, err := transform.Bytes(cm.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// decodeArrayPayload turns an array property's compressed-or-raw
// payload into `wantBytes` of decoded little-endian element data.
// encoding 0 means the payload already is the array; encoding 1 means
// it is zlib-deflated (Z_SYNC_FLUSH-style single-shot inflate, per the
// format spec) and must be inflated before use.
func decodeArrayPayload(payload []byte, encoding uint32, wantBytes int) ([]byte, error) {
	switch encoding {
	case 0:
		if len(payload) < wantBytes {
			return nil, newErrorf(ErrFormat, "raw array payload too short: have %d want %d", len(payload), wantBytes)
		}
		return payload[:wantBytes], nil
	case 1:
		zr, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, wrapErrorf(ErrFormat, err, "opening zlib array payload")
		}
		defer zr.Close()
		out := make([]byte, wantBytes)
		if _, err := io.ReadFull(zr, out); err != nil {
			return nil, wrapErrorf(ErrFormat, err, "inflating zlib array payload")
		}
		return out, nil
	default:
		return nil, newErrorf(ErrFormat, "unknown array encoding %d", encoding)
	}
}

// fillArrayFromRaw reinterprets `raw` (wantBytes = count*elemSize, all
// little-endian) as the typed slice matching p.Tag.
func fillArrayFromRaw(p *Property, raw []byte, count int) error {
	switch p.Tag {
	case TagFloatArray:
		out := make([]float32, count)
		for i := 0; i < count; i++ {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		p.arrayFloat = out
	case TagDoubleArray:
		out := make([]float64, count)
		for i := 0; i < count; i++ {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
		}
		p.arrayDouble = out
	case TagInt32Array:
		out := make([]int32, count)
		for i := 0; i < count; i++ {
			out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		p.arrayInt32 = out
	case TagInt64Array:
		out := make([]int64, count)
		for i := 0; i < count; i++ {
			out[i] = int64(binary.LittleEndian.Uint64(raw[i*8:]))
		}
		p.arrayInt64 = out
	case TagBoolArray:
		out := make([]bool, count)
		for i := 0; i < count; i++ {
			out[i] = raw[i] != 0
		}
		p.arrayBool = out
	default:
		return newErrorf(ErrFormat, "fillArrayFromRaw: not an array tag %q", byte(p.Tag))
	}
	return nil
}

// parseTextNumberArray splits a comma-separated (and possibly
// multi-line) run of numeric tokens, used by the text tokenizer's
// inline `*N: { a,b,c, ... }` arrays. It decides float vs int the same
// way the text dialect classifies any scalar: a literal dot or exponent
// anywhere in the run makes the whole array double-typed.
func parseTextNumberArray(body string) (isDouble bool, ints []int64, doubles []float64, err error) {
	fields := splitTextArrayFields(body)
	for _, f := range fields {
		if strings.ContainsAny(f, ".eE") && !isHexLike(f) {
			isDouble = true
			break
		}
	}
	if isDouble {
		doubles = make([]float64, 0, len(fields))
		for _, f := range fields {
			v, perr := strconv.ParseFloat(f, 64)
			if perr != nil {
				return false, nil, nil, errors.Wrapf(perr, "parsing text array double %q", f)
			}
			doubles = append(doubles, v)
		}
		return true, nil, doubles, nil
	}
	ints = make([]int64, 0, len(fields))
	for _, f := range fields {
		v, perr := strconv.ParseInt(f, 10, 64)
		if perr != nil {
			return false, nil, nil, errors.Wrapf(perr, "parsing text array int %q", f)
		}
		ints = append(ints, v)
	}
	return false, ints, nil, nil
}

func isHexLike(s string) bool { return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") }

// splitTextArrayFields splits on commas and newlines, trimming
// whitespace, and drops empty runs produced by trailing separators.
func splitTextArrayFields(body string) []string {
	replacer := strings.NewReplacer("\n", ",", "\r", ",", "\t", " ")
	body = replacer.Replace(body)
	raw := strings.Split(body, ",")
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
