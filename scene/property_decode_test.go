package scene

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArrayPayloadRaw(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	out, err := decodeArrayPayload(payload, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestDecodeArrayPayloadRawTooShort(t *testing.T) {
	_, err := decodeArrayPayload([]byte{1, 2}, 0, 8)
	require.Error(t, err)
}

func TestDecodeArrayPayloadZlib(t *testing.T) {
	want := []byte{9, 9, 9, 9, 1, 2, 3, 4}
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(want)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	out, err := decodeArrayPayload(buf.Bytes(), 1, len(want))
	require.NoError(t, err)
	assert.Equal(t, want, out)
}

func TestDecodeArrayPayloadUnknownEncoding(t *testing.T) {
	_, err := decodeArrayPayload([]byte{1, 2, 3, 4}, 7, 4)
	require.Error(t, err)
}

func TestParseTextNumberArrayInts(t *testing.T) {
	isDouble, ints, doubles, err := parseTextNumberArray("1,2,3,\n4,5")
	require.NoError(t, err)
	assert.False(t, isDouble)
	assert.Nil(t, doubles)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ints)
}

func TestParseTextNumberArrayDoubles(t *testing.T) {
	isDouble, ints, doubles, err := parseTextNumberArray("1.0,2,-3.5e2")
	require.NoError(t, err)
	assert.True(t, isDouble)
	assert.Nil(t, ints)
	require.Len(t, doubles, 3)
	assert.InDelta(t, -350, doubles[2], 1e-9)
}

func TestDecodeFBXStringASCIIPassthrough(t *testing.T) {
	assert.Equal(t, "hello", decodeFBXString([]byte("hello")))
}
