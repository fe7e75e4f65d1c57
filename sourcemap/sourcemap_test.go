package sourcemap_test

import (
	"testing"

	"github.com/joverzhang/formulang/sourcemap"
	"github.com/stretchr/testify/assert"
)

func TestLineCol(t *testing.T) {
	src := "abc\ndef\nghi"
	m := sourcemap.New(src)

	line, col := m.LineCol(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = m.LineCol(5) // 'e' on line 2
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)

	line, col = m.LineCol(uint32(len(src)))
	assert.Equal(t, 3, line)
	assert.Equal(t, 4, col)
}

func TestLineColCountsScalarValuesNotBytes(t *testing.T) {
	src := "é" + "bc" // 'é' is 2 bytes but 1 scalar value
	m := sourcemap.New(src)

	line, col := m.LineCol(uint32(len("é") + 1)) // just past 'é' and 'b'
	assert.Equal(t, 1, line)
	assert.Equal(t, 3, col) // 'é' counts as column 1, 'b' as column 2
}

func TestByteOffsetToUTF16ASCII(t *testing.T) {
	assert.Equal(t, uint32(5), sourcemap.ByteOffsetToUTF16("hello world", 5))
}

func TestByteOffsetToUTF16Chinese(t *testing.T) {
	// each CJK character is 3 bytes in UTF-8 but a single UTF-16 unit.
	s := "你好world"
	off := uint32(len("你好")) // byte offset right after the two CJK chars
	assert.Equal(t, uint32(2), sourcemap.ByteOffsetToUTF16(s, off))
}

func TestByteOffsetToUTF16Emoji(t *testing.T) {
	// an emoji outside the BMP is 4 bytes in UTF-8 and a surrogate pair
	// (2 units) in UTF-16.
	s := "a😀b"
	emoji := "😀"
	afterEmoji := uint32(1 + len(emoji))
	assert.Equal(t, uint32(3), sourcemap.ByteOffsetToUTF16(s, afterEmoji)) // 'a' + 2 surrogate units
}

func TestClampToCharBoundary(t *testing.T) {
	s := "a😀b"
	mid := uint32(2) // inside the emoji's 4-byte encoding
	clamped := sourcemap.ClampToCharBoundary(s, mid)
	assert.Equal(t, uint32(1), clamped)
}
