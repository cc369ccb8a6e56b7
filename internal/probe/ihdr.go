package probe

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/backmassage/apngpress/internal/frames"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

var errBadHeader = errors.New("missing or malformed IHDR chunk")

// header is the fixed 13-byte IHDR payload.
type header struct {
	Width      int
	Height     int
	BitDepth   int
	ColorType  byte
	Interlaced bool
}

// parseIHDR reads the IHDR chunk, which PNG requires to come first.
func parseIHDR(data []byte) (header, error) {
	const ihdrEnd = 8 + 8 + 13
	if len(data) < ihdrEnd || !bytes.Equal(data[:8], pngSignature) {
		return header{}, errBadHeader
	}
	if binary.BigEndian.Uint32(data[8:12]) != 13 || string(data[12:16]) != "IHDR" {
		return header{}, errBadHeader
	}
	p := data[16:ihdrEnd]
	h := header{
		Width:      int(binary.BigEndian.Uint32(p[0:4])),
		Height:     int(binary.BigEndian.Uint32(p[4:8])),
		BitDepth:   int(p[8]),
		ColorType:  p[9],
		Interlaced: p[12] == 1, // Adam7
	}
	if h.Width == 0 || h.Height == 0 {
		return header{}, errBadHeader
	}
	return h, nil
}

// Mode maps the PNG color type to a ColorMode.
func (h header) Mode() frames.ColorMode {
	switch h.ColorType {
	case 0:
		return frames.ModeGray
	case 2:
		return frames.ModeRGB
	case 3:
		return frames.ModeIndexed
	case 4:
		return frames.ModeGrayAlpha
	}
	return frames.ModeRGBA
}

// hasChunk reports whether a chunk of the given type appears before IDAT
// ends. Used to tell APNG (acTL) from plain PNG without a full decode.
func hasChunk(data []byte, typ string) bool {
	off := 8
	for off+8 <= len(data) {
		n := int(binary.BigEndian.Uint32(data[off : off+4]))
		t := string(data[off+4 : off+8])
		if t == typ {
			return true
		}
		if t == "IDAT" || t == "IEND" || n < 0 {
			return false
		}
		off += 12 + n
	}
	return false
}
