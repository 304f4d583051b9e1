package pngenc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
)

// Chunk is one length-prefixed, type-tagged, checksummed PNG block.
type Chunk struct {
	Type string
	Data []byte
	CRC  uint32
}

// Header is the decoded IHDR payload.
type Header struct {
	Width       int
	Height      int
	BitDepth    byte
	ColorType   byte
	Compression byte
	Filter      byte
	Interlace   byte
}

// Channels returns the bytes per pixel implied by the color type, or 0 for
// color types this package does not write.
func (h Header) Channels() int {
	switch h.ColorType {
	case ColorRGB:
		return 3
	case ColorRGBA:
		return 4
	}
	return 0
}

// ReadChunks checks the signature and walks every chunk, verifying its CRC.
func ReadChunks(data []byte) ([]Chunk, error) {
	if len(data) < len(Signature) || string(data[:len(Signature)]) != Signature {
		return nil, fmt.Errorf("pngenc: not a PNG file")
	}
	var chunks []Chunk
	off := len(Signature)
	for off < len(data) {
		if off+8 > len(data) {
			return nil, fmt.Errorf("pngenc: truncated chunk header at offset %d", off)
		}
		n := int(binary.BigEndian.Uint32(data[off : off+4]))
		typ := string(data[off+4 : off+8])
		end := off + 8 + n + 4
		if n < 0 || end > len(data) {
			return nil, fmt.Errorf("pngenc: chunk %q overruns file", typ)
		}
		body := data[off+8 : off+8+n]
		crc := binary.BigEndian.Uint32(data[off+8+n : end])
		if want := chunkCRC(typ, body); crc != want {
			return nil, fmt.Errorf("pngenc: chunk %q CRC %08x, want %08x", typ, crc, want)
		}
		chunks = append(chunks, Chunk{Type: typ, Data: body, CRC: crc})
		off = end
	}
	return chunks, nil
}

// ParseHeader decodes an IHDR chunk.
func ParseHeader(c Chunk) (Header, error) {
	if c.Type != "IHDR" || len(c.Data) != 13 {
		return Header{}, fmt.Errorf("pngenc: malformed IHDR")
	}
	d := c.Data
	return Header{
		Width:       int(binary.BigEndian.Uint32(d[0:4])),
		Height:      int(binary.BigEndian.Uint32(d[4:8])),
		BitDepth:    d[8],
		ColorType:   d[9],
		Compression: d[10],
		Filter:      d[11],
		Interlace:   d[12],
	}, nil
}

// Inflate concatenates and decompresses every IDAT chunk, returning the raw
// filtered scanlines.
func Inflate(chunks []Chunk) ([]byte, error) {
	var z bytes.Buffer
	for _, c := range chunks {
		if c.Type == "IDAT" {
			z.Write(c.Data)
		}
	}
	zr, err := zlib.NewReader(&z)
	if err != nil {
		return nil, fmt.Errorf("pngenc: IDAT: %w", err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("pngenc: IDAT: %w", err)
	}
	return raw, nil
}

// Verify checks that data is a PNG as written by Encode: valid CRCs, IHDR
// first and IEND last, 8-bit RGB or RGBA, no interlace, and unfiltered
// scanlines of the declared size. It returns the decoded header.
func Verify(data []byte) (Header, error) {
	chunks, err := ReadChunks(data)
	if err != nil {
		return Header{}, err
	}
	if len(chunks) < 3 {
		return Header{}, fmt.Errorf("pngenc: %d chunks, want at least 3", len(chunks))
	}
	if chunks[0].Type != "IHDR" {
		return Header{}, fmt.Errorf("pngenc: first chunk is %q, want IHDR", chunks[0].Type)
	}
	last := chunks[len(chunks)-1]
	if last.Type != "IEND" || len(last.Data) != 0 {
		return Header{}, fmt.Errorf("pngenc: last chunk is %q, want empty IEND", last.Type)
	}

	h, err := ParseHeader(chunks[0])
	if err != nil {
		return Header{}, err
	}
	if h.BitDepth != bitDepth {
		return h, fmt.Errorf("pngenc: bit depth %d, want %d", h.BitDepth, bitDepth)
	}
	ch := h.Channels()
	if ch == 0 {
		return h, fmt.Errorf("pngenc: unsupported color type %d", h.ColorType)
	}
	if h.Compression != 0 || h.Filter != 0 || h.Interlace != 0 {
		return h, fmt.Errorf("pngenc: unsupported compression/filter/interlace %d/%d/%d",
			h.Compression, h.Filter, h.Interlace)
	}

	raw, err := Inflate(chunks)
	if err != nil {
		return h, err
	}
	stride := 1 + h.Width*ch
	if want := h.Height * stride; len(raw) != want {
		return h, fmt.Errorf("pngenc: %d bytes of scanlines, want %d", len(raw), want)
	}
	for y := 0; y < h.Height; y++ {
		if f := raw[y*stride]; f != 0 {
			return h, fmt.Errorf("pngenc: row %d uses filter %d", y, f)
		}
	}
	return h, nil
}
