// Package pngenc writes and inspects minimal PNG files: signature, one IHDR,
// one IDAT holding unfiltered scanlines, and IEND.
package pngenc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// Signature is the 8-byte magic every PNG file starts with.
const Signature = "\x89PNG\r\n\x1a\n"

// PNG color types for 8-bit truecolor images.
const (
	ColorRGB  = 2
	ColorRGBA = 6
)

const bitDepth = 8

// ColorType returns the IHDR color type for a channel count.
func ColorType(channels int) (byte, error) {
	switch channels {
	case 3:
		return ColorRGB, nil
	case 4:
		return ColorRGBA, nil
	}
	return 0, fmt.Errorf("pngenc: unsupported channel count %d", channels)
}

// Encode serializes a row-major pixel buffer of width×height pixels with
// channels bytes each (3 = RGB, 4 = RGBA). The complete file is built in
// memory; nothing is returned on error.
func Encode(width, height, channels int, pix []byte) ([]byte, error) {
	ct, err := ColorType(channels)
	if err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("pngenc: invalid dimensions %dx%d", width, height)
	}
	stride := width * channels
	if len(pix) != stride*height {
		return nil, fmt.Errorf("pngenc: pixel buffer is %d bytes, want %d", len(pix), stride*height)
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = bitDepth
	ihdr[9] = ct
	// compression, filter and interlace methods stay 0

	// Filter type 0 (None) on every scanline.
	raw := make([]byte, 0, height*(1+stride))
	for y := 0; y < height; y++ {
		raw = append(raw, 0)
		raw = append(raw, pix[y*stride:(y+1)*stride]...)
	}

	var idat bytes.Buffer
	zw, err := zlib.NewWriterLevel(&idat, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("pngenc: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("pngenc: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("pngenc: compress: %w", err)
	}

	var out bytes.Buffer
	out.WriteString(Signature)
	writeChunk(&out, "IHDR", ihdr)
	writeChunk(&out, "IDAT", idat.Bytes())
	writeChunk(&out, "IEND", nil)
	return out.Bytes(), nil
}

// writeChunk frames data as length, type, data, CRC32(type+data).
func writeChunk(buf *bytes.Buffer, typ string, data []byte) {
	var word [4]byte
	binary.BigEndian.PutUint32(word[:], uint32(len(data)))
	buf.Write(word[:])
	buf.WriteString(typ)
	buf.Write(data)
	binary.BigEndian.PutUint32(word[:], chunkCRC(typ, data))
	buf.Write(word[:])
}

func chunkCRC(typ string, data []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write([]byte(typ))
	h.Write(data)
	return h.Sum32()
}
