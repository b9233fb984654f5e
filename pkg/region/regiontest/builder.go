// Package regiontest provides helpers to synthesize region files in tests.
package regiontest

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/nspcc-dev/chunkprune/pkg/region"
	"github.com/stretchr/testify/require"
)

// Builder accumulates region file contents. Zero value is an empty region
// with zeroed header.
type Builder struct {
	buf []byte
}

func (b *Builder) grow(n int) {
	if len(b.buf) < n {
		b.buf = append(b.buf, make([]byte, n-len(b.buf))...)
	}
}

// SetLocation writes raw location table entry of the cell selected by c.
func (b *Builder) SetLocation(c region.Coord, l region.Location) {
	b.grow(region.HeaderSize)
	off := c.LocationOffset()
	copy(b.buf[off:], l[:])
}

// PutRaw appends sector-aligned record with the given length field, method
// and data as is, and points the location entry of c to it. Returns the
// record offset.
func (b *Builder) PutRaw(c region.Coord, length uint32, method region.CompressionMethod, data []byte) int64 {
	b.grow(region.HeaderSize)

	off := int64(len(b.buf))
	sectors := uint32(off / region.SectorSize)

	var hdr [5]byte
	binary.BigEndian.PutUint32(hdr[:4], length)
	hdr[4] = byte(method)
	b.buf = append(b.buf, hdr[:]...)
	b.buf = append(b.buf, data...)

	if rem := len(b.buf) % region.SectorSize; rem != 0 {
		b.buf = append(b.buf, make([]byte, region.SectorSize-rem)...)
	}

	count := (int64(len(b.buf)) - off) / region.SectorSize
	b.SetLocation(c, region.Location{byte(sectors >> 16), byte(sectors >> 8), byte(sectors), byte(count)})

	return off
}

// PutCompressed appends record with already compressed data.
func (b *Builder) PutCompressed(c region.Coord, data []byte) int64 {
	return b.PutRaw(c, uint32(len(data)+1), region.MethodZlib, data)
}

// Put zlib-compresses payload and appends it as a record of cell c.
func (b *Builder) Put(c region.Coord, payload []byte) int64 {
	return b.PutCompressed(c, Compress(payload))
}

// Bytes returns region file contents.
func (b *Builder) Bytes() []byte {
	b.grow(region.HeaderSize)
	return b.buf
}

// WriteFile writes region file contents to path.
func (b *Builder) WriteFile(t testing.TB, path string) {
	WriteRaw(t, path, b.Bytes())
}

// Compress returns zlib-framed data.
func Compress(data []byte) []byte {
	var buf bytes.Buffer

	w := zlib.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()

	return buf.Bytes()
}

// WriteRaw writes data to path as is.
func WriteRaw(t testing.TB, path string, data []byte) {
	require.NoError(t, os.WriteFile(path, data, 0o644))
}
