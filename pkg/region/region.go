package region

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"
)

const (
	// SectorSize is a size of the allocation unit of region files.
	SectorSize = 4096

	// HeaderSize is a size of the region file header: location table
	// followed by timestamp table.
	HeaderSize = 2 * SectorSize

	locationEntrySize = 4
	recordHeaderSize  = 5
)

var (
	// ErrNoRecord is returned when location table has no entry for
	// the requested cell.
	ErrNoRecord = errors.New("no record")

	// ErrLengthUnderflow is returned when record length field is less
	// than the size of the compression method byte it includes.
	ErrLengthUnderflow = errors.New("record length underflow")

	// ErrOutOfBounds is returned when location or record header points
	// beyond the end of file.
	ErrOutOfBounds = errors.New("record out of file bounds")
)

// CompressionMethod is a record payload compression identifier.
type CompressionMethod byte

const (
	MethodGzip CompressionMethod = iota + 1
	MethodZlib
	MethodNone
)

// String implements fmt.Stringer.
func (m CompressionMethod) String() string {
	switch m {
	case MethodGzip:
		return "gzip"
	case MethodZlib:
		return "zlib"
	case MethodNone:
		return "none"
	default:
		return fmt.Sprintf("unknown(%d)", byte(m))
	}
}

// Location is a raw location table entry: 3-byte big-endian offset in
// sectors followed by 1-byte sector count.
type Location [locationEntrySize]byte

// Sectors returns record offset in sectors.
func (l Location) Sectors() uint32 {
	return uint32(l[0])<<16 | uint32(l[1])<<8 | uint32(l[2])
}

// Offset returns absolute byte offset of the record.
func (l Location) Offset() int64 {
	return int64(l.Sectors()) * SectorSize
}

// SectorCount returns declared record size in sectors. Readers don't rely
// on it: actual record length is stored in the record header.
func (l Location) SectorCount() uint8 {
	return l[3]
}

// Empty checks whether the entry doesn't point to any record. Zero offset
// means absence regardless of the sector count.
func (l Location) Empty() bool {
	return l.Sectors() == 0
}

// Record is a compressed chunk payload stored in the region file.
type Record struct {
	// Method is read from the header but Decompress always assumes zlib.
	Method CompressionMethod
	Data   []byte
}

// Decompress inflates zlib-framed record data.
func (r Record) Decompress() ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(r.Data))
	if err != nil {
		return nil, fmt.Errorf("init zlib reader: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}

	return data, nil
}

// File is a region file opened for random access reading.
type File struct {
	f    *os.File
	size int64
}

// Open opens region file located at path. File must be closed after use.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open region file: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat region file: %w", err)
	}

	return &File{f: f, size: fi.Size()}, nil
}

// Size returns file size at the moment of opening.
func (x *File) Size() int64 {
	return x.size
}

// Close releases file descriptor.
func (x *File) Close() error {
	return x.f.Close()
}

// Location reads location table entry of the cell selected by c.
func (x *File) Location(c Coord) (Location, error) {
	var l Location

	off := c.LocationOffset()
	if _, err := x.f.Seek(off, io.SeekStart); err != nil {
		return l, fmt.Errorf("seek to location %d: %w", off, err)
	}

	if _, err := io.ReadFull(x.f, l[:]); err != nil {
		return l, fmt.Errorf("read location at %d: %w", off, err)
	}

	return l, nil
}

// ReadRecord reads record referenced by l. The location must not be empty.
func (x *File) ReadRecord(l Location) (Record, error) {
	off := l.Offset()
	if off+recordHeaderSize > x.size {
		return Record{}, fmt.Errorf("%w: header at %d, file size %d", ErrOutOfBounds, off, x.size)
	}

	if _, err := x.f.Seek(off, io.SeekStart); err != nil {
		return Record{}, fmt.Errorf("seek to record %d: %w", off, err)
	}

	var hdr [recordHeaderSize]byte
	if _, err := io.ReadFull(x.f, hdr[:]); err != nil {
		return Record{}, fmt.Errorf("read record header at %d: %w", off, err)
	}

	// stored length includes the method byte
	ln := binary.BigEndian.Uint32(hdr[:4])
	if ln < 1 {
		return Record{}, fmt.Errorf("%w: record at %d", ErrLengthUnderflow, off)
	}
	ln--

	if off+recordHeaderSize+int64(ln) > x.size {
		return Record{}, fmt.Errorf("%w: %d bytes at %d, file size %d", ErrOutOfBounds, ln, off+recordHeaderSize, x.size)
	}

	data := make([]byte, ln)
	if _, err := io.ReadFull(x.f, data); err != nil {
		return Record{}, fmt.Errorf("read %d bytes of record at %d: %w", ln, off, err)
	}

	return Record{
		Method: CompressionMethod(hdr[4]),
		Data:   data,
	}, nil
}

// Chunk reads record of the cell selected by c.
//
// Returns ErrNoRecord if the cell has no record.
func (x *File) Chunk(c Coord) (Record, error) {
	l, err := x.Location(c)
	if err != nil {
		return Record{}, err
	}

	if l.Empty() {
		return Record{}, ErrNoRecord
	}

	return x.ReadRecord(l)
}
