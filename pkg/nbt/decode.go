package nbt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// MaxDepth is a maximum nesting level of lists and compounds accepted by Decode.
const MaxDepth = 512

var (
	// ErrUnknownTag is returned when the input contains tag identifier
	// outside of the known set.
	ErrUnknownTag = errors.New("unknown tag")

	// ErrNegativeLength is returned when array, list or string length is negative.
	ErrNegativeLength = errors.New("negative length")

	// ErrNotCompound is returned when the root tag is not a Compound.
	ErrNotCompound = errors.New("root tag is not a compound")

	// ErrTooDeep is returned when nesting exceeds MaxDepth.
	ErrTooDeep = errors.New("nesting too deep")
)

// lener is implemented by readers knowing the number of unread bytes
// (e.g. bytes.Reader). It allows to reject oversized lengths before allocating.
type lener interface {
	Len() int
}

type decoder struct {
	r     io.Reader
	buf   [8]byte
	depth int
}

// Decode reads single named root tag from r. The root must be a Compound.
//
// Truncated input results in an error wrapping io.ErrUnexpectedEOF.
func Decode(r io.Reader) (string, Compound, error) {
	d := decoder{r: r}

	tag, err := d.tag()
	if err != nil {
		return "", nil, fmt.Errorf("read root tag: %w", err)
	}
	if tag != TagCompound {
		return "", nil, fmt.Errorf("%w: %s", ErrNotCompound, tag)
	}

	name, err := d.string()
	if err != nil {
		return "", nil, fmt.Errorf("read root name: %w", err)
	}

	v, err := d.payload(TagCompound)
	if err != nil {
		return "", nil, fmt.Errorf("read root %q: %w", name, err)
	}

	return name, v.(Compound), nil
}

// InhabitedTime decodes data and returns the value of Level.InhabitedTime.
//
// Returns false if the field is missing or the value (or its parent)
// has another type. Errors are returned for malformed encoding only.
func InhabitedTime(data []byte) (int64, bool, error) {
	_, root, err := Decode(bytes.NewReader(data))
	if err != nil {
		return 0, false, err
	}

	level, ok := root.Compound("Level")
	if !ok {
		return 0, false, nil
	}

	t, ok := level.Long("InhabitedTime")
	return t, ok, nil
}

func (d *decoder) read(n int) ([]byte, error) {
	_, err := io.ReadFull(d.r, d.buf[:n])
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return d.buf[:n], err
}

func (d *decoder) tag() (Tag, error) {
	b, err := d.read(1)
	if err != nil {
		return 0, err
	}

	t := Tag(b[0])
	if !t.valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTag, b[0])
	}

	return t, nil
}

func (d *decoder) int16() (int16, error) {
	b, err := d.read(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (d *decoder) int32() (int32, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (d *decoder) int64() (int64, error) {
	b, err := d.read(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// length reads 32-bit element count and checks it against the unread
// input size when the latter is known.
func (d *decoder) length(elemSize int) (int, error) {
	n, err := d.int32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeLength, n)
	}
	if l, ok := d.r.(lener); ok && int64(n)*int64(elemSize) > int64(l.Len()) {
		return 0, fmt.Errorf("length %d exceeds remaining %d bytes: %w", n, l.Len(), io.ErrUnexpectedEOF)
	}
	return int(n), nil
}

func (d *decoder) bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := io.ReadFull(d.r, b)
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return b, err
}

func (d *decoder) string() (string, error) {
	n, err := d.int16()
	if err != nil {
		return "", err
	}

	// string length is unsigned on the wire
	b, err := d.bytes(int(uint16(n)))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func (d *decoder) payload(t Tag) (Value, error) {
	switch t {
	case TagByte:
		b, err := d.read(1)
		if err != nil {
			return nil, err
		}
		return Byte(int8(b[0])), nil
	case TagShort:
		v, err := d.int16()
		return Short(v), err
	case TagInt:
		v, err := d.int32()
		return Int(v), err
	case TagLong:
		v, err := d.int64()
		return Long(v), err
	case TagFloat:
		v, err := d.int32()
		return Float(math.Float32frombits(uint32(v))), err
	case TagDouble:
		v, err := d.int64()
		return Double(math.Float64frombits(uint64(v))), err
	case TagByteArray:
		n, err := d.length(1)
		if err != nil {
			return nil, err
		}
		b, err := d.bytes(n)
		return ByteArray(b), err
	case TagString:
		s, err := d.string()
		return String(s), err
	case TagIntArray:
		n, err := d.length(4)
		if err != nil {
			return nil, err
		}
		res := make(IntArray, n)
		for i := range res {
			if res[i], err = d.int32(); err != nil {
				return nil, err
			}
		}
		return res, nil
	case TagLongArray:
		n, err := d.length(8)
		if err != nil {
			return nil, err
		}
		res := make(LongArray, n)
		for i := range res {
			if res[i], err = d.int64(); err != nil {
				return nil, err
			}
		}
		return res, nil
	case TagList:
		return d.list()
	case TagCompound:
		return d.compound()
	default:
		return nil, fmt.Errorf("%w: %s has no payload", ErrUnknownTag, t)
	}
}

func (d *decoder) enter() error {
	d.depth++
	if d.depth > MaxDepth {
		return ErrTooDeep
	}
	return nil
}

func (d *decoder) list() (Value, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()

	elem, err := d.tag()
	if err != nil {
		return nil, err
	}

	n, err := d.length(1)
	if err != nil {
		return nil, err
	}

	if elem == TagEnd {
		if n > 0 {
			return nil, fmt.Errorf("list of %d elements has %s type", n, TagEnd)
		}
		return List{Elem: TagEnd}, nil
	}

	res := List{
		Elem:   elem,
		Values: make([]Value, n),
	}
	for i := range res.Values {
		if res.Values[i], err = d.payload(elem); err != nil {
			return nil, fmt.Errorf("list element #%d: %w", i, err)
		}
	}

	return res, nil
}

func (d *decoder) compound() (Value, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()

	res := make(Compound)
	for {
		t, err := d.tag()
		if err != nil {
			return nil, err
		}
		if t == TagEnd {
			return res, nil
		}

		name, err := d.string()
		if err != nil {
			return nil, err
		}

		v, err := d.payload(t)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}

		res[name] = v
	}
}
