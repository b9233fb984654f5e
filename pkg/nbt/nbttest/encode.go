// Package nbttest provides helpers to encode NBT trees in tests.
package nbttest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/nspcc-dev/chunkprune/pkg/nbt"
)

// Encode returns binary representation of the named root compound.
// Compound fields are written in lexicographical order of their names.
func Encode(name string, root nbt.Compound) []byte {
	var buf bytes.Buffer

	buf.WriteByte(byte(nbt.TagCompound))
	writeString(&buf, name)
	writePayload(&buf, root)

	return buf.Bytes()
}

// Chunk returns encoded chunk tree with Level.InhabitedTime set to t.
func Chunk(t int64) []byte {
	return Encode("", nbt.Compound{
		"DataVersion": nbt.Int(2586),
		"Level": nbt.Compound{
			"xPos":          nbt.Int(0),
			"zPos":          nbt.Int(0),
			"InhabitedTime": nbt.Long(t),
			"Status":        nbt.String("full"),
			"Sections":      nbt.List{Elem: nbt.TagCompound, Values: []nbt.Value{nbt.Compound{"Y": nbt.Byte(0)}}},
		},
	})
}

func writeString(buf *bytes.Buffer, s string) {
	_ = binary.Write(buf, binary.BigEndian, uint16(len(s)))
	buf.WriteString(s)
}

func writePayload(buf *bytes.Buffer, v nbt.Value) {
	switch v := v.(type) {
	case nbt.Byte:
		buf.WriteByte(byte(v))
	case nbt.Short, nbt.Int, nbt.Long:
		_ = binary.Write(buf, binary.BigEndian, v)
	case nbt.Float:
		_ = binary.Write(buf, binary.BigEndian, math.Float32bits(float32(v)))
	case nbt.Double:
		_ = binary.Write(buf, binary.BigEndian, math.Float64bits(float64(v)))
	case nbt.ByteArray:
		_ = binary.Write(buf, binary.BigEndian, int32(len(v)))
		buf.Write(v)
	case nbt.String:
		writeString(buf, string(v))
	case nbt.IntArray:
		_ = binary.Write(buf, binary.BigEndian, int32(len(v)))
		_ = binary.Write(buf, binary.BigEndian, []int32(v))
	case nbt.LongArray:
		_ = binary.Write(buf, binary.BigEndian, int32(len(v)))
		_ = binary.Write(buf, binary.BigEndian, []int64(v))
	case nbt.List:
		buf.WriteByte(byte(v.Elem))
		_ = binary.Write(buf, binary.BigEndian, int32(len(v.Values)))
		for i := range v.Values {
			writePayload(buf, v.Values[i])
		}
	case nbt.Compound:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			buf.WriteByte(byte(v[name].Tag()))
			writeString(buf, name)
			writePayload(buf, v[name])
		}
		buf.WriteByte(byte(nbt.TagEnd))
	default:
		panic(fmt.Sprintf("unexpected value type %T", v))
	}
}
