package nbt_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/nspcc-dev/chunkprune/pkg/nbt"
	"github.com/nspcc-dev/chunkprune/pkg/nbt/nbttest"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	root := nbt.Compound{
		"byte":      nbt.Byte(-1),
		"short":     nbt.Short(-300),
		"int":       nbt.Int(70000),
		"long":      nbt.Long(-1 << 40),
		"float":     nbt.Float(1.5),
		"double":    nbt.Double(-2.25),
		"bytes":     nbt.ByteArray{1, 2, 3},
		"string":    nbt.String("minecraft:plains"),
		"ints":      nbt.IntArray{1, -2, 3},
		"longs":     nbt.LongArray{1 << 33, -4},
		"emptyList": nbt.List{Elem: nbt.TagEnd},
		"list": nbt.List{Elem: nbt.TagList, Values: []nbt.Value{
			nbt.List{Elem: nbt.TagShort, Values: []nbt.Value{nbt.Short(1), nbt.Short(2)}},
		}},
		"nested": nbt.Compound{
			"inner": nbt.Compound{"x": nbt.Int(1)},
		},
	}

	name, got, err := nbt.Decode(bytes.NewReader(nbttest.Encode("root", root)))
	require.NoError(t, err)
	require.Equal(t, "root", name)
	require.Equal(t, root, got)
}

func TestDecode_Malformed(t *testing.T) {
	valid := nbttest.Chunk(100)

	t.Run("empty", func(t *testing.T) {
		_, _, err := nbt.Decode(bytes.NewReader(nil))
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("truncated", func(t *testing.T) {
		for i := 1; i < len(valid); i++ {
			_, _, err := nbt.Decode(bytes.NewReader(valid[:i]))
			require.ErrorIs(t, err, io.ErrUnexpectedEOF, i)
		}
	})

	t.Run("root is not a compound", func(t *testing.T) {
		_, _, err := nbt.Decode(bytes.NewReader([]byte{byte(nbt.TagInt), 0, 0, 0, 0, 0, 1}))
		require.ErrorIs(t, err, nbt.ErrNotCompound)
	})

	t.Run("unknown tag", func(t *testing.T) {
		data := []byte{byte(nbt.TagCompound), 0, 0, 13, 0, 1, 'a'}
		_, _, err := nbt.Decode(bytes.NewReader(data))
		require.ErrorIs(t, err, nbt.ErrUnknownTag)
	})

	t.Run("negative length", func(t *testing.T) {
		data := []byte{byte(nbt.TagCompound), 0, 0, byte(nbt.TagByteArray), 0, 1, 'a', 0xff, 0xff, 0xff, 0xff}
		_, _, err := nbt.Decode(bytes.NewReader(data))
		require.ErrorIs(t, err, nbt.ErrNegativeLength)
	})

	t.Run("oversized length", func(t *testing.T) {
		data := []byte{byte(nbt.TagCompound), 0, 0, byte(nbt.TagLongArray), 0, 1, 'a', 0x7f, 0xff, 0xff, 0xff}
		_, _, err := nbt.Decode(bytes.NewReader(data))
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("non-empty list of End", func(t *testing.T) {
		data := []byte{byte(nbt.TagCompound), 0, 0, byte(nbt.TagList), 0, 1, 'a', byte(nbt.TagEnd), 0, 0, 0, 1, byte(nbt.TagEnd)}
		_, _, err := nbt.Decode(bytes.NewReader(data))
		require.Error(t, err)
	})

	t.Run("too deep", func(t *testing.T) {
		data := []byte{byte(nbt.TagCompound), 0, 0}
		for i := 0; i < nbt.MaxDepth; i++ {
			data = append(data, byte(nbt.TagCompound), 0, 0)
		}
		_, _, err := nbt.Decode(bytes.NewReader(data))
		require.ErrorIs(t, err, nbt.ErrTooDeep)
	})
}

func TestInhabitedTime(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		v, ok, err := nbt.InhabitedTime(nbttest.Chunk(12345))
		require.NoError(t, err)
		require.True(t, ok)
		require.EqualValues(t, 12345, v)
	})

	for _, tc := range []struct {
		name string
		root nbt.Compound
	}{
		{name: "no Level", root: nbt.Compound{"InhabitedTime": nbt.Long(1)}},
		{name: "Level is not a compound", root: nbt.Compound{"Level": nbt.Long(1)}},
		{name: "no InhabitedTime", root: nbt.Compound{"Level": nbt.Compound{"xPos": nbt.Int(0)}}},
		{name: "InhabitedTime is not a long", root: nbt.Compound{"Level": nbt.Compound{"InhabitedTime": nbt.Int(1)}}},
		{name: "wrong nesting", root: nbt.Compound{"Level": nbt.Compound{"Data": nbt.Compound{"InhabitedTime": nbt.Long(1)}}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, ok, err := nbt.InhabitedTime(nbttest.Encode("", tc.root))
			require.NoError(t, err)
			require.False(t, ok)
		})
	}

	t.Run("malformed", func(t *testing.T) {
		data := nbttest.Chunk(1)
		_, _, err := nbt.InhabitedTime(data[:len(data)-1])
		require.Error(t, err)
	})
}

func TestTag_String(t *testing.T) {
	require.Equal(t, "Compound", nbt.TagCompound.String())
	require.Equal(t, "LongArray", nbt.TagLongArray.String())
	require.Equal(t, "Tag(42)", nbt.Tag(42).String())
}
