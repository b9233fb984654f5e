package region_test

import (
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/chunkprune/pkg/region"
	"github.com/nspcc-dev/chunkprune/pkg/region/regiontest"
	"github.com/stretchr/testify/require"
)

func openRegion(t *testing.T, b *regiontest.Builder) *region.File {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")
	b.WriteFile(t, path)

	f, err := region.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	return f
}

func cellPayload(c region.Coord) []byte {
	return []byte("chunk " + c.String())
}

func TestCoord_LocationOffset(t *testing.T) {
	for x := int32(0); x < region.ChunksPerSide; x++ {
		for z := int32(0); z < region.ChunksPerSide; z++ {
			require.EqualValues(t, 4*(x+z*32), region.Coord{X: x, Z: z}.LocationOffset())
		}
	}

	require.Equal(t, region.Coord{X: 31, Z: 31}.LocationOffset(), region.Coord{X: -1, Z: -1}.LocationOffset())
	require.Equal(t, region.Coord{X: 0, Z: 1}.LocationOffset(), region.Coord{X: -32, Z: 33}.LocationOffset())
}

func TestFile_Chunk(t *testing.T) {
	payload := []byte("chunk payload")

	t.Run("every cell", func(t *testing.T) {
		var b regiontest.Builder
		offsets := make(map[region.Coord]int64)
		for x := int32(0); x < region.ChunksPerSide; x++ {
			for z := int32(0); z < region.ChunksPerSide; z++ {
				c := region.Coord{X: x, Z: z}
				offsets[c] = b.Put(c, cellPayload(c))
			}
		}

		f := openRegion(t, &b)

		for c, off := range offsets {
			l, err := f.Location(c)
			require.NoError(t, err)
			require.Equal(t, off, l.Offset(), c)
			require.EqualValues(t, 1, l.SectorCount())

			rec, err := f.Chunk(c)
			require.NoError(t, err)
			require.Equal(t, region.MethodZlib, rec.Method)

			data, err := rec.Decompress()
			require.NoError(t, err)
			require.Equal(t, cellPayload(c), data)
		}
	})

	t.Run("empty location", func(t *testing.T) {
		var b regiontest.Builder
		b.Put(region.Coord{X: 1, Z: 1}, payload)

		f := openRegion(t, &b)

		_, err := f.Chunk(region.Coord{X: 2, Z: 1})
		require.ErrorIs(t, err, region.ErrNoRecord)
	})

	t.Run("zero offset with sector count", func(t *testing.T) {
		var b regiontest.Builder
		c := region.Coord{X: 3, Z: 4}
		b.SetLocation(c, region.Location{0, 0, 0, 7})

		f := openRegion(t, &b)

		_, err := f.Chunk(c)
		require.ErrorIs(t, err, region.ErrNoRecord)
	})

	t.Run("zero length", func(t *testing.T) {
		var b regiontest.Builder
		c := region.Coord{X: 5, Z: 6}
		b.PutRaw(c, 0, region.MethodZlib, nil)

		f := openRegion(t, &b)

		_, err := f.Chunk(c)
		require.ErrorIs(t, err, region.ErrLengthUnderflow)
	})

	t.Run("length of method byte only", func(t *testing.T) {
		var b regiontest.Builder
		c := region.Coord{X: 5, Z: 6}
		b.PutRaw(c, 1, region.MethodZlib, nil)

		f := openRegion(t, &b)

		rec, err := f.Chunk(c)
		require.NoError(t, err)
		require.Empty(t, rec.Data)

		_, err = rec.Decompress()
		require.Error(t, err)
	})

	t.Run("length beyond file", func(t *testing.T) {
		var b regiontest.Builder
		c := region.Coord{X: 7, Z: 8}
		b.PutRaw(c, 1<<20, region.MethodZlib, []byte{1, 2, 3})

		f := openRegion(t, &b)

		_, err := f.Chunk(c)
		require.ErrorIs(t, err, region.ErrOutOfBounds)
	})

	t.Run("offset beyond file", func(t *testing.T) {
		var b regiontest.Builder
		c := region.Coord{X: 9, Z: 10}
		b.SetLocation(c, region.Location{0, 1, 0, 1})

		f := openRegion(t, &b)

		_, err := f.Chunk(c)
		require.ErrorIs(t, err, region.ErrOutOfBounds)
	})

	t.Run("short header table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "r.0.0.mca")
		regiontest.WriteRaw(t, path, make([]byte, 100))

		f, err := region.Open(path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = f.Close() })

		_, err = f.Chunk(region.Coord{X: 31, Z: 31})
		require.Error(t, err)
	})

	t.Run("corrupted payload", func(t *testing.T) {
		var b regiontest.Builder
		c := region.Coord{X: 11, Z: 12}
		compressed := regiontest.Compress(payload)
		b.PutCompressed(c, compressed[:len(compressed)/2])

		f := openRegion(t, &b)

		rec, err := f.Chunk(c)
		require.NoError(t, err)

		_, err = rec.Decompress()
		require.Error(t, err)
	})
}

func TestOpen(t *testing.T) {
	_, err := region.Open(filepath.Join(t.TempDir(), "missing.mca"))
	require.Error(t, err)
}

func TestParseName(t *testing.T) {
	for _, tc := range []struct {
		name string
		ok   bool
		c    region.Coord
	}{
		{name: "r.0.0.mca", ok: true, c: region.Coord{}},
		{name: "r.-1.15.mca", ok: true, c: region.Coord{X: -1, Z: 15}},
		{name: "r.2147483647.-2147483648.mca", ok: true, c: region.Coord{X: 2147483647, Z: -2147483648}},
		{name: "r.1.2.mca.bak", ok: true, c: region.Coord{X: 1, Z: 2}},
		{name: "r.1.2", ok: false},
		{name: "session.lock", ok: false},
		{name: "r.a.2.mca", ok: false},
		{name: "r.1.b.mca", ok: false},
		{name: "r.2147483648.0.mca", ok: false},
		{name: "r..0.mca", ok: false},
		{name: "", ok: false},
	} {
		c, ok := region.ParseName(tc.name)
		require.Equal(t, tc.ok, ok, tc.name)
		require.Equal(t, tc.c, c, tc.name)
	}
}

func TestCoord_FileName(t *testing.T) {
	require.Equal(t, "r.-3.7.mca", region.Coord{X: -3, Z: 7}.FileName())
}
