package region

import (
	"fmt"
	"strconv"
	"strings"
)

// ChunksPerSide is a number of chunk columns along each axis covered by
// a single region file.
const ChunksPerSide = 32

// Coord is a pair of region coordinates.
type Coord struct {
	X, Z int32
}

// LocationOffset returns byte offset of the location table entry selected by
// the coordinates. Only 5 lower bits of each coordinate are taken into
// account, so negative values select the same cell as their non-negative
// remainder.
func (c Coord) LocationOffset() int64 {
	return locationEntrySize * (int64(c.X&(ChunksPerSide-1)) + int64(c.Z&(ChunksPerSide-1))*ChunksPerSide)
}

// String implements fmt.Stringer.
func (c Coord) String() string {
	return fmt.Sprintf("%d.%d", c.X, c.Z)
}

// FileName returns canonical name of the region file with the coordinates.
func (c Coord) FileName() string {
	return "r." + c.String() + ".mca"
}

// ParseName extracts coordinates from region file name of the
// <prefix>.<x>.<z>.<ext> form.
//
// Returns false if name has less than four dot-separated segments or any of
// the coordinate segments is not a 32-bit signed decimal integer.
func ParseName(name string) (Coord, bool) {
	parts := strings.Split(name, ".")
	if len(parts) < 4 {
		return Coord{}, false
	}

	x, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil {
		return Coord{}, false
	}

	z, err := strconv.ParseInt(parts[2], 10, 32)
	if err != nil {
		return Coord{}, false
	}

	return Coord{X: int32(x), Z: int32(z)}, true
}
