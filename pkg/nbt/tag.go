package nbt

import "strconv"

// Tag is a type identifier of the encoded value.
type Tag byte

const (
	TagEnd Tag = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

var tagNames = [...]string{
	TagEnd:       "End",
	TagByte:      "Byte",
	TagShort:     "Short",
	TagInt:       "Int",
	TagLong:      "Long",
	TagFloat:     "Float",
	TagDouble:    "Double",
	TagByteArray: "ByteArray",
	TagString:    "String",
	TagList:      "List",
	TagCompound:  "Compound",
	TagIntArray:  "IntArray",
	TagLongArray: "LongArray",
}

// String implements fmt.Stringer.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}

	return "Tag(" + strconv.Itoa(int(t)) + ")"
}

func (t Tag) valid() bool {
	return t <= TagLongArray
}
