package nbt

// Value is a decoded tag payload. The set of implementations is closed:
// only types of this package satisfy it.
type Value interface {
	// Tag returns type identifier of the value.
	Tag() Tag

	value()
}

type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []byte
	String    string
	IntArray  []int32
	LongArray []int64
)

// List is a homogeneous sequence of values of the Elem type.
type List struct {
	Elem   Tag
	Values []Value
}

// Compound is a set of named values.
type Compound map[string]Value

func (Byte) Tag() Tag      { return TagByte }
func (Short) Tag() Tag     { return TagShort }
func (Int) Tag() Tag       { return TagInt }
func (Long) Tag() Tag      { return TagLong }
func (Float) Tag() Tag     { return TagFloat }
func (Double) Tag() Tag    { return TagDouble }
func (ByteArray) Tag() Tag { return TagByteArray }
func (String) Tag() Tag    { return TagString }
func (List) Tag() Tag      { return TagList }
func (Compound) Tag() Tag  { return TagCompound }
func (IntArray) Tag() Tag  { return TagIntArray }
func (LongArray) Tag() Tag { return TagLongArray }

func (Byte) value()      {}
func (Short) value()     {}
func (Int) value()       {}
func (Long) value()      {}
func (Float) value()     {}
func (Double) value()    {}
func (ByteArray) value() {}
func (String) value()    {}
func (List) value()      {}
func (Compound) value()  {}
func (IntArray) value()  {}
func (LongArray) value() {}

// Get returns named child value.
func (c Compound) Get(name string) (Value, bool) {
	v, ok := c[name]
	return v, ok
}

// Compound returns named child if it is a Compound.
//
// Returns false if the child is missing or has another type.
func (c Compound) Compound(name string) (Compound, bool) {
	v, ok := c[name].(Compound)
	return v, ok
}

// Long returns named child if it is a Long.
//
// Returns false if the child is missing or has another type.
func (c Compound) Long(name string) (int64, bool) {
	v, ok := c[name].(Long)
	return int64(v), ok
}
