/*
Package nbt implements decoding of the named binary tag format used to store
chunk data inside region files.

An encoded tree is a single named Compound tag. Every tag is a 1-byte type
identifier, followed (for all tags except End) by a big-endian 16-bit name
length and the name bytes, followed by the payload:

	Byte, Short, Int, Long     1, 2, 4, 8 bytes, signed big-endian
	Float, Double              IEEE 754, big-endian
	ByteArray, IntArray,       32-bit signed element count and elements
	LongArray
	String                     16-bit unsigned length and bytes
	List                       element tag, 32-bit count and unnamed payloads
	Compound                   named tags terminated by End

Decoded values are represented by the closed Value type set. Lookups on
Compound never fail: a missing field or a field of another type is reported
via the boolean result, so callers can treat unexpected shapes as absent data.
*/
package nbt
