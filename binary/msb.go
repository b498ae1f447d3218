// Package binary provides binary read/write methods.
package binary

import (
	"encoding/binary"
)

var Msb = msb{
	binary.BigEndian,
	binary.BigEndian,
}

// msb embeds the stdlib's big-endian ByteOrder/AppendByteOrder for the
// Uint16/32/64 and AppendUint16/32/64 methods the wire codec uses directly,
// plus the signed-integer pair below that the codec's pid/index/capacity
// fields need and the stdlib doesn't provide.
type msb struct {
	binary.ByteOrder
	binary.AppendByteOrder
}

// AppendInt32 appends a signed 32-bit integer, used for pid_t-sized and
// sentinel-carrying fields (process ids, graph indices, declared channel
// capacities) that the negotiation wire format carries as signed
// quantities, unlike BGP's unsigned-only fields.
func (m msb) AppendInt32(b []byte, v int32) []byte {
	return m.AppendUint32(b, uint32(v))
}

// Int32 reads a signed 32-bit integer back out of a big-endian buffer.
func (m msb) Int32(b []byte) int32 {
	return int32(m.Uint32(b))
}
